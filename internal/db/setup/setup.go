// Package setup converges the database schema to the version shipped with the service.
//
// A run creates missing tables, adds missing columns, seeds the default presets and
// records the version in setup_status. Once setup_status holds a version at least as
// new as the target and is marked executed, a run only reads the schema and skips.
// Failures never abort a run, they are collected in the returned Report.
package setup

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-wishlist/go-wishlist/internal/db/controller/preset"
	"github.com/go-wishlist/go-wishlist/internal/db/controller/status"
	"github.com/go-wishlist/go-wishlist/internal/db/models"
)

// Config of a setup run. Zero values select the shipped schema and presets.
type Config struct {
	Version VersionSource
	Tables  []TableSchema
	Presets []models.Preset
	Now     func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Version == nil {
		c.Version = StaticVersion("")
	}
	if c.Tables == nil {
		c.Tables = Tables()
	}
	if c.Presets == nil {
		c.Presets = DefaultPresets()
	}
	if c.Now == nil {
		c.Now = time.Now
	}

	return c
}

// runMu serializes runs inside the process.
var runMu sync.Mutex

type run struct {
	db        *gorm.DB
	dialect   Dialect
	inspector Inspector
	report    *Report
	cfg       Config
}

// Run executes the setup routine and returns its report.
func Run(ctx context.Context, db *gorm.DB, cfg Config) *Report {
	runMu.Lock()
	defer runMu.Unlock()

	cfg = cfg.withDefaults()
	r := newReport()

	defer func() {
		runsTotal.WithLabelValues(r.Status()).Inc()
	}()

	r.Version = loadVersion(cfg.Version, r)

	conn, d, ok := connect(ctx, db, r)
	if !ok {
		return r
	}

	s := &run{
		db:        conn,
		dialect:   d,
		inspector: NewInspector(conn),
		report:    r,
		cfg:       cfg,
	}

	s.ensureStatusTable()

	if s.upToDate() {
		r.Skipped = true
		return r
	}

	s.converge()

	return r
}

func loadVersion(src VersionSource, r *Report) string {
	v, err := src.Version()
	if err != nil {
		r.errorf("Setup version unavailable (%v), defaulting to %s", err, FallbackVersion)
		return FallbackVersion
	}

	if !ValidVersion(v) {
		r.errorf("Setup version %q is not a semantic version, defaulting to %s", v, FallbackVersion)
		return FallbackVersion
	}

	r.infof("Loaded setup version: %s", v)

	return v
}

func connect(ctx context.Context, db *gorm.DB, r *Report) (*gorm.DB, Dialect, bool) {
	if db == nil {
		r.errorf("Database connection failed: no connection")
		return nil, nil, false
	}

	conn := db.WithContext(ctx)

	sqlDB, err := conn.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		r.errorf("Database connection failed: %v", err)
		return nil, nil, false
	}

	d, err := DialectFor(conn.Dialector.Name())
	if err != nil {
		r.errorf("Database connection failed: %v", err)
		return nil, nil, false
	}

	return conn, d, true
}

// exec runs one DDL statement and records it.
func (s *run) exec(sql string) bool {
	s.report.infof("Executing SQL: %s", sql)
	s.report.Statements++

	if err := s.db.Exec(sql).Error; err != nil {
		s.report.errorf("Error (%v)", err)
		return false
	}

	s.report.successf("Success")

	return true
}

// write runs one gorm built DML operation and records it.
func (s *run) write(msg string, fn func(*gorm.DB) error) bool {
	s.report.infof("%s", msg)
	s.report.Statements++

	if err := fn(s.db); err != nil {
		s.report.errorf("Error (%v)", err)
		return false
	}

	s.report.successf("Success")

	return true
}

// ensureStatusTable creates setup_status and its version column. It only
// issues DDL when introspection shows something is missing or mistyped.
func (s *run) ensureStatusTable() {
	if !s.inspector.HasTable(StatusTable) {
		s.exec(CreateTableSQL(s.dialect, statusSchema))
	}

	if !s.inspector.HasColumn(StatusTable, versionColumn.Name) {
		s.exec(AddColumnSQL(s.dialect, StatusTable, versionColumn))
		return
	}

	typ, found, err := s.inspector.ColumnType(StatusTable, versionColumn.Name)
	if err != nil {
		s.report.errorf("Reading type of column '%s' in '%s' failed (%v)", versionColumn.Name, StatusTable, err)
		return
	}

	if !found || isCharacterType(typ) {
		return
	}

	stmt, ok := s.dialect.ModifyColumn(StatusTable, versionColumn)
	if !ok {
		s.report.infof("Column '%s' in '%s' has type %s, %s can't change column types, keeping it.",
			versionColumn.Name, StatusTable, typ, s.dialect.Name())

		return
	}

	s.exec(stmt)
}

// upToDate reads the status row, creating it when absent.
func (s *run) upToDate() bool {
	st, err := status.Get(s.db)

	switch {
	case errors.Is(err, status.ErrStatusNotFound):
		s.write("Initializing setup status", func(tx *gorm.DB) error {
			_, err := status.Init(tx)
			return err
		})

		return false
	case err != nil:
		s.report.errorf("Reading setup status failed (%v)", err)
		return false
	}

	if st.Executed && AtLeast(st.Version, s.report.Version) {
		s.report.infof("Already at v%s (>= %s), skipping setup.", st.Version, s.report.Version)
		return true
	}

	return false
}

func (s *run) converge() {
	for _, t := range s.cfg.Tables {
		s.exec(CreateTableSQL(s.dialect, t))

		for _, c := range t.Added {
			if s.inspector.HasColumn(t.Name, c.Name) {
				s.report.infof("Column '%s' already exists in '%s'.", c.Name, t.Name)
				continue
			}

			s.exec(AddColumnSQL(s.dialect, t.Name, c))
		}
	}

	for _, p := range s.cfg.Presets {
		s.seedPreset(p)
	}

	s.write("Marking setup v"+s.report.Version+" as executed", func(tx *gorm.DB) error {
		return status.MarkExecuted(tx, s.report.Version, s.cfg.Now())
	})

	if s.report.HasError() {
		s.report.errorf("Setup v%s finished with errors.", s.report.Version)
		return
	}

	s.report.successf("Setup v%s completed successfully!", s.report.Version)
}

func (s *run) seedPreset(p models.Preset) {
	exists, err := preset.Exists(s.db, p.ID)
	if err != nil {
		s.report.errorf("Checking preset %d failed (%v)", p.ID, err)
		return
	}

	if exists {
		s.report.infof("Preset %d already exists.", p.ID)
		return
	}

	s.report.Statements++

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p)

	switch {
	case result.Error != nil:
		s.report.errorf("Insert error (%v)", result.Error)
	case result.RowsAffected == 0:
		s.report.infof("Preset %d already exists.", p.ID)
	default:
		s.report.successf("Inserted preset %d", p.ID)
	}
}
