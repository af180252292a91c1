// Package db opens the gorm connection for the configured engine.
package db

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	"github.com/go-wishlist/go-wishlist/internal/db/dsn"
	gormlogger "github.com/go-wishlist/go-wishlist/internal/logger/adapter/gorm"
)

// ErrConfigNil is returned when Open is called without configuration.
var ErrConfigNil = errors.New("database config is nil")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL, "":
		return mysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	case config.EngineSQLite:
		if err := ensureDir(cfg.DB.Path); err != nil {
			return nil, errors.Wrap(err, "can't create sqlite directory")
		}

		return sqlite.Open(dsn.SQLite(cfg)), nil
	default:
		return nil, errors.Wrapf(config.ErrUnknownGormEngine, "engine %q", cfg.DB.GormEngine)
	}
}

// Open connects to the configured database. The schema is not touched,
// that is the job of the setup routine.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", dialector.Name())
	}

	return gdb, nil
}

// Close closes the underlying connection pool.
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql db")
	}

	return sqlDB.Close()
}

func ensureDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		path = dsn.DefaultSQLitePath
	}
	if path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	return os.MkdirAll(dir, 0o750)
}
