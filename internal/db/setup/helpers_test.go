package setup

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// every connection of a :memory: pool would see its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// statementRecorder is a gorm logger remembering every executed statement.
type statementRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *statementRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *statementRecorder) Info(context.Context, string, ...any) {}

func (r *statementRecorder) Warn(context.Context, string, ...any) {}

func (r *statementRecorder) Error(context.Context, string, ...any) {}

func (r *statementRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.stmts = append(r.stmts, sql)
}

// writes returns the recorded DDL and DML statements.
func (r *statementRecorder) writes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string

	for _, s := range r.stmts {
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "CREATE", "ALTER", "INSERT", "UPDATE", "DELETE", "DROP":
			out = append(out, s)
		}
	}

	return out
}

func recorded(db *gorm.DB) (*gorm.DB, *statementRecorder) {
	rec := &statementRecorder{}

	return db.Session(&gorm.Session{Logger: rec}), rec
}

var fixedNow = time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC)

func testConfig(version string) Config {
	return Config{
		Version: StaticVersion(version),
		Now:     func() time.Time { return fixedNow },
	}
}

func messages(r *Report, sev Severity) []string {
	var out []string

	for _, s := range r.Steps {
		if s.Severity == sev {
			out = append(out, s.Message)
		}
	}

	return out
}

func containsMessage(r *Report, sev Severity, substr string) bool {
	for _, m := range messages(r, sev) {
		if strings.Contains(m, substr) {
			return true
		}
	}

	return false
}
