// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-wishlist/go-wishlist/internal/db/setup"
)

// TestDBOption customises the behaviour of MustOpenTestDB.
type TestDBOption func(*testDBConfig)

type testDBConfig struct {
	setup   bool
	version string
}

// WithSetup runs the setup routine at version 1.0.0 after opening the database.
func WithSetup() TestDBOption {
	return func(cfg *testDBConfig) {
		cfg.setup = true
	}
}

// WithVersion runs the setup routine at the given version.
func WithVersion(version string) TestDBOption {
	return func(cfg *testDBConfig) {
		cfg.setup = true
		cfg.version = version
	}
}

// MustOpenTestDB opens an in-memory SQLite database for tests.
// The returned connection is automatically closed via t.Cleanup.
func MustOpenTestDB(t *testing.T, opts ...TestDBOption) *gorm.DB {
	t.Helper()

	cfg := testDBConfig{version: "1.0.0"}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// a second pooled connection would open a separate in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if cfg.setup {
		report := setup.Run(context.Background(), db, setup.Config{Version: setup.StaticVersion(cfg.version)})
		require.False(t, report.HasError(), "setup failed: %+v", report.Steps)
	}

	return db
}
