// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/go-wishlist/go-wishlist/internal/config"
)

// DefaultMySQLExtras are used when DB.Extras is empty.
const DefaultMySQLExtras = "charset=utf8mb4&parseTime=True&loc=Local"

// DefaultSQLitePath is used when DB.Path is empty.
const DefaultSQLitePath = "./data/wishlist.db"

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	extras := dbCfg.DB.Extras
	if extras == "" {
		extras = DefaultMySQLExtras
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		extras,
	)

	return out
}

// Postgres builds the key/value PostgreSQL DSN from the configuration.
// DB.Extras holds additional space separated key=value pairs, sslmode defaults to disable.
func Postgres(dbCfg *config.Config) string {
	params := []string{
		fmt.Sprintf("host=%s", dbCfg.DB.Host),
		fmt.Sprintf("port=%d", dbCfg.DB.Port),
		fmt.Sprintf("user=%s", dbCfg.DB.User),
		fmt.Sprintf("dbname=%s", dbCfg.DB.Name),
	}

	if dbCfg.DB.Password != "" {
		params = append(params, fmt.Sprintf("password=%s", dbCfg.DB.Password))
	}

	if extras := strings.TrimSpace(dbCfg.DB.Extras); extras != "" {
		params = append(params, extras)
	}

	if !strings.Contains(dbCfg.DB.Extras, "sslmode=") {
		params = append(params, "sslmode=disable")
	}

	return strings.Join(params, " ")
}

// SQLite returns the database file of the sqlite engine with its pragmas.
func SQLite(dbCfg *config.Config) string {
	path := strings.TrimSpace(dbCfg.DB.Path)

	switch {
	case path == "":
		path = DefaultSQLitePath
	case path == ":memory:":
		return path
	}

	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
