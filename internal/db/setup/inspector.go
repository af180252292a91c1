package setup

import (
	"gorm.io/gorm"
)

// Inspector answers schema questions about the live database.
type Inspector interface {
	HasTable(table string) bool
	HasColumn(table, column string) bool
	// ColumnType returns the database type name, false when the column is missing.
	ColumnType(table, column string) (string, bool, error)
}

// migratorInspector reads the schema through gorm's Migrator, which queries
// information_schema on MySQL and PostgreSQL and sqlite_master on SQLite.
type migratorInspector struct {
	db *gorm.DB
}

// NewInspector returns an Inspector backed by gorm's Migrator.
func NewInspector(db *gorm.DB) Inspector {
	return migratorInspector{db: db}
}

func (m migratorInspector) HasTable(table string) bool {
	return m.db.Migrator().HasTable(table)
}

func (m migratorInspector) HasColumn(table, column string) bool {
	return m.db.Migrator().HasColumn(table, column)
}

func (m migratorInspector) ColumnType(table, column string) (string, bool, error) {
	types, err := m.db.Migrator().ColumnTypes(table)
	if err != nil {
		return "", false, err
	}

	for _, ct := range types {
		if ct.Name() == column {
			return ct.DatabaseTypeName(), true, nil
		}
	}

	return "", false, nil
}
