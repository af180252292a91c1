package setup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDialect is returned for gorm dialectors without DDL support here.
var ErrUnknownDialect = errors.New("unsupported database dialect")

// ColumnKind is the portable type of a managed column.
type ColumnKind int

// Column kinds.
const (
	KindInt ColumnKind = iota
	KindBool
	KindVarchar
	KindDecimal
	KindDateTime
	KindEnum
)

// Column describes one managed column. Default is a SQL literal.
type Column struct {
	Name          string
	Kind          ColumnKind
	Size          int // varchar length
	Precision     int
	Scale         int
	Values        []string // enum values
	NotNull       bool
	Default       string
	PrimaryKey    bool
	AutoIncrement bool
}

// TableSchema is the desired state of a managed table.
// Columns form the create statement, Added are checked and added one by one afterwards.
type TableSchema struct {
	Name    string
	Columns []Column
	Added   []Column
}

// Dialect renders DDL for one database engine.
type Dialect interface {
	Name() string
	ColumnType(c Column) string
	AutoIncrementPrimaryKey() string
	TableOptions() string
	// ModifyColumn returns false when the engine can't change a column type in place.
	ModifyColumn(table string, c Column) (string, bool)
}

// DialectFor returns the dialect matching a gorm dialector name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "mysql":
		return mysqlDialect{}, nil
	case "postgres":
		return postgresDialect{}, nil
	case "sqlite":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// CreateTableSQL renders the create-if-absent statement of t.
func CreateTableSQL(d Dialect, t TableSchema) string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, columnSQL(d, c))
	}

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(cols, ", "))
	if opts := d.TableOptions(); opts != "" {
		stmt += " " + opts
	}

	return stmt
}

// AddColumnSQL renders the statement adding c to table.
func AddColumnSQL(d Dialect, table string, c Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, columnSQL(d, c))
}

func columnSQL(d Dialect, c Column) string {
	if c.PrimaryKey && c.AutoIncrement {
		return c.Name + " " + d.AutoIncrementPrimaryKey()
	}

	var b strings.Builder

	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(d.ColumnType(c))

	switch {
	case c.PrimaryKey:
		b.WriteString(" PRIMARY KEY")
	case c.NotNull:
		b.WriteString(" NOT NULL")
	default:
		b.WriteString(" NULL")
	}

	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.Default)
	}

	return b.String()
}

func enumValues(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, "'"+strings.ReplaceAll(v, "'", "''")+"'")
	}

	return strings.Join(quoted, ",")
}

// enumSize is the varchar length used for enums on engines without ENUM.
func enumSize(values []string) int {
	size := 16
	for _, v := range values {
		if len(v) > size {
			size = len(v)
		}
	}

	return size
}

// isCharacterType reports whether a database type name stores text.
func isCharacterType(typeName string) bool {
	t := strings.ToLower(typeName)

	return strings.Contains(t, "char") || strings.Contains(t, "text")
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string { return "mysql" }

func (mysqlDialect) ColumnType(c Column) string {
	switch c.Kind {
	case KindBool:
		return "TINYINT(1)"
	case KindVarchar:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	case KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", c.Precision, c.Scale)
	case KindDateTime:
		return "DATETIME"
	case KindEnum:
		return "ENUM(" + enumValues(c.Values) + ")"
	default:
		return "INT"
	}
}

func (mysqlDialect) AutoIncrementPrimaryKey() string { return "INT AUTO_INCREMENT PRIMARY KEY" }

func (mysqlDialect) TableOptions() string { return "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4" }

func (d mysqlDialect) ModifyColumn(table string, c Column) (string, bool) {
	return fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s", table, columnSQL(d, c)), true
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) ColumnType(c Column) string {
	switch c.Kind {
	case KindBool:
		return "BOOLEAN"
	case KindVarchar:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	case KindDecimal:
		return fmt.Sprintf("NUMERIC(%d,%d)", c.Precision, c.Scale)
	case KindDateTime:
		return "TIMESTAMP"
	case KindEnum:
		return fmt.Sprintf("VARCHAR(%d)", enumSize(c.Values))
	default:
		return "INTEGER"
	}
}

func (postgresDialect) AutoIncrementPrimaryKey() string { return "SERIAL PRIMARY KEY" }

func (postgresDialect) TableOptions() string { return "" }

func (d postgresDialect) ModifyColumn(table string, c Column) (string, bool) {
	typ := d.ColumnType(c)
	stmt := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s USING %s::%s",
		table, c.Name, typ, c.Name, typ)

	if c.Default != "" {
		stmt += fmt.Sprintf(", ALTER COLUMN %s SET DEFAULT %s", c.Name, c.Default)
	}

	return stmt, true
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) ColumnType(c Column) string {
	switch c.Kind {
	case KindBool:
		return "BOOLEAN"
	case KindVarchar:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	case KindDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", c.Precision, c.Scale)
	case KindDateTime:
		return "DATETIME"
	case KindEnum:
		return fmt.Sprintf("VARCHAR(%d)", enumSize(c.Values))
	default:
		return "INTEGER"
	}
}

func (sqliteDialect) AutoIncrementPrimaryKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

func (sqliteDialect) TableOptions() string { return "" }

// ModifyColumn is not supported, sqlite only changes column types by rebuilding the table.
func (sqliteDialect) ModifyColumn(string, Column) (string, bool) { return "", false }
