package internal

import (
	"fmt"
	"strings"
)

// Dialect identifies the SQL flavor of the configured store.
type Dialect int

const (
	MySQL Dialect = iota
	Postgres
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// DriverName returns the database/sql driver name for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite3"
	default:
		return "mysql"
	}
}

// QuoteIdentifier quotes a table or column name for the dialect.
func (d Dialect) QuoteIdentifier(name string) string {
	if d == MySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// Placeholder returns the i-th (1-based) bind placeholder for the dialect.
func (d Dialect) Placeholder(i int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// Placeholders returns n comma-separated placeholders starting at offset+1.
func (d Dialect) Placeholders(offset, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = d.Placeholder(offset + i + 1)
	}
	return strings.Join(parts, ",")
}

// ParseDialect maps a URL scheme to a Dialect.
func ParseDialect(scheme string) (Dialect, error) {
	switch scheme {
	case "mysql":
		return MySQL, nil
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3", "file":
		return SQLite, nil
	}
	return MySQL, fmt.Errorf("unsupported database scheme: %s", scheme)
}
