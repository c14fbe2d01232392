package docstore

import (
	"fmt"
	"strings"

	"github.com/restodesk/restodesk/internal"
)

// Script returns the DDL statements provisioning the whole aggregate: the
// primary table, its indexes, every child table with its foreign key, and
// the child indexes. All statements use IF NOT EXISTS so concurrent
// first-writers cannot conflict fatally.
func Script(d internal.Dialect, s *internal.Schema) []string {
	stmts := []string{createTableSQL(d, s.Table, s, nil, "")}
	stmts = append(stmts, indexStatements(d, s.Table, s)...)
	for _, child := range s.Related {
		table := s.ChildTable(child)
		stmts = append(stmts, createTableSQL(d, table, child, s, s.Table))
		stmts = append(stmts, indexStatements(d, table, child)...)
	}
	return stmts
}

// createTableSQL renders one CREATE TABLE statement. parent is non-nil for a
// child table and adds the foreign key column and constraint.
func createTableSQL(d internal.Dialect, table string, s *internal.Schema, parent *internal.Schema, parentTable string) string {
	lines := []string{"\t" + d.QuoteIdentifier(s.ID()) + " " + idColumnDDL(d)}
	for _, f := range s.Fields {
		lines = append(lines, "\t"+d.QuoteIdentifier(f.Name)+" "+f.DDL)
	}
	if parent != nil {
		lines = append(lines, "\t"+d.QuoteIdentifier(parent.ForeignKey())+" BIGINT NOT NULL")
	}
	for _, col := range bookkeepingDDL(d) {
		lines = append(lines, "\t"+col)
	}
	if d != internal.SQLite {
		lines = append(lines, fmt.Sprintf("\tPRIMARY KEY (%s)", d.QuoteIdentifier(s.ID())))
	}
	if d == internal.MySQL {
		for _, idx := range s.Indexes {
			lines = append(lines, "\t"+inlineIndexDDL(d, table, idx))
		}
	}
	if parent != nil {
		lines = append(lines, "\t"+foreignKeyDDL(d, table, parent, parentTable))
	}
	var sql strings.Builder
	sql.WriteString("CREATE TABLE IF NOT EXISTS ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" (\n")
	sql.WriteString(strings.Join(lines, ",\n"))
	sql.WriteString("\n)")
	if d == internal.MySQL {
		sql.WriteString(" CHARACTER SET=utf8mb4")
	}
	sql.WriteString(";")
	return sql.String()
}

// indexStatements renders the standalone CREATE INDEX statements. MySQL has
// no CREATE INDEX IF NOT EXISTS, so its indexes are declared inline in the
// CREATE TABLE body instead.
func indexStatements(d internal.Dialect, table string, s *internal.Schema) []string {
	if d == internal.MySQL {
		return nil
	}
	var stmts []string
	for _, idx := range s.Indexes {
		var sql strings.Builder
		sql.WriteString("CREATE ")
		if idx.Kind == internal.IndexUnique {
			sql.WriteString("UNIQUE ")
		}
		sql.WriteString("INDEX IF NOT EXISTS ")
		sql.WriteString(d.QuoteIdentifier(indexName(table, idx)))
		sql.WriteString(" ON ")
		sql.WriteString(d.QuoteIdentifier(table))
		sql.WriteString(" (")
		sql.WriteString(joinQuoted(d, idx.Fields))
		sql.WriteString(");")
		stmts = append(stmts, sql.String())
	}
	return stmts
}

func inlineIndexDDL(d internal.Dialect, table string, idx internal.Index) string {
	kind := "KEY"
	if idx.Kind == internal.IndexUnique {
		kind = "UNIQUE KEY"
	}
	return fmt.Sprintf("%s %s (%s)", kind, d.QuoteIdentifier(indexName(table, idx)), joinQuoted(d, idx.Fields))
}

func foreignKeyDDL(d internal.Dialect, table string, parent *internal.Schema, parentTable string) string {
	fk := parent.ForeignKey()
	ref := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE RESTRICT ON UPDATE RESTRICT",
		d.QuoteIdentifier(fk), d.QuoteIdentifier(parentTable), d.QuoteIdentifier(parent.ID()))
	if d == internal.SQLite {
		// sqlite does not support named constraints inline
		return ref
	}
	return fmt.Sprintf("CONSTRAINT %s %s", d.QuoteIdentifier(table+"_"+fk+"_fkey"), ref)
}

func indexName(table string, idx internal.Index) string {
	suffix := "_idx"
	if idx.Kind == internal.IndexUnique {
		suffix = "_key"
	}
	return table + "_" + strings.Join(idx.Fields, "_") + suffix
}

func idColumnDDL(d internal.Dialect) string {
	switch d {
	case internal.Postgres:
		return "BIGSERIAL"
	case internal.SQLite:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	default:
		return "BIGINT NOT NULL AUTO_INCREMENT"
	}
}

// bookkeepingDDL renders the engine-managed columns. Timestamps default on
// insert everywhere; the on-update refresh of changed exists only where the
// dialect supports it.
func bookkeepingDDL(d internal.Dialect) []string {
	changed := d.QuoteIdentifier(internal.ColChanged) + " TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"
	if d == internal.MySQL {
		changed += " ON UPDATE CURRENT_TIMESTAMP"
	}
	return []string{
		d.QuoteIdentifier(internal.ColBlocked) + " BOOLEAN NOT NULL DEFAULT FALSE",
		d.QuoteIdentifier(internal.ColWfStatus) + " INTEGER NULL",
		d.QuoteIdentifier(internal.ColCreatedByUser) + " VARCHAR(128) NULL",
		d.QuoteIdentifier(internal.ColChangedByUser) + " VARCHAR(128) NULL",
		d.QuoteIdentifier(internal.ColCreated) + " TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP",
		changed,
	}
}

func joinQuoted(d internal.Dialect, names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = d.QuoteIdentifier(name)
	}
	return strings.Join(quoted, ",")
}
