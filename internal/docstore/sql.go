package docstore

import (
	"strconv"
	"strings"

	"github.com/restodesk/restodesk/internal"
)

// DML/query rendering. Column order always follows the schema declaration
// so generated statements are deterministic and testable as exact strings.

func insertSQL(d internal.Dialect, table string, idCol string, cols []string) string {
	var sql strings.Builder
	sql.WriteString("INSERT INTO ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" (")
	sql.WriteString(joinQuoted(d, cols))
	sql.WriteString(") VALUES (")
	sql.WriteString(d.Placeholders(0, len(cols)))
	sql.WriteString(")")
	if d == internal.Postgres {
		// lib/pq has no LastInsertId; the generated identity comes back
		// through RETURNING instead
		sql.WriteString(" RETURNING " + d.QuoteIdentifier(idCol))
	}
	sql.WriteString(";")
	return sql.String()
}

func updateSQL(d internal.Dialect, table string, idCol string, cols []string) string {
	var sql strings.Builder
	sql.WriteString("UPDATE ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" SET ")
	for i, col := range cols {
		if i > 0 {
			sql.WriteString(",")
		}
		sql.WriteString(d.QuoteIdentifier(col))
		sql.WriteString("=")
		sql.WriteString(d.Placeholder(i + 1))
	}
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString("=")
	sql.WriteString(d.Placeholder(len(cols) + 1))
	sql.WriteString(";")
	return sql.String()
}

func selectByIDSQL(d internal.Dialect, table string, idCol string, cols []string) string {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(joinQuoted(d, cols))
	sql.WriteString(" FROM ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString("=")
	sql.WriteString(d.Placeholder(1))
	sql.WriteString(";")
	return sql.String()
}

func selectChildrenSQL(d internal.Dialect, table string, fk string, idCol string, cols []string) string {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(joinQuoted(d, cols))
	sql.WriteString(" FROM ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(fk))
	sql.WriteString("=")
	sql.WriteString(d.Placeholder(1))
	sql.WriteString(" ORDER BY ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString(";")
	return sql.String()
}

func selectIDsByFieldSQL(d internal.Dialect, table string, idCol string, field string) string {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString(" FROM ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(field))
	sql.WriteString("=")
	sql.WriteString(d.Placeholder(1))
	sql.WriteString(";")
	return sql.String()
}

func selectChildIDsSQL(d internal.Dialect, table string, fk string, idCol string) string {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString(" FROM ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(fk))
	sql.WriteString("=")
	sql.WriteString(d.Placeholder(1))
	sql.WriteString(";")
	return sql.String()
}

func deleteChildrenSQL(d internal.Dialect, table string, fk string, idCol string, n int) string {
	var sql strings.Builder
	sql.WriteString("DELETE FROM ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(fk))
	sql.WriteString("=")
	sql.WriteString(d.Placeholder(1))
	sql.WriteString(" AND ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString(" IN (")
	sql.WriteString(d.Placeholders(1, n))
	sql.WriteString(");")
	return sql.String()
}

// collectionSQL renders the filtered id-list query. The blocked guard is
// always present; where/order are caller-supplied fragments using the
// dialect's placeholder style.
func collectionSQL(d internal.Dialect, table string, idCol string, where string, order string, limit int) string {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(d.QuoteIdentifier(idCol))
	sql.WriteString(" FROM ")
	sql.WriteString(d.QuoteIdentifier(table))
	sql.WriteString(" WHERE ")
	sql.WriteString(d.QuoteIdentifier(internal.ColBlocked))
	sql.WriteString("=FALSE")
	if where != "" {
		sql.WriteString(" AND (")
		sql.WriteString(where)
		sql.WriteString(")")
	}
	if order != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(order)
	}
	if limit > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(limit))
	}
	sql.WriteString(";")
	return sql.String()
}

// loadColumns is the column list fetched for a row of schema s: the id, the
// declared fields in order, then the bookkeeping columns. fk, when non-empty,
// is included for child rows.
func loadColumns(s *internal.Schema, fk string) []string {
	cols := []string{s.ID()}
	cols = append(cols, s.FieldNames()...)
	if fk != "" {
		cols = append(cols, fk)
	}
	cols = append(cols, internal.BookkeepingColumns...)
	return cols
}
