package docstore

import (
	"context"
	"database/sql"

	"github.com/restodesk/restodesk/internal"
)

// Load populates the document from storage: resolves the identity (running
// the unique-field probe if needed), fetches the primary row, and attaches
// every declared child collection under its stored table name. Children are
// materialized one level deep.
func (d *Document) Load(ctx context.Context) error {
	if err := d.def.Validate(); err != nil {
		return err
	}
	schema := d.def.Schema
	if err := d.store.ensure(ctx, schema); err != nil {
		return err
	}
	db, err := d.store.conn.DB(ctx)
	if err != nil {
		return err
	}
	dialect := d.store.conn.Dialect()

	if !d.hasID && d.probeField != "" {
		id, err := d.resolveUnique(ctx, db)
		if err != nil {
			return err
		}
		d.id = id
		d.hasID = true
	}
	if !d.hasID {
		return internal.MissingParameterf("document of %s has no identity to load", schema.Table)
	}

	cols := loadColumns(schema, "")
	query := selectByIDSQL(dialect, schema.Table, schema.ID(), cols)
	d.store.logger.Trace("load: %s [%d]", query, d.id)
	row := db.QueryRowContext(ctx, query, d.id)
	data, err := scanRow(row, cols)
	if err != nil {
		if err == sql.ErrNoRows {
			return internal.NotFoundf("%s with %s=%d not found", schema.Table, schema.ID(), d.id)
		}
		return err
	}

	for _, child := range schema.Related {
		table := schema.ChildTable(child)
		childCols := loadColumns(child, schema.ForeignKey())
		query := selectChildrenSQL(dialect, table, schema.ForeignKey(), child.ID(), childCols)
		d.store.logger.Trace("load children: %s [%d]", query, d.id)
		rows, err := db.QueryContext(ctx, query, d.id)
		if err != nil {
			return err
		}
		records, err := scanRows(rows, childCols)
		if err != nil {
			return err
		}
		data[table] = records
	}

	d.data = data
	d.populated = true
	internal.DocumentLoads.Inc()
	return nil
}

// resolveUnique runs the unique-field point query. Exactly one matching row
// is required.
func (d *Document) resolveUnique(ctx context.Context, db *sql.DB) (int64, error) {
	schema := d.def.Schema
	if !schema.HasField(d.probeField) || !schema.UniqueIndexOn(d.probeField) {
		return 0, internal.DefinitionErrorf("schema %s declares no unique index on field %s", schema.Table, d.probeField)
	}
	query := selectIDsByFieldSQL(d.store.conn.Dialect(), schema.Table, schema.ID(), d.probeField)
	d.store.logger.Trace("resolve: %s [%v]", query, d.probeValue)
	rows, err := db.QueryContext(ctx, query, d.probeValue)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, internal.NotFoundf("expected exactly one %s with %s=%v, found %d", schema.Table, d.probeField, d.probeValue, len(ids))
	}
	return ids[0], nil
}

// scanRow scans a single row into a payload map keyed by column name.
func scanRow(row *sql.Row, cols []string) (map[string]any, error) {
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := row.Scan(ptrs...); err != nil {
		return nil, err
	}
	return toPayload(cols, vals), nil
}

// scanRows scans all rows into payload maps, closing rows on return.
func scanRows(rows *sql.Rows, cols []string) ([]map[string]any, error) {
	defer rows.Close()
	records := make([]map[string]any, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		records = append(records, toPayload(cols, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func toPayload(cols []string, vals []any) map[string]any {
	data := make(map[string]any, len(cols))
	for i, col := range cols {
		data[col] = normalize(vals[i])
	}
	return data
}
