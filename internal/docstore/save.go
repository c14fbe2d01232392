package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/restodesk/restodesk/internal"
)

// Save persists the whole aggregate in one transaction: the primary row is
// inserted or updated depending on identity presence, every child collection
// present in the payload is reconciled against storage by id-set difference,
// and the document is re-loaded afterwards so the caller observes the
// canonical stored state (generated ids, storage-side timestamps).
// actingUser is stamped into the audit columns.
func (d *Document) Save(ctx context.Context, actingUser string) error {
	started := time.Now()
	if actingUser == "" {
		return internal.MissingParameterf("acting user is required to save")
	}
	if err := d.def.Validate(); err != nil {
		return err
	}
	if d.data == nil {
		return internal.MissingParameterf("document of %s has no data to save", d.def.Schema.Table)
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

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to start transaction: %w", err)
	}
	var success bool
	defer func() {
		if !success {
			tx.Rollback()
		}
	}()

	insert := !d.hasID
	cols, args := d.rowValues(schema, d.data, insert, actingUser)
	if insert {
		newID, err := insertRecord(ctx, tx, dialect, schema.Table, schema.ID(), cols, args)
		if err != nil {
			return fmt.Errorf("error inserting %s: %w", schema.Table, err)
		}
		d.id = newID
		d.hasID = true
		d.data[schema.ID()] = newID
	} else {
		query := updateSQL(dialect, schema.Table, schema.ID(), cols)
		d.store.logger.Trace("save: %s %v", query, args)
		if _, err := tx.ExecContext(ctx, query, append(args, d.id)...); err != nil {
			return fmt.Errorf("error updating %s %d: %w", schema.Table, d.id, err)
		}
	}

	for _, child := range schema.Related {
		if err := d.reconcileChildren(ctx, tx, child, actingUser); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit transaction: %w", err)
	}
	success = true

	internal.DocumentSaves.Inc()
	internal.SaveDuration.Observe(time.Since(started).Seconds())
	d.warnDrift()
	return d.Load(ctx)
}

// rowValues assembles the column list and bind values for one row: the
// declared fields present in the payload in schema order, then the
// engine-managed columns. The id is never part of the list; timestamps are
// left to the storage layer's defaults.
func (d *Document) rowValues(schema *internal.Schema, rec map[string]any, insert bool, actingUser string) ([]string, []any) {
	var cols []string
	var args []any
	for _, f := range schema.Fields {
		if v, ok := rec[f.Name]; ok {
			cols = append(cols, f.Name)
			args = append(args, v)
		}
	}
	if v, ok := rec[internal.ColBlocked]; ok {
		cols = append(cols, internal.ColBlocked)
		args = append(args, v)
	}
	if v, ok := rec[internal.ColWfStatus]; ok {
		cols = append(cols, internal.ColWfStatus)
		args = append(args, v)
	}
	if insert {
		cols = append(cols, internal.ColCreatedByUser)
		args = append(args, actingUser)
	}
	cols = append(cols, internal.ColChangedByUser)
	args = append(args, actingUser)
	return cols, args
}

// reconcileChildren syncs one declared child collection: in-memory elements
// are upserted in array order and stored rows whose ids are no longer in the
// payload are deleted. A declared child absent from the payload leaves the
// stored children untouched.
func (d *Document) reconcileChildren(ctx context.Context, tx *sql.Tx, child *internal.Schema, actingUser string) error {
	schema := d.def.Schema
	table := schema.ChildTable(child)
	raw, ok := d.data[table]
	if !ok {
		d.store.logger.Warn("payload for %s %d omits declared child collection %s; stored children left untouched", schema.Table, d.id, table)
		return nil
	}
	records, ok := asRecords(raw)
	if !ok {
		return internal.MissingParameterf("child collection %s of %s must be a list of records", table, schema.Table)
	}
	dialect := d.store.conn.Dialect()
	fk := schema.ForeignKey()

	query := selectChildIDsSQL(dialect, table, fk, child.ID())
	d.store.logger.Trace("reconcile: %s [%d]", query, d.id)
	rows, err := tx.QueryContext(ctx, query, d.id)
	if err != nil {
		return fmt.Errorf("error reading %s ids: %w", table, err)
	}
	current := make(map[int64]struct{})
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	childWF := d.def.Workflow.Child(table)
	for _, rec := range records {
		if cid, ok := toID(rec[child.ID()]); ok {
			cols, args := d.rowValues(child, rec, false, actingUser)
			query := updateSQL(dialect, table, child.ID(), cols)
			d.store.logger.Trace("reconcile: %s %v", query, args)
			if _, err := tx.ExecContext(ctx, query, append(args, cid)...); err != nil {
				return fmt.Errorf("error updating %s %d: %w", table, cid, err)
			}
			delete(current, cid)
			continue
		}
		if childWF != nil && toState(rec[internal.ColWfStatus]) == internal.StateUnset {
			rec[internal.ColWfStatus] = int64(childWF.Initial)
		}
		cols, args := d.rowValues(child, rec, true, actingUser)
		cols = append(cols, fk)
		args = append(args, d.id)
		newID, err := insertRecord(ctx, tx, dialect, table, child.ID(), cols, args)
		if err != nil {
			return fmt.Errorf("error inserting into %s: %w", table, err)
		}
		rec[child.ID()] = newID
	}

	if len(current) > 0 {
		removed := make([]int64, 0, len(current))
		for id := range current {
			removed = append(removed, id)
		}
		sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
		query := deleteChildrenSQL(dialect, table, fk, child.ID(), len(removed))
		args := make([]any, 0, len(removed)+1)
		args = append(args, d.id)
		for _, id := range removed {
			args = append(args, id)
		}
		d.store.logger.Trace("reconcile: %s %v", query, args)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("error deleting removed %s rows: %w", table, err)
		}
	}
	return nil
}

// insertRecord executes an insert and returns the generated identity.
func insertRecord(ctx context.Context, tx *sql.Tx, dialect internal.Dialect, table string, idCol string, cols []string, args []any) (int64, error) {
	query := insertSQL(dialect, table, idCol, cols)
	if dialect == internal.Postgres {
		var id int64
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// asRecords coerces a payload child collection into record maps. A nil value
// is an explicit empty collection (deleting all stored children), unlike an
// absent key.
func asRecords(v any) ([]map[string]any, bool) {
	switch list := v.(type) {
	case nil:
		return nil, true
	case []map[string]any:
		return list, true
	case []any:
		out := make([]map[string]any, 0, len(list))
		for _, e := range list {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	}
	return nil, false
}

// warnDrift logs a diagnostic for payload keys not declared by the schema
// and declared fields absent from the payload. Schema drift is reported,
// never enforced: payloads carry genuinely dynamic fields.
func (d *Document) warnDrift() {
	schema := d.def.Schema
	known := map[string]bool{schema.ID(): true}
	for _, f := range schema.Fields {
		known[f.Name] = true
	}
	for _, col := range internal.BookkeepingColumns {
		known[col] = true
	}
	for _, child := range schema.Related {
		known[schema.ChildTable(child)] = true
	}
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !known[k] {
			d.store.logger.Warn("payload for %s carries undeclared field %s", schema.Table, k)
		}
	}
	for _, f := range schema.Fields {
		if _, ok := d.data[f.Name]; !ok {
			d.store.logger.Warn("payload for %s omits declared field %s", schema.Table, f.Name)
		}
	}
}
