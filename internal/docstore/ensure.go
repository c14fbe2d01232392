package docstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/restodesk/restodesk/internal"
)

// Ensure provisions the aggregate's storage (tables, indexes, foreign keys)
// if it does not exist yet. It runs as an explicit step before the first DML
// against an aggregate rather than as a startup migration: the first load or
// save of an entity creates its tables, later calls are no-ops. Concurrent
// first-writers are collapsed by singleflight inside the process and by the
// IF NOT EXISTS semantics of the DDL across processes.
func (s *Store) Ensure(ctx context.Context, def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	return s.ensure(ctx, def.Schema)
}

func (s *Store) ensure(ctx context.Context, schema *internal.Schema) error {
	script := Script(s.conn.Dialect(), schema)
	sum := fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(script, "\n")))
	key := schema.Table + ":" + sum
	if _, ok := s.ensured.Load(key); ok {
		return nil
	}
	_, err, _ := s.group.Do(key, func() (interface{}, error) {
		if _, ok := s.ensured.Load(key); ok {
			return nil, nil
		}
		if s.catalog != nil {
			ok, err := s.catalog.Has(schema.Table, sum)
			if err != nil {
				return nil, err
			}
			if ok {
				s.logger.Trace("schema for %s already provisioned (%s)", schema.Table, sum)
				s.ensured.Store(key, struct{}{})
				return nil, nil
			}
		}
		db, err := s.conn.DB(ctx)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("provisioning schema for %s (%d statements)", schema.Table, len(script))
		for _, stmt := range script {
			s.logger.Trace("executing: %s", stmt)
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return nil, fmt.Errorf("error provisioning %s: %w", schema.Table, err)
			}
			internal.DDLStatements.Inc()
		}
		if s.catalog != nil {
			if err := s.catalog.Mark(schema.Table, sum); err != nil {
				return nil, err
			}
		}
		s.ensured.Store(key, struct{}{})
		return nil, nil
	})
	return err
}
