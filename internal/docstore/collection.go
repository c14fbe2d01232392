package docstore

import (
	"context"
)

// Collection returns the identities of the entity's rows matching the
// where fragment, always excluding soft-deleted (blocked) records, ordered
// and limited as requested. where and order are SQL fragments in the
// configured dialect; args bind the where placeholders. Callers re-hydrate
// each identity through ByID + Load. This is the engine's only multi-row
// read path: no joins, no aggregation.
func (s *Store) Collection(ctx context.Context, def Definition, where string, args []any, order string, limit int) ([]int64, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensure(ctx, def.Schema); err != nil {
		return nil, err
	}
	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	query := collectionSQL(s.conn.Dialect(), def.Schema.Table, def.Schema.ID(), where, order, limit)
	s.logger.Trace("collection: %s %v", query, args)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
