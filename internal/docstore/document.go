package docstore

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/restodesk/restodesk/internal"
)

// Document is one runtime instance of a persisted entity: an optional
// identity, an in-memory payload keyed by column name (child collections
// appear under their stored table names as []map[string]any), and the
// definition that governs it.
type Document struct {
	store *Store
	def   Definition

	id    int64
	hasID bool

	// unique-field probe, resolved lazily on Load
	probeField string
	probeValue any

	data      map[string]any
	populated bool
}

// NewEmpty returns an unpersisted document with a fresh payload. The first
// Save inserts it and assigns its identity.
func (s *Store) NewEmpty(def Definition) *Document {
	data := map[string]any{internal.ColCreated: time.Now()}
	if def.Workflow != nil {
		data[internal.ColWfStatus] = int64(def.Workflow.Initial)
	}
	return &Document{store: s, def: def, data: data, populated: true}
}

// ByID returns a document referencing an existing record. The payload stays
// unpopulated until Load.
func (s *Store) ByID(def Definition, id int64) *Document {
	return &Document{store: s, def: def, id: id, hasID: true}
}

// ByData returns a document hydrated from an inline payload. When the
// payload carries an id it is adopted; otherwise the document is treated as
// new and its wfStatus is set to the workflow's initial state.
func (s *Store) ByData(def Definition, data map[string]any) *Document {
	d := &Document{store: s, def: def, data: data, populated: true}
	if def.Schema != nil {
		if id, ok := toID(data[def.Schema.ID()]); ok {
			d.id = id
			d.hasID = true
			return d
		}
	}
	if def.Workflow != nil && toState(data[internal.ColWfStatus]) == internal.StateUnset {
		data[internal.ColWfStatus] = int64(def.Workflow.Initial)
	}
	return d
}

// ByUniqueField returns a document referencing the single record whose
// declared unique field equals value. The identity is resolved on Load;
// zero or multiple matches fail with a not-found error.
func (s *Store) ByUniqueField(def Definition, field string, value any) *Document {
	return &Document{store: s, def: def, probeField: field, probeValue: value}
}

// ID returns the document's identity, failing while the document is
// unpersisted or an unresolved unique-field reference.
func (d *Document) ID() (int64, error) {
	if !d.hasID {
		return 0, errors.Mark(errors.New("document has no identity yet"), internal.ErrNotReady)
	}
	return d.id, nil
}

// Data returns the in-memory payload, failing before the document is
// populated. Callers mutate the returned map in place and Save.
func (d *Document) Data() (map[string]any, error) {
	if !d.populated {
		return nil, errors.Mark(errors.New("document data is not populated"), internal.ErrNotReady)
	}
	return d.data, nil
}

// LoadData populates the document directly from the given payload instead of
// from storage, typically to stage fields before an insert.
func (d *Document) LoadData(data map[string]any) {
	d.data = data
	if id, ok := toID(data[d.def.Schema.ID()]); ok {
		d.id = id
		d.hasID = true
	}
	d.populated = true
}

// toID extracts a positive numeric identity from a payload value.
func toID(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, n > 0
	case int:
		return int64(n), n > 0
	case int32:
		return int64(n), n > 0
	case uint64:
		return int64(n), n > 0
	case float64:
		// JSON numbers decode as float64
		return int64(n), n > 0
	}
	return 0, false
}

// toState extracts a workflow state from a payload value.
func toState(v any) internal.State {
	switch n := v.(type) {
	case internal.State:
		return n
	case int64:
		return internal.State(n)
	case int:
		return internal.State(n)
	case float64:
		return internal.State(n)
	}
	return internal.StateUnset
}

// normalize converts driver-level values to payload values.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
