// Package docstore is the generic document persistence engine. Every business
// entity is a Definition (schema model + workflow model) handed to a shared
// Store; the Store resolves identity, lazily provisions storage, loads and
// saves whole aggregates, and drives workflow transitions.
package docstore

import (
	"context"
	"database/sql"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/go-common/logger"
	"golang.org/x/sync/singleflight"

	"github.com/restodesk/restodesk/internal"
)

// Connection is the injected provider of the process-wide database handle.
type Connection interface {
	DB(ctx context.Context) (*sql.DB, error)
	Dialect() internal.Dialect
}

// Definition bundles an entity's schema model with its optional workflow
// model. Entities construct one per concept, typically via MustDefinition at
// package init.
type Definition struct {
	Schema   *internal.Schema
	Workflow *internal.Workflow
}

// Validate asserts the definition supplies a consistent schema and, when a
// workflow is attached, that its per-child models reference declared child
// tables.
func (d Definition) Validate() error {
	if d.Schema == nil {
		return internal.DefinitionErrorf("definition has no schema model")
	}
	if err := d.Schema.Validate(); err != nil {
		return errors.Mark(err, internal.ErrDefinition)
	}
	if d.Workflow != nil {
		if err := d.Workflow.Validate(); err != nil {
			return errors.Mark(errors.Wrapf(err, "schema %s", d.Schema.Table), internal.ErrDefinition)
		}
		for table := range d.Workflow.Related {
			if d.Schema.Child(table) == nil {
				return internal.DefinitionErrorf("schema %s: workflow declares a model for unknown child table %s", d.Schema.Table, table)
			}
		}
	}
	return nil
}

// MustDefinition validates def and panics on failure. Entity definitions are
// static; an invalid one is a programming error caught at startup.
func MustDefinition(def Definition) Definition {
	if err := def.Validate(); err != nil {
		panic(err)
	}
	return def
}

// Config configures a Store.
type Config struct {
	Logger     logger.Logger
	Connection Connection

	// Catalog persists which tables have already been ensured so restarts
	// skip re-issuing idempotent DDL. Optional; without it the ensured set
	// lives only in process memory.
	Catalog *Catalog
}

// Store is the engine shared by every document of every entity.
type Store struct {
	logger  logger.Logger
	conn    Connection
	catalog *Catalog
	ensured sync.Map
	group   singleflight.Group
}

// New creates a Store.
func New(config Config) *Store {
	return &Store{
		logger:  config.Logger.WithPrefix("[docstore]"),
		conn:    config.Connection,
		catalog: config.Catalog,
	}
}

// Dialect returns the SQL flavor of the underlying store.
func (s *Store) Dialect() internal.Dialect {
	return s.conn.Dialect()
}
