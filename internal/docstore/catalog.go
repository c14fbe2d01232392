package docstore

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/shopmonkeyus/go-common/logger"
	"github.com/tidwall/buntdb"
)

// Catalog remembers which (table, schema fingerprint) pairs have already been
// provisioned so a restarted process skips re-issuing the idempotent DDL.
type Catalog struct {
	logger logger.Logger
	db     *buntdb.DB
	once   sync.Once
}

// CatalogFilenameFromDir returns the catalog database path for a data
// directory.
func CatalogFilenameFromDir(dir string) string {
	return filepath.Join(dir, "restodesk-catalog.db")
}

// NewCatalog opens the catalog database. An empty dir keeps the catalog in
// memory only, which still deduplicates within the process lifetime.
func NewCatalog(log logger.Logger, dir string) (*Catalog, error) {
	filename := ":memory:"
	if dir != "" {
		filename = CatalogFilenameFromDir(dir)
	}
	db, err := buntdb.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog db: %w", err)
	}
	return &Catalog{
		logger: log.WithPrefix("[catalog]"),
		db:     db,
	}, nil
}

// Has reports whether table was already provisioned with the given schema
// fingerprint.
func (c *Catalog) Has(table string, sum string) (bool, error) {
	var found bool
	err := c.db.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get("table:"+table, false)
		if err != nil {
			if err == buntdb.ErrNotFound {
				return nil
			}
			return err
		}
		found = val == sum
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to read catalog: %w", err)
	}
	return found, nil
}

// Mark records that table was provisioned with the given schema fingerprint.
func (c *Catalog) Mark(table string, sum string) error {
	err := c.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("table:"+table, sum, nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Close will close the catalog and the underlying database.
func (c *Catalog) Close() error {
	c.logger.Debug("closing")
	c.once.Do(func() {
		c.db.Shrink()
		c.db.Close()
	})
	c.logger.Debug("closed")
	return nil
}
