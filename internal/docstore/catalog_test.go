package docstore

import (
	"path/filepath"
	"testing"

	"github.com/shopmonkeyus/go-common/logger"
	"github.com/stretchr/testify/assert"
)

func TestCatalogMarkAndHas(t *testing.T) {
	catalog, err := NewCatalog(logger.NewTestLogger(), "")
	assert.NoError(t, err)
	defer catalog.Close()

	found, err := catalog.Has("eatery", "aaaa")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, catalog.Mark("eatery", "aaaa"))

	found, err = catalog.Has("eatery", "aaaa")
	assert.NoError(t, err)
	assert.True(t, found)

	// a different fingerprint for the same table is not provisioned
	found, err = catalog.Has("eatery", "bbbb")
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestCatalogOnDisk(t *testing.T) {
	dir := t.TempDir()
	catalog, err := NewCatalog(logger.NewTestLogger(), dir)
	assert.NoError(t, err)
	assert.NoError(t, catalog.Mark("meal", "cccc"))
	assert.NoError(t, catalog.Close())

	reopened, err := NewCatalog(logger.NewTestLogger(), dir)
	assert.NoError(t, err)
	defer reopened.Close()
	found, err := reopened.Has("meal", "cccc")
	assert.NoError(t, err)
	assert.True(t, found)
}

func TestCatalogFilenameFromDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/data", "restodesk-catalog.db"), CatalogFilenameFromDir("/tmp/data"))
}
