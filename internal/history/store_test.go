package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefaultPathIsSharedLocation(t *testing.T) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		t.Skip("no user config dir in this environment")
	}
	// The GUI and the CLI must agree on one database, not keep
	// app-private copies
	assert.Equal(t, filepath.Join(configDir, "iautotransfer", "history.db"), DefaultPath())
}

func TestRecordAndSeen(t *testing.T) {
	store := openTestStore(t)

	seen, err := store.Seen("/DCIM/100APPLE/IMG_0001.JPG", 100)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, store.Record("/DCIM/100APPLE/IMG_0001.JPG", "/dest/IMG_0001.JPG", 100))

	seen, err = store.Seen("/DCIM/100APPLE/IMG_0001.JPG", 100)
	require.NoError(t, err)
	assert.True(t, seen)

	// Same name but different size is a different file
	seen, err = store.Seen("/DCIM/100APPLE/IMG_0001.JPG", 999)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestCountAndRecent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record("/DCIM/100APPLE/IMG_0001.JPG", "/dest/IMG_0001.JPG", 100))
	require.NoError(t, store.Record("/DCIM/100APPLE/IMG_0002.HEIC", "/dest/IMG_0002.HEIC", 200))

	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/DCIM/100APPLE/IMG_0002.HEIC", entries[0].RemotePath, "newest first")
	assert.Equal(t, int64(200), entries[0].Size)
	assert.False(t, entries[0].CopiedAt.IsZero())
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record("/DCIM/100APPLE/IMG_0001.JPG", "/dest/IMG_0001.JPG", 1))
}
