package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/storage/")
	require.NoError(t, err)

	stored, err := store.Put("logos", "PNG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "logos/"))
	assert.True(t, strings.HasSuffix(stored, ".png"))
	assert.Equal(t, "/storage/"+stored, store.URL(stored))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(stored))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(stored)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(stored), "deleting a missing file is a no-op")
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Delete("../etc/passwd"), ErrInvalidPath)
	assert.ErrorIs(t, store.Delete("logos/../../x"), ErrInvalidPath)
	assert.Empty(t, store.URL(""))
}
