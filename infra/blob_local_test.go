package infra

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStorage(t *testing.T) *LocalBlobStorage {
	t.Helper()
	storage, err := NewLocalBlobStorage(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)
	return storage
}

func TestLocalBlobStorage_StoreAndOpen(t *testing.T) {
	storage := newLocalStorage(t)
	ctx := context.Background()

	key, err := storage.Store(ctx, strings.NewReader("payload"), 7, "notes.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".txt"))
	assert.True(t, storage.Exists(ctx, key))

	reader, err := storage.Open(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))
}

func TestLocalBlobStorage_KeysAreDistinct(t *testing.T) {
	storage := newLocalStorage(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		key, err := storage.Store(ctx, strings.NewReader("x"), 1, "same.txt")
		require.NoError(t, err)
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestLocalBlobStorage_KeyWithoutExtension(t *testing.T) {
	storage := newLocalStorage(t)

	key, err := storage.Store(context.Background(), strings.NewReader("x"), 1, "Makefile")
	require.NoError(t, err)
	assert.False(t, strings.Contains(key, "."))
}

func TestLocalBlobStorage_RemoveIsIdempotent(t *testing.T) {
	storage := newLocalStorage(t)
	ctx := context.Background()

	key, err := storage.Store(ctx, strings.NewReader("x"), 1, "gone.txt")
	require.NoError(t, err)

	require.NoError(t, storage.Remove(ctx, key))
	assert.False(t, storage.Exists(ctx, key))

	// Removing an absent blob is not an error.
	assert.NoError(t, storage.Remove(ctx, key))
}

func TestLocalBlobStorage_OpenMissing(t *testing.T) {
	storage := newLocalStorage(t)

	_, err := storage.Open(context.Background(), "nope")
	assert.Error(t, err)
}
