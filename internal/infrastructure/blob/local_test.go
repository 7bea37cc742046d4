package blob

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutOpenRoundtrip(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("hello blob")
	n, err := s.Put(ctx, "abcdef0123456789.txt", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)

	rc, err := s.Open(ctx, "abcdef0123456789.txt")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestLocalPutLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "key.bin", bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalOpenMissingKey(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "nothere.bin")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Put(ctx, "gone.bin", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "gone.bin"))
	require.NoError(t, s.Delete(ctx, "gone.bin"))

	_, err = s.Open(ctx, "gone.bin")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalRejectsPathTraversalKeys(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape.txt", "a/b.txt"} {
		_, err = s.Put(ctx, key, bytes.NewReader([]byte("x")))
		assert.Error(t, err, "key %q", key)

		_, err = s.Open(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}
