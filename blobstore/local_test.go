package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	storeContract(t, NewLocalStore(t.TempDir()))
}

func TestLocalStoreLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)

	require.NoError(t, s.Put(ctx, "manifests/00000001.json.zst", []byte("m")))
	_, err := os.Stat(filepath.Join(root, "manifests", "00000001.json.zst"))
	require.NoError(t, err)

	// An abandoned writer leaves only a temp file, which List hides.
	w, err := s.Create(ctx, "icons/pending.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("half"))
	require.NoError(t, err)

	names, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"manifests/00000001.json.zst"}, names)
	require.NoError(t, w.Close())

	b, err := s.Open(ctx, "icons/pending.bin")
	require.NoError(t, err)
	m, ok := b.(Mappable)
	require.True(t, ok)
	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "half", string(data))
	require.NoError(t, b.Close())
}

func TestLocalStoreRejectsEscapes(t *testing.T) {
	s := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.Error(t, s.Put(ctx, "../outside", []byte("x")))
	_, err := s.Open(ctx, "/etc/passwd")
	require.Error(t, err)
}

func TestLocalStoreMissingRoot(t *testing.T) {
	s := NewLocalStore(filepath.Join(t.TempDir(), "not-yet"))
	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
