package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises the BlobStore contract against any
// implementation.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) BlobStore) {
	t.Helper()

	ctx := context.Background()

	t.Run("open missing", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Open(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put and read", func(t *testing.T) {
		s := newStore(t)

		data := []byte("hello archive")
		require.NoError(t, s.Put(ctx, "a", data))

		b, err := s.Open(ctx, "a")
		require.NoError(t, err)
		defer b.Close()

		assert.Equal(t, int64(len(data)), b.Size())

		got, err := ReadAll(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("ranged read", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "a", []byte("0123456789")))

		b, err := s.Open(ctx, "a")
		require.NoError(t, err)
		defer b.Close()

		p := make([]byte, 4)

		n, err := b.ReadAt(ctx, p, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []byte("3456"), p)

		// Read past the end yields a short read and EOF.
		n, err = b.ReadAt(ctx, p, 8)
		assert.Equal(t, 2, n)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("overwrite", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "a", []byte("first")))
		require.NoError(t, s.Put(ctx, "a", []byte("second")))

		got, err := Fetch(ctx, s, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "a", []byte("data")))
		require.NoError(t, s.Delete(ctx, "a"))

		_, err := s.Open(ctx, "a")
		assert.ErrorIs(t, err, ErrNotFound)

		// Deleting a missing blob is not an error.
		assert.NoError(t, s.Delete(ctx, "a"))
	})

	t.Run("list", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Put(ctx, "snap/001", []byte("a")))
		require.NoError(t, s.Put(ctx, "snap/002", []byte("b")))
		require.NoError(t, s.Put(ctx, "other", []byte("c")))

		names, err := s.List(ctx, "snap/")
		require.NoError(t, err)
		assert.Equal(t, []string{"snap/001", "snap/002"}, names)

		all, err := s.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"other", "snap/001", "snap/002"}, all)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) BlobStore {
		return NewMemoryStore()
	})
}

func TestLocalStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) BlobStore {
		return NewLocalStore(t.TempDir())
	})
}

func TestLocalStoreMappable(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStore(t.TempDir())

	require.NoError(t, s.Put(ctx, "a", []byte("mapped data")))

	b, err := s.Open(ctx, "a")
	require.NoError(t, err)
	defer b.Close()

	m, ok := b.(Mappable)
	require.True(t, ok)

	data, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("mapped data"), data)
}

func TestMemoryStoreOpenSnapshotsData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "a", []byte("before")))

	b, err := s.Open(ctx, "a")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, s.Put(ctx, "a", []byte("after!")))

	got, err := ReadAll(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, []byte("before"), got)
}
