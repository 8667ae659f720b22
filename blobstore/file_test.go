package blobstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	ref, err := store.Put(ctx, []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "file://"), "ref %q should carry the file scheme", ref)

	got, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), got)
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "file://does-not-exist.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRejectsForeignScheme(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "s3://bucket/key.jpg")
	assert.Error(t, err)

	_, err = store.Get(context.Background(), "no-scheme")
	assert.Error(t, err)
}

func TestFileStoreDeleteAndList(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	ref1, err := store.Put(ctx, []byte("one"))
	require.NoError(t, err)
	ref2, err := store.Put(ctx, []byte("two"))
	require.NoError(t, err)

	refs, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{ref1, ref2}, refs)

	require.NoError(t, store.Delete(ctx, ref1))
	_, err = store.Get(ctx, ref1)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is not an error.
	assert.NoError(t, store.Delete(ctx, ref1))

	refs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ref2}, refs)
}
