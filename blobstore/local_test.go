package blobstore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ifs "github.com/hupe1980/collections/internal/fs"
)

func TestLocalStoreFailedWriteKeepsOldBlob(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	ffs := ifs.NewFaultyFS(nil)
	store := newLocalStoreFS(root, ffs)

	require.NoError(t, store.Put(ctx, "a", []byte("old")))

	ffs.AddRule(tempPrefix, ifs.Fault{FailAfterBytes: -1, FailOnSync: true})
	require.ErrorIs(t, store.Put(ctx, "a", []byte("new")), ifs.ErrInjected)

	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLocalStoreFailedRename(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	ffs := ifs.NewFaultyFS(nil)
	ffs.AddRule("CURRENT", ifs.Fault{FailAfterBytes: -1, FailOnRename: true})
	store := newLocalStoreFS(root, ffs)

	require.ErrorIs(t, store.Put(ctx, "CURRENT", []byte("x")), ifs.ErrInjected)

	_, err := store.Open(ctx, "CURRENT")
	require.ErrorIs(t, err, ErrNotFound)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStoreFailedLink(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	ffs := ifs.NewFaultyFS(nil)
	ffs.AddRule("MANIFEST-", ifs.Fault{FailAfterBytes: -1, FailOnLink: true})
	store := newLocalStoreFS(root, ffs)

	err := store.PutIfNotExists(ctx, "MANIFEST-1.json", []byte("x"))
	require.ErrorIs(t, err, ifs.ErrInjected)
	assert.NotErrorIs(t, err, ErrConflict)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
