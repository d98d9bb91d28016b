package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, fsys FileSystem, dir string, data []byte) (string, error) {
	t.Helper()

	f, err := fsys.CreateTemp(dir, ".tmp-*")
	require.NoError(t, err)

	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return f.Name(), err
}

func TestLocalFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	lfs := LocalFS{}

	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	tmp, err := writeTemp(t, lfs, dir, []byte("hello"))
	require.NoError(t, err)

	target := filepath.Join(dir, "blob")
	require.NoError(t, lfs.Rename(tmp, target))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	link := filepath.Join(dir, "link")
	require.NoError(t, lfs.Link(target, link))
	assert.Error(t, lfs.Link(target, link))

	require.NoError(t, lfs.Remove(link))
	_, err = os.Stat(link)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFSWriteLimit(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp-", Fault{FailAfterBytes: 3})

	_, err := writeTemp(t, ffs, dir, []byte("hello"))
	require.ErrorIs(t, err, ErrInjected)

	_, err = writeTemp(t, ffs, dir, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), ffs.Written())
}

func TestFaultyFSSyncAndClose(t *testing.T) {
	boom := errors.New("boom")

	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp-", Fault{FailAfterBytes: -1, FailOnSync: true, Err: boom})

	_, err := writeTemp(t, ffs, t.TempDir(), []byte("x"))
	require.ErrorIs(t, err, boom)

	ffs = NewFaultyFS(nil)
	ffs.AddRule(".tmp-", Fault{FailAfterBytes: -1, FailOnClose: true})

	_, err = writeTemp(t, ffs, t.TempDir(), []byte("x"))
	require.ErrorIs(t, err, ErrInjected)
}

func TestFaultyFSRenameAndLink(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("CURRENT", Fault{FailAfterBytes: -1, FailOnRename: true})
	ffs.AddRule("MANIFEST", Fault{FailAfterBytes: -1, FailOnLink: true})

	tmp, err := writeTemp(t, ffs, dir, []byte("x"))
	require.NoError(t, err)

	require.ErrorIs(t, ffs.Rename(tmp, filepath.Join(dir, "CURRENT")), ErrInjected)
	require.ErrorIs(t, ffs.Link(tmp, filepath.Join(dir, "MANIFEST-1")), ErrInjected)
	require.NoError(t, ffs.Rename(tmp, filepath.Join(dir, "other")))
}

func TestFaultyFSLongestRuleWins(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("gen-", Fault{FailAfterBytes: -1, FailOnRename: true})
	ffs.AddRule("gen-1/keep", Fault{FailAfterBytes: -1})

	fault, ok := ffs.match("/root/gen-1/keep")
	require.True(t, ok)
	assert.False(t, fault.FailOnRename)

	fault, ok = ffs.match("/root/gen-1/other")
	require.True(t, ok)
	assert.True(t, fault.FailOnRename)

	_, ok = ffs.match("/root/CURRENT")
	assert.False(t, ok)
}
