package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "out")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "a.argb")
	f, err := lfs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	require.NoError(t, err)
	assert.Equal(t, path, f.Name())

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	info, err := lfs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	renamed := filepath.Join(dir, "b.argb")
	require.NoError(t, lfs.Rename(path, renamed))
	_, err = lfs.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, lfs.Remove(renamed))
	_, err = lfs.Stat(renamed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFaultyFS(t *testing.T) {
	open := func(t *testing.T, ffs *FaultyFS, name string) File {
		t.Helper()
		f, err := ffs.OpenFile(filepath.Join(t.TempDir(), name), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		t.Cleanup(func() { _ = f.Close() })
		return f
	}

	t.Run("WriteLimit", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("limited", Fault{FailAfterBytes: 4})

		f := open(t, ffs, "limited.bin")
		n, err := f.Write([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = f.Write([]byte("def"))
		assert.ErrorIs(t, err, ErrInjected)
		assert.Equal(t, 1, n)

		_, err = f.Write([]byte("g"))
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("Sync", func(t *testing.T) {
		custom := os.ErrPermission
		ffs := NewFaultyFS(nil)
		ffs.AddRule("sync", Fault{FailOnSync: true, Err: custom})

		f := open(t, ffs, "sync.bin")
		assert.ErrorIs(t, f.Sync(), custom)
	})

	t.Run("Close", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("close", Fault{FailOnClose: true})

		f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "close.bin"), os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		assert.ErrorIs(t, f.Close(), ErrInjected)
	})

	t.Run("Rename", func(t *testing.T) {
		dir := t.TempDir()
		ffs := NewFaultyFS(nil)
		ffs.AddRule("stuck", Fault{FailOnRename: true})

		src := filepath.Join(dir, "stuck.bin")
		require.NoError(t, os.WriteFile(src, nil, 0o644))
		assert.ErrorIs(t, ffs.Rename(src, filepath.Join(dir, "dst.bin")), ErrInjected)
	})

	t.Run("NoMatch", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("other", Fault{FailOnSync: true})

		f := open(t, ffs, "plain.bin")
		_, err := f.Write([]byte("data"))
		require.NoError(t, err)
		assert.NoError(t, f.Sync())
	})
}
