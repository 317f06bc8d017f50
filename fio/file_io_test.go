package fio

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileIO_Write(t *testing.T) {
	fio, err := NewFileIO(filepath.Join(t.TempDir(), "data"))
	require.Nil(t, err)
	defer fio.Close()

	n, err := fio.Write([]byte("hello"))
	assert.Nil(t, err)
	assert.Equal(t, 5, n)
}

func TestFileIO_Read(t *testing.T) {
	fio, err := NewFileIO(filepath.Join(t.TempDir(), "data"))
	require.Nil(t, err)
	defer fio.Close()

	n, err := fio.Write([]byte("hello"))
	assert.Nil(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 5)
	n, err = fio.Read(buf, 0)
	assert.Nil(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))
}

func TestFileIO_Size(t *testing.T) {
	fio, err := NewFileIO(filepath.Join(t.TempDir(), "data"))
	require.Nil(t, err)
	defer fio.Close()

	size, err := fio.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), size)

	_, err = fio.Write([]byte("hello"))
	assert.Nil(t, err)
	assert.Nil(t, fio.Sync())

	size, err = fio.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(5), size)
}

func TestNewSectionReader(t *testing.T) {
	fio, err := NewFileIO(filepath.Join(t.TempDir(), "data"))
	require.Nil(t, err)
	defer fio.Close()

	_, err = fio.Write([]byte("hello world"))
	require.Nil(t, err)

	data, err := io.ReadAll(NewSectionReader(fio, 5))
	assert.Nil(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestNewDirLock(t *testing.T) {
	dir := t.TempDir()

	first := NewDirLock(dir)
	ok, err := first.TryLock()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.FileExists(t, filepath.Join(dir, LockFileName))

	second := NewDirLock(dir)
	ok, err = second.TryLock()
	assert.Nil(t, err)
	assert.False(t, ok)

	require.Nil(t, first.Unlock())
	ok, err = second.TryLock()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Nil(t, second.Unlock())
}
