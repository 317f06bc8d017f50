package fio

import (
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileLocker guards a log directory against a second writer process
type FileLocker interface {
	TryLock() (bool, error)
	Unlock() error
}

var _ FileLocker = (*flock.Flock)(nil)

// LockFileName is created in the log directory and held while a log is open
const LockFileName = "cmdlog.lock"

func NewDirLock(dir string) FileLocker {
	return flock.New(filepath.Join(dir, LockFileName))
}
