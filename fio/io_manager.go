package fio

import "io"

// IOManager is the storage under one log or snapshot file. Records are only ever
// appended, reads go to absolute offsets. It can be custom in options.
type IOManager interface {
	// Read fills buf from offset, it may return io.EOF with a short count
	Read(buf []byte, offset int64) (int, error)
	// Write appends data at the end of the file
	Write(data []byte) (int, error)
	// Size is the number of bytes appended so far
	Size() (int64, error)
	Sync() error
	Close() error
}

type readerAt struct {
	m IOManager
}

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	return r.m.Read(p, off)
}

// NewSectionReader reads the first size bytes of m as a stream
func NewSectionReader(m IOManager, size int64) *io.SectionReader {
	return io.NewSectionReader(readerAt{m: m}, 0, size)
}
