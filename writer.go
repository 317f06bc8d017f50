package cmdlog

import (
	"fmt"

	"github.com/cqkv/cmdlog/codec"
	"github.com/cqkv/cmdlog/model"
	"github.com/cqkv/cmdlog/utils"
)

// recordWriter encodes records straight into an append buffer and writes it out
// to one file when full. It also keeps the size and checksum of what it wrote.
// Not safe for concurrent use.
type recordWriter struct {
	file  *model.LogFile
	codec codec.Codec

	buf []byte
	n   int // buffered bytes

	crc uint32
}

func newRecordWriter(file *model.LogFile, c codec.Codec, bufferSize int) *recordWriter {
	return &recordWriter{
		file:  file,
		codec: c,
		buf:   make([]byte, bufferSize),
	}
}

// append returns the position the record will have once it is flushed
func (w *recordWriter) append(rec model.Record) (*model.RecordPos, error) {
	size := rec.Header().RecordSize()
	if size > len(w.buf)-w.n {
		if err := w.flush(); err != nil {
			return nil, err
		}
	}

	pos := &model.RecordPos{
		Fid:    w.file.Fid,
		Size:   uint32(size),
		Offset: w.file.WriteOffset + int64(w.n),
	}

	// too large for the buffer, encode into a one off slice
	if size > len(w.buf) {
		data := make([]byte, size)
		w.codec.Encode(rec, data)
		if err := w.write(data); err != nil {
			return nil, err
		}
		return pos, nil
	}

	w.n += w.codec.Encode(rec, w.buf[w.n:w.n+size])
	return pos, nil
}

func (w *recordWriter) flush() error {
	if w.n == 0 {
		return nil
	}
	if err := w.write(w.buf[:w.n]); err != nil {
		return err
	}
	w.n = 0
	return nil
}

func (w *recordWriter) write(data []byte) error {
	if err := w.file.Write(data); err != nil {
		return fmt.Errorf("write log file %d: %w", w.file.Fid, err)
	}
	w.crc = utils.UpdateCrc(w.crc, data)
	return nil
}

func (w *recordWriter) sync() error {
	if err := w.flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// size is the number of bytes written plus buffered
func (w *recordWriter) size() int64 {
	return w.file.WriteOffset + int64(w.n)
}
