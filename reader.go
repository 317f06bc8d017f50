package cmdlog

import (
	"bytes"
	"errors"
	"io"

	"github.com/cqkv/cmdlog/codec"
	"github.com/cqkv/cmdlog/model"
)

// Reader reads records back from a command log or snapshot stream
type Reader struct {
	r     io.Reader
	codec codec.Codec

	header [model.HeaderSize]byte
	offset int64
	// size of the stream, negative when unknown
	limit int64
}

// readChunk caps how much a body read of unknown size allocates ahead of the data
const readChunk = 64 * 1024

func NewReader(r io.Reader, c codec.Codec) *Reader {
	return NewSizedReader(r, -1, c)
}

// NewSizedReader reads a stream known to hold size bytes, a record claiming more
// than what is left fails with ErrTruncatedRecord before its body is read.
func NewSizedReader(r io.Reader, size int64, c codec.Codec) *Reader {
	if c == nil {
		c = codec.NewLogCodec(nil)
	}
	return &Reader{r: r, codec: c, limit: size}
}

// Next returns the next record, io.EOF at a clean end and ErrTruncatedRecord when
// the stream ends inside a record. Every record gets its own buffer, so the returned
// record stays valid.
func (rd *Reader) Next() (model.Record, error) {
	n, err := io.ReadFull(rd.r, rd.header[:])
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, ErrTruncatedRecord
	case err != nil:
		return nil, err
	}

	hdr, err := rd.codec.DecodeHeader(rd.header[:n])
	if err != nil {
		return nil, err
	}

	buf, err := rd.readRecord(hdr.RecordSize())
	if err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncatedRecord
		}
		return nil, err
	}

	rec, size, err := rd.codec.Decode(buf)
	if err != nil {
		return nil, err
	}
	rd.offset += int64(size)
	return rec, nil
}

// Offset is the position after the last record returned by Next
func (rd *Reader) Offset() int64 {
	return rd.offset
}

// readRecord returns the record of size bytes whose header was just read
func (rd *Reader) readRecord(size int) ([]byte, error) {
	bodyLen := int64(size - model.HeaderSize)
	if rd.limit >= 0 {
		if bodyLen > rd.limit-rd.offset-model.HeaderSize {
			return nil, io.ErrUnexpectedEOF
		}
		buf := make([]byte, size)
		copy(buf, rd.header[:])
		_, err := io.ReadFull(rd.r, buf[model.HeaderSize:])
		return buf, err
	}

	var b bytes.Buffer
	if size <= readChunk {
		b.Grow(size)
	} else {
		b.Grow(readChunk)
	}
	b.Write(rd.header[:])
	n, err := io.CopyN(&b, rd.r, bodyLen)
	if n < bodyLen && err == nil {
		err = io.ErrUnexpectedEOF
	}
	return b.Bytes(), err
}
