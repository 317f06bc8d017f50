package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/cqkv/cmdlog/model"
	"github.com/cqkv/cmdlog/utils"
)

var le = binary.LittleEndian

var _ Codec = (*LogCodec)(nil)

// LogCodec is the default codec, stateless apart from the trace logger
type LogCodec struct {
	logger *slog.Logger
}

// NewLogCodec returns a codec tracing to logger, a nil logger discards the trace
func NewLogCodec(logger *slog.Logger) *LogCodec {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogCodec{logger: logger}
}

func (cl *LogCodec) Encode(rec model.Record, buf []byte) int {
	off := encodeRecord(rec, buf)

	// padding, panics if the encoder wrote past body_length
	end := rec.Header().RecordSize()
	clear(buf[off:end])

	if traceRecords {
		cl.logger.Debug("encode log record", "record", Describe(rec))
	}
	return end
}

// encodeRecord writes header, body and trailers and returns the offset after them,
// padding excluded
func encodeRecord(rec model.Record, buf []byte) int {
	var off int
	switch log := rec.(type) {
	case *model.ItemLinkLog:
		off = encodeItemLink(log, buf)
	case *model.ItemUnlinkLog:
		off = encodeItemUnlink(log, buf)
	case *model.ItemArithmeticLog:
		off = encodeItemArithmetic(log, buf)
	case *model.ItemSetattrLog:
		off = encodeItemSetattr(log, buf)
	case *model.ListElemInsertLog:
		off = encodeListElemInsert(log, buf)
	case *model.ListElemDeleteLog:
		off = encodeListElemDelete(log, buf)
	case *model.SetElemInsertLog:
		off = encodeSetElemInsert(log, buf)
	case *model.SetElemDeleteLog:
		off = encodeSetElemDelete(log, buf)
	case *model.MapElemInsertLog:
		off = encodeMapElemInsert(log, buf)
	case *model.MapElemDeleteLog:
		off = encodeMapElemDelete(log, buf)
	case *model.BtElemInsertLog:
		off = encodeBtElemInsert(log, buf)
	case *model.BtElemDeleteLog:
		off = encodeBtElemDelete(log, buf)
	case *model.BtElemArithmeticLog:
		off = encodeBtElemArithmetic(log, buf)
	case *model.SnapshotHeadLog:
		off = encodeSnapshotHead(log, buf)
	case *model.SnapshotTailLog:
		off = encodeSnapshotTail(log, buf)
	default:
		panic(fmt.Sprintf("codec: no encoder for %T", rec))
	}
	return off
}

func (cl *LogCodec) DecodeHeader(buf []byte) (model.LogHeader, error) {
	var hdr model.LogHeader
	if len(buf) < model.HeaderSize {
		return hdr, ErrTruncatedRecord
	}
	hdr.BodyLength = le.Uint32(buf[0:4])
	hdr.LogType = buf[4]
	hdr.UpdType = buf[5]
	if hdr.BodyLength%8 != 0 {
		return hdr, ErrCorruptRecord
	}
	if hdr.LogType >= model.NumLogTypes {
		return hdr, ErrUnknownLogType
	}
	return hdr, nil
}

func (cl *LogCodec) Decode(buf []byte) (model.Record, int, error) {
	hdr, err := cl.DecodeHeader(buf)
	if err != nil {
		return nil, 0, err
	}
	size := hdr.RecordSize()
	if len(buf) < size {
		return nil, 0, ErrTruncatedRecord
	}

	c := &cursor{body: buf[model.HeaderSize:size]}
	var rec model.Record
	switch hdr.LogType {
	case model.LogItLink:
		rec = decodeItemLink(c)
	case model.LogItUnlink:
		rec = decodeItemUnlink(c)
	case model.LogItArithmetic:
		rec = decodeItemArithmetic(c)
	case model.LogItSetattr:
		rec = decodeItemSetattr(c)
	case model.LogListElemInsert:
		rec = decodeListElemInsert(c)
	case model.LogListElemDelete:
		rec = decodeListElemDelete(c)
	case model.LogSetElemInsert:
		rec = decodeSetElemInsert(c)
	case model.LogSetElemDelete:
		rec = decodeSetElemDelete(c)
	case model.LogMapElemInsert:
		rec = decodeMapElemInsert(c)
	case model.LogMapElemDelete:
		rec = decodeMapElemDelete(c)
	case model.LogBtElemInsert:
		rec = decodeBtElemInsert(c)
	case model.LogBtElemDelete:
		rec = decodeBtElemDelete(c)
	case model.LogBtElemArithmetic:
		rec = decodeBtElemArithmetic(c)
	case model.LogSnapshotHead:
		rec = decodeSnapshotHead(c)
	case model.LogSnapshotTail:
		rec = new(model.SnapshotTailLog)
	}

	if err = c.finish(hdr.BodyLength); err != nil {
		return nil, 0, err
	}
	*rec.Header() = hdr
	return rec, size, nil
}

func (cl *LogCodec) Describe(rec model.Record) string {
	return Describe(rec)
}

func putHeader(buf []byte, hdr *model.LogHeader) int {
	le.PutUint32(buf[0:4], hdr.BodyLength)
	buf[4] = hdr.LogType
	buf[5] = hdr.UpdType
	buf[6] = 0
	buf[7] = 0
	return model.HeaderSize
}

// putBytes copies b at off and returns the next offset, a short buf panics instead
// of silently truncating
func putBytes(buf []byte, off int, b []byte) int {
	return off + copy(buf[off:off+len(b)], b)
}

func putBool(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func putCollAttrs(buf []byte, attrs *model.CollAttrs) {
	le.PutUint32(buf[0:4], attrs.Flags)
	le.PutUint32(buf[4:8], attrs.ExpireTime)
	le.PutUint32(buf[8:12], attrs.MaxCount)
	buf[12] = uint8(attrs.OvflAction)
	buf[13] = attrs.MFlags
	buf[14] = 0
	buf[15] = 0
}

// cursor walks a record body while decoding, the first error sticks
type cursor struct {
	body []byte
	off  int
	err  error
}

// next returns the following n bytes, capped so appends never reach into the next field
func (c *cursor) next(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > len(c.body)-c.off {
		c.err = ErrCorruptRecord
		return nil
	}
	b := c.body[c.off : c.off+n : c.off+n]
	c.off += n
	return b
}

// fixed returns the fixed part of the body, or a zeroed one after an error so that
// decoders can read it unconditionally
func (c *cursor) fixed(n int) []byte {
	b := c.next(n)
	if b == nil {
		return make([]byte, n)
	}
	return b
}

func (c *cursor) ovflAction(v uint8) model.OverflowAction {
	a := model.OverflowAction(v)
	if !a.Valid() && c.err == nil {
		c.err = ErrCorruptRecord
	}
	return a
}

func (c *cursor) bkeyLen(nbkey uint8) int {
	if nbkey != model.BkeyNull && nbkey > model.MaxBkeyLength && c.err == nil {
		c.err = ErrCorruptRecord
	}
	return model.RealBkeyLen(nbkey)
}

func (c *cursor) collAttrs(b []byte) model.CollAttrs {
	return model.CollAttrs{
		Flags:      le.Uint32(b[0:4]),
		ExpireTime: le.Uint32(b[4:8]),
		MaxCount:   le.Uint32(b[8:12]),
		OvflAction: c.ovflAction(b[12]),
		MFlags:     b[13],
	}
}

// finish checks that the decoded fields account for the whole body
func (c *cursor) finish(bodyLength uint32) error {
	if c.err != nil {
		return c.err
	}
	if utils.Align8(c.off) != int(bodyLength) {
		return ErrCorruptRecord
	}
	return nil
}
