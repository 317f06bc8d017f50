package codec

import "github.com/cqkv/cmdlog/model"

// Snapshot Head Log Record: header | version(4) reserved(4) | created_at(8)
func encodeSnapshotHead(log *model.SnapshotHeadLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.SnapshotHeadFixedSize]
	le.PutUint32(b[0:4], log.Version)
	le.PutUint32(b[4:8], 0)
	le.PutUint64(b[8:16], uint64(log.CreatedAt))
	return off + model.SnapshotHeadFixedSize
}

func decodeSnapshotHead(c *cursor) model.Record {
	log := new(model.SnapshotHeadLog)
	b := c.fixed(model.SnapshotHeadFixedSize)
	log.Version = le.Uint32(b[0:4])
	log.CreatedAt = int64(le.Uint64(b[8:16]))
	return log
}

// Snapshot Tail Log Record: header only
func encodeSnapshotTail(log *model.SnapshotTailLog, buf []byte) int {
	return putHeader(buf, &log.Hdr)
}
