package codec

import "github.com/cqkv/cmdlog/model"

// List Element Insert Log Record: header | fixed | attrs | key | value
func encodeListElemInsert(log *model.ListElemInsertLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.ListElemInsertFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.Create)
	b[3] = 0
	le.PutUint32(b[4:8], log.ValueLen)
	le.PutUint32(b[8:12], uint32(log.Index))
	le.PutUint32(b[12:16], log.TotalCount)
	putCollAttrs(b[16:], &log.Attrs)
	off += model.ListElemInsertFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.Value[:log.ValueLen])
}

func decodeListElemInsert(c *cursor) model.Record {
	log := new(model.ListElemInsertLog)
	b := c.fixed(model.ListElemInsertFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.Create = b[2] != 0
	log.ValueLen = le.Uint32(b[4:8])
	log.Index = int32(le.Uint32(b[8:12]))
	log.TotalCount = le.Uint32(b[12:16])
	log.Attrs = c.collAttrs(b[16:])
	log.Key = c.next(int(log.KeyLen))
	log.Value = c.next(int(log.ValueLen))
	return log
}

// List Element Delete Log Record: header | fixed | key
func encodeListElemDelete(log *model.ListElemDeleteLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.ListElemDeleteFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.DropIfEmpty)
	b[3] = 0
	le.PutUint32(b[4:8], uint32(log.Index))
	le.PutUint32(b[8:12], log.Count)
	le.PutUint32(b[12:16], 0)
	off += model.ListElemDeleteFixedSize

	return putBytes(buf, off, log.Key[:log.KeyLen])
}

func decodeListElemDelete(c *cursor) model.Record {
	log := new(model.ListElemDeleteLog)
	b := c.fixed(model.ListElemDeleteFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.DropIfEmpty = b[2] != 0
	log.Index = int32(le.Uint32(b[4:8]))
	log.Count = le.Uint32(b[8:12])
	log.Key = c.next(int(log.KeyLen))
	return log
}

// Set Element Insert Log Record: header | fixed | attrs | key | value
func encodeSetElemInsert(log *model.SetElemInsertLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.SetElemInsertFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.Create)
	b[3] = 0
	le.PutUint32(b[4:8], log.ValueLen)
	putCollAttrs(b[8:], &log.Attrs)
	off += model.SetElemInsertFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.Value[:log.ValueLen])
}

func decodeSetElemInsert(c *cursor) model.Record {
	log := new(model.SetElemInsertLog)
	b := c.fixed(model.SetElemInsertFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.Create = b[2] != 0
	log.ValueLen = le.Uint32(b[4:8])
	log.Attrs = c.collAttrs(b[8:])
	log.Key = c.next(int(log.KeyLen))
	log.Value = c.next(int(log.ValueLen))
	return log
}

// Set Element Delete Log Record: header | fixed | key | value
func encodeSetElemDelete(log *model.SetElemDeleteLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.SetElemDeleteFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.DropIfEmpty)
	b[3] = 0
	le.PutUint32(b[4:8], log.ValueLen)
	off += model.SetElemDeleteFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.Value[:log.ValueLen])
}

func decodeSetElemDelete(c *cursor) model.Record {
	log := new(model.SetElemDeleteLog)
	b := c.fixed(model.SetElemDeleteFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.DropIfEmpty = b[2] != 0
	log.ValueLen = le.Uint32(b[4:8])
	log.Key = c.next(int(log.KeyLen))
	log.Value = c.next(int(log.ValueLen))
	return log
}

// Map Element Insert Log Record: header | fixed | attrs | key | field | value
func encodeMapElemInsert(log *model.MapElemInsertLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.MapElemInsertFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.Create)
	b[3] = log.FieldLen
	le.PutUint32(b[4:8], log.ValueLen)
	putCollAttrs(b[8:], &log.Attrs)
	off += model.MapElemInsertFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	off = putBytes(buf, off, log.Field[:log.FieldLen])
	return putBytes(buf, off, log.Value[:log.ValueLen])
}

func decodeMapElemInsert(c *cursor) model.Record {
	log := new(model.MapElemInsertLog)
	b := c.fixed(model.MapElemInsertFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.Create = b[2] != 0
	log.FieldLen = b[3]
	log.ValueLen = le.Uint32(b[4:8])
	log.Attrs = c.collAttrs(b[8:])
	log.Key = c.next(int(log.KeyLen))
	log.Field = c.next(int(log.FieldLen))
	log.Value = c.next(int(log.ValueLen))
	return log
}

// Map Element Delete Log Record: header | fixed | key | field
func encodeMapElemDelete(log *model.MapElemDeleteLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.MapElemDeleteFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.DropIfEmpty)
	b[3] = log.FieldLen
	le.PutUint32(b[4:8], 0)
	off += model.MapElemDeleteFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.Field[:log.FieldLen])
}

func decodeMapElemDelete(c *cursor) model.Record {
	log := new(model.MapElemDeleteLog)
	b := c.fixed(model.MapElemDeleteFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.DropIfEmpty = b[2] != 0
	log.FieldLen = b[3]
	log.Key = c.next(int(log.KeyLen))
	log.Field = c.next(int(log.FieldLen))
	return log
}
