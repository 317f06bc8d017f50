package codec

import "github.com/cqkv/cmdlog/model"

// BTree Element Insert Log Record: header | fixed | attrs | key | bkey | eflag | value
func encodeBtElemInsert(log *model.BtElemInsertLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.BtElemInsertFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.Create)
	b[3] = log.NBkey
	b[4] = log.NEflag
	clear(b[5:8])
	le.PutUint32(b[8:12], log.ValueLen)
	le.PutUint32(b[12:16], 0)
	putCollAttrs(b[16:], &log.Attrs)
	off += model.BtElemInsertFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	off = putBytes(buf, off, log.Bkey[:model.RealBkeyLen(log.NBkey)])
	off = putBytes(buf, off, log.Eflag[:log.NEflag])
	return putBytes(buf, off, log.Value[:log.ValueLen])
}

func decodeBtElemInsert(c *cursor) model.Record {
	log := new(model.BtElemInsertLog)
	b := c.fixed(model.BtElemInsertFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.Create = b[2] != 0
	log.NBkey = b[3]
	log.NEflag = b[4]
	log.ValueLen = le.Uint32(b[8:12])
	log.Attrs = c.collAttrs(b[16:])
	log.Key = c.next(int(log.KeyLen))
	log.Bkey = c.next(c.elemBkeyLen(log.NBkey))
	log.Eflag = c.next(int(log.NEflag))
	log.Value = c.next(int(log.ValueLen))
	return log
}

// BTree Element Delete Log Record: header | fixed | key | bkey
func encodeBtElemDelete(log *model.BtElemDeleteLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.BtElemDeleteFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = log.NBkey
	b[3] = putBool(log.DropIfEmpty)
	le.PutUint32(b[4:8], 0)
	off += model.BtElemDeleteFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.Bkey[:model.RealBkeyLen(log.NBkey)])
}

func decodeBtElemDelete(c *cursor) model.Record {
	log := new(model.BtElemDeleteLog)
	b := c.fixed(model.BtElemDeleteFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.NBkey = b[2]
	log.DropIfEmpty = b[3] != 0
	log.Key = c.next(int(log.KeyLen))
	log.Bkey = c.next(c.elemBkeyLen(log.NBkey))
	return log
}

// BTree Element Arithmetic Log Record: header | fixed | delta | initial | key | bkey
func encodeBtElemArithmetic(log *model.BtElemArithmeticLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.BtElemArithmeticFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = log.NBkey
	b[3] = putBool(log.Create)
	b[4] = putBool(log.Incr)
	clear(b[5:8])
	le.PutUint64(b[8:16], log.Delta)
	le.PutUint64(b[16:24], log.Initial)
	off += model.BtElemArithmeticFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.Bkey[:model.RealBkeyLen(log.NBkey)])
}

func decodeBtElemArithmetic(c *cursor) model.Record {
	log := new(model.BtElemArithmeticLog)
	b := c.fixed(model.BtElemArithmeticFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.NBkey = b[2]
	log.Create = b[3] != 0
	log.Incr = b[4] != 0
	log.Delta = le.Uint64(b[8:16])
	log.Initial = le.Uint64(b[16:24])
	log.Key = c.next(int(log.KeyLen))
	log.Bkey = c.next(c.elemBkeyLen(log.NBkey))
	return log
}

// elemBkeyLen is bkeyLen for element keys, which can never be null
func (c *cursor) elemBkeyLen(nbkey uint8) int {
	if nbkey == model.BkeyNull && c.err == nil {
		c.err = ErrCorruptRecord
	}
	return c.bkeyLen(nbkey)
}
