package codec

import "github.com/cqkv/cmdlog/model"

/* Item Link Log Record
 * kv:         header | item common | cas       | key | value
 * collection: header | item common | coll meta | key | value
 * b-tree:     header | item common | coll meta | max bkey range | key | value
 */
func encodeItemLink(log *model.ItemLinkLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	cm := &log.Common
	b := buf[off : off+model.ItemLinkFixedSize]
	b[0] = cm.ItemType
	b[1] = 0
	le.PutUint16(b[2:4], cm.KeyLen)
	le.PutUint32(b[4:8], cm.ValueLen)
	le.PutUint32(b[8:12], cm.Flags)
	le.PutUint32(b[12:16], cm.ExpireTime)

	var maxbkr []byte
	switch p := log.Payload.(type) {
	case *model.CASPayload:
		le.PutUint64(b[16:24], p.CAS)
	case *model.CollPayload:
		b[16] = uint8(p.OvflAction)
		b[17] = p.MFlags
		b[18] = p.MaxBkrLen
		b[19] = 0
		le.PutUint32(b[20:24], p.MCount)
		if cm.ItemType == model.ItemTypeBTree && p.MaxBkrLen != model.BkeyNull {
			maxbkr = p.MaxBkr[:model.RealBkeyLen(p.MaxBkrLen)]
		}
	default:
		panic("codec: item link record without payload")
	}
	off += model.ItemLinkFixedSize

	off = putBytes(buf, off, maxbkr)
	off = putBytes(buf, off, log.Key[:cm.KeyLen])
	off = putBytes(buf, off, log.Value[:cm.ValueLen])
	return off
}

func decodeItemLink(c *cursor) model.Record {
	log := new(model.ItemLinkLog)
	b := c.fixed(model.ItemLinkFixedSize)

	cm := &log.Common
	cm.ItemType = b[0]
	cm.KeyLen = le.Uint16(b[2:4])
	cm.ValueLen = le.Uint32(b[4:8])
	cm.Flags = le.Uint32(b[8:12])
	cm.ExpireTime = le.Uint32(b[12:16])

	switch {
	case cm.ItemType >= model.NumItemTypes:
		c.err = ErrCorruptRecord
	case model.IsCollection(cm.ItemType):
		p := &model.CollPayload{
			OvflAction: c.ovflAction(b[16]),
			MFlags:     b[17],
			MaxBkrLen:  b[18],
			MCount:     le.Uint32(b[20:24]),
		}
		if cm.ItemType == model.ItemTypeBTree {
			p.MaxBkr = c.next(c.bkeyLen(p.MaxBkrLen))
		} else if p.MaxBkrLen != model.BkeyNull {
			c.err = ErrCorruptRecord
		}
		log.Payload = p
	default:
		log.Payload = &model.CASPayload{CAS: le.Uint64(b[16:24])}
	}

	log.Key = c.next(int(cm.KeyLen))
	log.Value = c.next(int(cm.ValueLen))
	return log
}

// Item Unlink Log Record: header | key_length | key
func encodeItemUnlink(log *model.ItemUnlinkLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.ItemUnlinkFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	clear(b[2:])
	off += model.ItemUnlinkFixedSize

	return putBytes(buf, off, log.Key[:log.KeyLen])
}

func decodeItemUnlink(c *cursor) model.Record {
	log := new(model.ItemUnlinkLog)
	b := c.fixed(model.ItemUnlinkFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.Key = c.next(int(log.KeyLen))
	return log
}

// Item Arithmetic Log Record: header | key_length, create, flags, exptime, delta, initial, cas | key
func encodeItemArithmetic(log *model.ItemArithmeticLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.ItemArithmeticFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = putBool(log.Create)
	b[3] = 0
	le.PutUint32(b[4:8], log.Flags)
	le.PutUint32(b[8:12], log.ExpireTime)
	le.PutUint32(b[12:16], 0)
	le.PutUint64(b[16:24], log.Delta)
	le.PutUint64(b[24:32], log.Initial)
	le.PutUint64(b[32:40], log.CAS)
	off += model.ItemArithmeticFixedSize

	return putBytes(buf, off, log.Key[:log.KeyLen])
}

func decodeItemArithmetic(c *cursor) model.Record {
	log := new(model.ItemArithmeticLog)
	b := c.fixed(model.ItemArithmeticFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.Create = b[2] != 0
	log.Flags = le.Uint32(b[4:8])
	log.ExpireTime = le.Uint32(b[8:12])
	log.Delta = le.Uint64(b[16:24])
	log.Initial = le.Uint64(b[24:32])
	log.CAS = le.Uint64(b[32:40])
	log.Key = c.next(int(log.KeyLen))
	return log
}

// Item Setattr Log Record: header | key_length, ovflact, mflags, max_count, exptime, maxbkrlen | key | max bkey range
func encodeItemSetattr(log *model.ItemSetattrLog, buf []byte) int {
	off := putHeader(buf, &log.Hdr)

	b := buf[off : off+model.ItemSetattrFixedSize]
	le.PutUint16(b[0:2], log.KeyLen)
	b[2] = uint8(log.OvflAction)
	b[3] = log.MFlags
	le.PutUint32(b[4:8], log.MaxCount)
	le.PutUint32(b[8:12], log.ExpireTime)
	b[12] = log.MaxBkrLen
	clear(b[13:16])
	off += model.ItemSetattrFixedSize

	off = putBytes(buf, off, log.Key[:log.KeyLen])
	return putBytes(buf, off, log.MaxBkr[:model.RealBkeyLen(log.MaxBkrLen)])
}

func decodeItemSetattr(c *cursor) model.Record {
	log := new(model.ItemSetattrLog)
	b := c.fixed(model.ItemSetattrFixedSize)
	log.KeyLen = le.Uint16(b[0:2])
	log.OvflAction = c.ovflAction(b[2])
	log.MFlags = b[3]
	log.MaxCount = le.Uint32(b[4:8])
	log.ExpireTime = le.Uint32(b[8:12])
	log.MaxBkrLen = b[12]
	log.Key = c.next(int(log.KeyLen))
	log.MaxBkr = c.next(c.bkeyLen(log.MaxBkrLen))
	return log
}
