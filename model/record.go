package model

/*
	command log record:
		header | fixed body | trailers (key, value, ...) | padding

	header (8 bytes, little endian):
		body_length(4) | log_type(1) | update_type(1) | reserved(2)

	body_length counts everything after the header and is always a multiple of 8,
	so a replayer can skip from header to header without scanning.
*/

const (
	HeaderSize = 8

	// item common: item_type(1) | reserved(1) | key_length(2) | value_length(4) | flags(4) | exptime(4)
	ItemCommonSize = 16
	// cas(8) or ovflact(1) | mflags(1) | maxbkrlen(1) | reserved(1) | mcnt(4)
	ItemLinkPayloadSize = 8
	ItemLinkFixedSize   = ItemCommonSize + ItemLinkPayloadSize

	// flags(4) | exptime(4) | max_count(4) | ovflact(1) | mflags(1) | reserved(2)
	CollAttrsSize = 16

	ItemUnlinkFixedSize       = 8
	ItemArithmeticFixedSize   = 40
	ItemSetattrFixedSize      = 16
	ListElemInsertFixedSize   = 16 + CollAttrsSize
	ListElemDeleteFixedSize   = 16
	SetElemInsertFixedSize    = 8 + CollAttrsSize
	SetElemDeleteFixedSize    = 8
	MapElemInsertFixedSize    = 8 + CollAttrsSize
	MapElemDeleteFixedSize    = 8
	BtElemInsertFixedSize     = 16 + CollAttrsSize
	BtElemDeleteFixedSize     = 8
	BtElemArithmeticFixedSize = 24
	SnapshotHeadFixedSize     = 16

	SnapshotFormatVersion uint32 = 1
)

type LogHeader struct {
	BodyLength uint32
	LogType    LogType
	UpdType    UpdateType
}

// RecordSize is the number of bytes the whole record occupies in the log
func (h *LogHeader) RecordSize() int {
	return HeaderSize + int(h.BodyLength)
}

// Record is implemented by the log record types of this package only.
// Records borrow their variable length fields, they never own them.
type Record interface {
	Header() *LogHeader
	isRecord()
}

type base struct {
	Hdr LogHeader
}

func (b *base) Header() *LogHeader { return &b.Hdr }
func (*base) isRecord()            {}

type ItemCommon struct {
	ItemType   ItemType
	KeyLen     uint16
	ValueLen   uint32
	Flags      uint32
	ExpireTime uint32
}

// LinkPayload is either *CASPayload (kv items) or *CollPayload (collections)
type LinkPayload interface {
	isLinkPayload()
}

type CASPayload struct {
	CAS uint64
}

type CollPayload struct {
	OvflAction OverflowAction
	MFlags     uint8
	MaxBkrLen  uint8
	MCount     uint32
	// RealBkeyLen(MaxBkrLen) bytes, b-tree only
	MaxBkr []byte
}

func (*CASPayload) isLinkPayload()  {}
func (*CollPayload) isLinkPayload() {}

/*
	item link:
		kv:         header | item common | cas       | key | value
		collection: header | item common | coll meta | key | value
		b-tree:     header | item common | coll meta | max bkey range | key | value
*/
type ItemLinkLog struct {
	base
	Common  ItemCommon
	Payload LinkPayload
	Key     []byte
	Value   []byte
}

type SnapshotHeadLog struct {
	base
	Version   uint32
	CreatedAt int64 // unix nano
}

// SnapshotTailLog is header only
type SnapshotTailLog struct {
	base
}

// CollAttrs are the attributes of a collection created by an element insert
type CollAttrs struct {
	Flags      uint32
	ExpireTime uint32
	MaxCount   uint32
	OvflAction OverflowAction
	MFlags     uint8
}
