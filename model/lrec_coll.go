package model

/*
	collection element records:
		header | fixed body | key | element data | padding

	inserts carry CollAttrs so that an insert with create set can rebuild the
	collection it created on replay.
*/

// ListElemInsertLog: key_length(2) create(1) reserved(1) value_length(4) | index(4) total_count(4) | attrs | key | value
type ListElemInsertLog struct {
	base
	KeyLen     uint16
	Create     bool
	ValueLen   uint32
	Index      int32
	TotalCount uint32
	Attrs      CollAttrs
	Key        []byte
	Value      []byte
}

// ListElemDeleteLog: key_length(2) drop_if_empty(1) reserved(1) index(4) | count(4) reserved(4) | key
type ListElemDeleteLog struct {
	base
	KeyLen      uint16
	DropIfEmpty bool
	Index       int32
	Count       uint32
	Key         []byte
}

// SetElemInsertLog: key_length(2) create(1) reserved(1) value_length(4) | attrs | key | value
type SetElemInsertLog struct {
	base
	KeyLen   uint16
	Create   bool
	ValueLen uint32
	Attrs    CollAttrs
	Key      []byte
	Value    []byte
}

// SetElemDeleteLog: key_length(2) drop_if_empty(1) reserved(1) value_length(4) | key | value
type SetElemDeleteLog struct {
	base
	KeyLen      uint16
	DropIfEmpty bool
	ValueLen    uint32
	Key         []byte
	Value       []byte
}

// MapElemInsertLog: key_length(2) create(1) field_length(1) value_length(4) | attrs | key | field | value
type MapElemInsertLog struct {
	base
	KeyLen   uint16
	Create   bool
	FieldLen uint8
	ValueLen uint32
	Attrs    CollAttrs
	Key      []byte
	Field    []byte
	Value    []byte
}

// MapElemDeleteLog: key_length(2) drop_if_empty(1) field_length(1) reserved(4) | key | field
//
// A zero field length deletes every field of the map.
type MapElemDeleteLog struct {
	base
	KeyLen      uint16
	DropIfEmpty bool
	FieldLen    uint8
	Key         []byte
	Field       []byte
}

// BtElemInsertLog is an insert (UpdBtElemInsert) or upsert (UpdBtElemUpsert):
//
//	key_length(2) create(1) nbkey(1) neflag(1) reserved(3) | value_length(4) reserved(4) | attrs |
//	key | bkey | eflag | value
type BtElemInsertLog struct {
	base
	KeyLen   uint16
	Create   bool
	NBkey    uint8
	NEflag   uint8
	ValueLen uint32
	Attrs    CollAttrs
	Key      []byte
	Bkey     []byte
	Eflag    []byte
	Value    []byte
}

// BtElemDeleteLog: key_length(2) nbkey(1) drop_if_empty(1) reserved(4) | key | bkey
type BtElemDeleteLog struct {
	base
	KeyLen      uint16
	NBkey       uint8
	DropIfEmpty bool
	Key         []byte
	Bkey        []byte
}

// BtElemArithmeticLog: key_length(2) nbkey(1) create(1) incr(1) reserved(3) | delta(8) | initial(8) | key | bkey
type BtElemArithmeticLog struct {
	base
	KeyLen  uint16
	NBkey   uint8
	Create  bool
	Incr    bool
	Delta   uint64
	Initial uint64
	Key     []byte
	Bkey    []byte
}
