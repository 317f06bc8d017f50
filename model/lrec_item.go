package model

// ItemUnlinkLog removes an item: header | key_length(2) reserved(6) | key
type ItemUnlinkLog struct {
	base
	KeyLen uint16
	Key    []byte
}

// ItemArithmeticLog is an incr (UpdIncr) or decr (UpdDecr) of a kv item:
//
//	header | key_length(2) create(1) reserved(1) flags(4) | exptime(4) reserved(4) |
//	delta(8) | initial(8) | cas(8) | key
//
// flags, exptime and initial are only used when create is set and the item is missing.
type ItemArithmeticLog struct {
	base
	KeyLen     uint16
	Create     bool
	Flags      uint32
	ExpireTime uint32
	Delta      uint64
	Initial    uint64
	CAS        uint64
	Key        []byte
}

// ItemSetattrLog changes item attributes:
//
//	header | key_length(2) ovflact(1) mflags(1) max_count(4) | exptime(4) maxbkrlen(1) reserved(3) |
//	key | max bkey range
//
// The update type tells which attributes are set: UpdSetattrExptime only touches
// exptime, UpdSetattrExptimeInfo adds the collection info and UpdSetattrExptimeInfoBkey
// adds the b-tree max bkey range.
type ItemSetattrLog struct {
	base
	KeyLen     uint16
	OvflAction OverflowAction
	MFlags     uint8
	MaxCount   uint32
	ExpireTime uint32
	MaxBkrLen  uint8
	Key        []byte
	MaxBkr     []byte
}
