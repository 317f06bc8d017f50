package model

import "fmt"

// LogType selects the structural layout of a log record
type LogType = uint8

const (
	LogItLink LogType = iota
	LogItUnlink
	LogItArithmetic
	LogItSetattr
	LogListElemInsert
	LogListElemDelete
	LogSetElemInsert
	LogSetElemDelete
	LogMapElemInsert
	LogMapElemDelete
	LogBtElemInsert
	LogBtElemDelete
	LogBtElemArithmetic
	LogSnapshotHead
	LogSnapshotTail

	// NumLogTypes is the size of the taxonomy, new types go above this line
	NumLogTypes
)

var logTypeText = [NumLogTypes]string{
	"IT_LINK",
	"IT_UNLINK",
	"IT_ARITHMETIC",
	"IT_SETATTR",
	"LIST_ELEM_INSERT",
	"LIST_ELEM_DELETE",
	"SET_ELEM_INSERT",
	"SET_ELEM_DELETE",
	"MAP_ELEM_INSERT",
	"MAP_ELEM_DELETE",
	"BT_ELEM_INSERT",
	"BT_ELEM_DELETE",
	"BT_ELEM_ARITHMETIC",
	"SNAPSHOT_HEAD",
	"SNAPSHOT_TAIL",
}

// LogTypeText is used by diagnostics, so it never panics on bytes read from disk
func LogTypeText(t LogType) string {
	if t >= NumLogTypes {
		return fmt.Sprintf("unknown(%d)", t)
	}
	return logTypeText[t]
}

// UpdateType describes the logical operation a record represents
type UpdateType = uint8

const (
	UpdNone UpdateType = iota
	// key value
	UpdSet
	UpdDelete
	UpdIncr
	UpdDecr
	UpdSetattrExptime
	UpdSetattrExptimeInfo
	UpdSetattrExptimeInfoBkey
	// list
	UpdListCreate
	UpdListElemInsert
	UpdListElemDelete
	// set
	UpdSetCreate
	UpdSetElemInsert
	UpdSetElemDelete
	// map
	UpdMapCreate
	UpdMapElemInsert
	UpdMapElemDelete
	// btree
	UpdBtCreate
	UpdBtElemInsert
	UpdBtElemUpsert
	UpdBtElemDelete
	UpdBtElemArithmetic

	NumUpdateTypes
)

var updateTypeText = [NumUpdateTypes]string{
	"NONE",
	"SET",
	"DELETE",
	"INCR",
	"DECR",
	"SETATTR_EXPTIME",
	"SETATTR_EXPTIME_INFO",
	"SETATTR_EXPTIME_INFO_BKEY",
	"LIST_CREATE",
	"LIST_ELEM_INSERT",
	"LIST_ELEM_DELETE",
	"SET_CREATE",
	"SET_ELEM_INSERT",
	"SET_ELEM_DELETE",
	"MAP_CREATE",
	"MAP_ELEM_INSERT",
	"MAP_ELEM_DELETE",
	"BT_CREATE",
	"BT_ELEM_INSERT",
	"BT_ELEM_UPSERT",
	"BT_ELEM_DELETE",
	"BT_ELEM_ARITHMETIC",
}

func UpdateTypeText(t UpdateType) string {
	if t >= NumUpdateTypes {
		return fmt.Sprintf("unknown(%d)", t)
	}
	return updateTypeText[t]
}

// ItemType is the kind of value an item holds
type ItemType = uint8

const (
	ItemTypeKV ItemType = iota
	ItemTypeList
	ItemTypeSet
	ItemTypeMap
	ItemTypeBTree

	NumItemTypes
)

var itemTypeText = [NumItemTypes]string{"KV", "LIST", "SET", "MAP", "B+TREE"}

func ItemTypeText(t ItemType) string {
	if t >= NumItemTypes {
		return fmt.Sprintf("unknown(%d)", t)
	}
	return itemTypeText[t]
}

// IsCollection reports whether items of type t carry collection meta instead of a cas
func IsCollection(t ItemType) bool {
	return t != ItemTypeKV
}

// createUpdateType maps an item type to the update type that creates it
func createUpdateType(t ItemType) UpdateType {
	switch t {
	case ItemTypeList:
		return UpdListCreate
	case ItemTypeSet:
		return UpdSetCreate
	case ItemTypeMap:
		return UpdMapCreate
	case ItemTypeBTree:
		return UpdBtCreate
	}
	return UpdSet
}

// OverflowAction is the policy a collection applies when it exceeds its max count.
// The ordinals are part of the disk format.
type OverflowAction uint8

const (
	OvflError OverflowAction = iota
	OvflHeadTrim
	OvflTailTrim
	OvflSmallestTrim
	OvflLargestTrim
	OvflSmallestSilentTrim
	OvflLargestSilentTrim

	NumOverflowActions
)

var overflowActionText = [NumOverflowActions]string{
	"error",
	"head_trim",
	"tail_trim",
	"smallest_trim",
	"largest_trim",
	"smallest_silent_trim",
	"largest_silent_trim",
}

func (a OverflowAction) Valid() bool {
	return a < NumOverflowActions
}

// String panics on an ordinal outside the enumeration: such a value can only come
// from a bug, decoders reject it before it gets here.
func (a OverflowAction) String() string {
	if !a.Valid() {
		panic(fmt.Sprintf("model: invalid overflow action %d", uint8(a)))
	}
	return overflowActionText[a]
}

// ParseOverflowAction is the inverse of OverflowAction.String
func ParseOverflowAction(s string) (OverflowAction, bool) {
	for i, name := range overflowActionText {
		if name == s {
			return OverflowAction(i), true
		}
	}
	return 0, false
}

const (
	// BkeyNull marks an absent b-tree key or max bkey range
	BkeyNull uint8 = 255
	// BkeyUint64 is the length code of an 8 byte numeric b-tree key
	BkeyUint64 uint8 = 0
	// MaxBkeyLength is the longest variable length (byte array) b-tree key
	MaxBkeyLength = 31
	// MaxEflagLength is the longest b-tree element flag
	MaxEflagLength = 31
	// MaxFieldLength is the longest map field
	MaxFieldLength = 250
	// MaxKeyLength is bounded by the 16 bit key_length field
	MaxKeyLength = 1<<16 - 1
)

// RealBkeyLen returns the number of bytes a b-tree key length code occupies on disk.
// Every place that sizes, offsets or copies bkey bytes goes through it.
func RealBkeyLen(nbkey uint8) int {
	switch nbkey {
	case BkeyNull:
		return 0
	case BkeyUint64:
		return 8
	}
	return int(nbkey)
}
