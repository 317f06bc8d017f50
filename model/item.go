package model

import "math"

// Item is the read-only view of a live item that the log needs.
// Implementations must not copy key or value on access.
type Item interface {
	Type() ItemType
	Key() []byte
	Value() []byte
	Flags() uint32
	ExpireTime() uint32
	CAS() uint64
	// CollMeta is nil for kv items
	CollMeta() *CollMeta
}

// BkeyRange is a b-tree key or key range bound, Len follows the RealBkeyLen encoding
type BkeyRange struct {
	Len uint8
	Val []byte
}

var NullBkeyRange = BkeyRange{Len: BkeyNull}

func (r BkeyRange) IsNull() bool {
	return r.Len == BkeyNull
}

// Bytes returns the on-disk bytes of the range, empty for the null range
func (r BkeyRange) Bytes() []byte {
	return r.Val[:RealBkeyLen(r.Len)]
}

// CheckItem reports whether an item can be logged without losing bytes
func CheckItem(it Item) error {
	if len(it.Key()) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if uint64(len(it.Value())) > math.MaxUint32 {
		return ErrValueTooLong
	}
	if !IsCollection(it.Type()) {
		return nil
	}
	meta := it.CollMeta()
	if meta == nil {
		return ErrMissingCollMeta
	}
	if it.Type() == ItemTypeBTree && !meta.MaxBkeyRange.IsNull() {
		r := meta.MaxBkeyRange
		if r.Len > MaxBkeyLength || len(r.Val) < RealBkeyLen(r.Len) {
			return ErrInvalidBkey
		}
	}
	return nil
}

type CollMeta struct {
	OvflAction OverflowAction
	MFlags     uint8
	MCount     uint32
	// only meaningful for b-tree items
	MaxBkeyRange BkeyRange
}

var _ Item = (*HashItem)(nil)

// HashItem is the in-memory item kept by the keydir
type HashItem struct {
	itemType ItemType
	key      []byte
	value    []byte
	flags    uint32
	exptime  uint32
	cas      uint64
	meta     *CollMeta
}

func NewKVItem(key, value []byte, flags, exptime uint32, cas uint64) *HashItem {
	return &HashItem{
		itemType: ItemTypeKV,
		key:      key,
		value:    value,
		flags:    flags,
		exptime:  exptime,
		cas:      cas,
	}
}

// NewCollItem creates a list, set, map or b-tree item.
// Non b-tree items and an unset b-tree range get a null max bkey range.
func NewCollItem(itemType ItemType, key, value []byte, flags, exptime uint32, meta CollMeta) *HashItem {
	if itemType != ItemTypeBTree || (meta.MaxBkeyRange.Len == 0 && meta.MaxBkeyRange.Val == nil) {
		meta.MaxBkeyRange = NullBkeyRange
	}
	return &HashItem{
		itemType: itemType,
		key:      key,
		value:    value,
		flags:    flags,
		exptime:  exptime,
		meta:     &meta,
	}
}

// NewItemFromLink rebuilds a live item from an item link record, copying the
// borrowed slices so the item outlives the buffer the record was decoded from.
func NewItemFromLink(log *ItemLinkLog) *HashItem {
	key := append([]byte(nil), log.Key...)
	value := append([]byte(nil), log.Value...)
	cm := &log.Common

	switch p := log.Payload.(type) {
	case *CollPayload:
		meta := CollMeta{
			OvflAction: p.OvflAction,
			MFlags:     p.MFlags,
			MCount:     p.MCount,
			MaxBkeyRange: BkeyRange{
				Len: p.MaxBkrLen,
				Val: append([]byte(nil), p.MaxBkr...),
			},
		}
		return NewCollItem(cm.ItemType, key, value, cm.Flags, cm.ExpireTime, meta)
	case *CASPayload:
		return NewKVItem(key, value, cm.Flags, cm.ExpireTime, p.CAS)
	}
	return NewKVItem(key, value, cm.Flags, cm.ExpireTime, 0)
}

func (it *HashItem) Type() ItemType      { return it.itemType }
func (it *HashItem) Key() []byte         { return it.key }
func (it *HashItem) Value() []byte       { return it.value }
func (it *HashItem) Flags() uint32       { return it.flags }
func (it *HashItem) ExpireTime() uint32  { return it.exptime }
func (it *HashItem) CAS() uint64         { return it.cas }
func (it *HashItem) CollMeta() *CollMeta { return it.meta }
