package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemFromLink_KV(t *testing.T) {
	buf := []byte("foobar")
	log := NewItemLinkLog(NewKVItem(buf[:3], buf[3:], 1, 2, 42))

	it := NewItemFromLink(log)
	assert.Equal(t, ItemTypeKV, it.Type())
	assert.Equal(t, []byte("foo"), it.Key())
	assert.Equal(t, []byte("bar"), it.Value())
	assert.Equal(t, uint32(1), it.Flags())
	assert.Equal(t, uint32(2), it.ExpireTime())
	assert.Equal(t, uint64(42), it.CAS())
	assert.Nil(t, it.CollMeta())

	// the rebuilt item owns its bytes
	copy(buf, "xxxxxx")
	assert.Equal(t, []byte("foo"), it.Key())
	assert.Equal(t, []byte("bar"), it.Value())
}

func TestNewItemFromLink_BTree(t *testing.T) {
	meta := CollMeta{
		OvflAction:   OvflSmallestSilentTrim,
		MFlags:       4,
		MCount:       1000,
		MaxBkeyRange: BkeyRange{Len: 3, Val: []byte("xyz")},
	}
	log := NewItemLinkLog(NewCollItem(ItemTypeBTree, []byte("bt"), []byte("\r\n"), 0, 0, meta))

	it := NewItemFromLink(log)
	assert.Equal(t, ItemTypeBTree, it.Type())
	require.NotNil(t, it.CollMeta())
	assert.Equal(t, meta.OvflAction, it.CollMeta().OvflAction)
	assert.Equal(t, meta.MCount, it.CollMeta().MCount)
	assert.Equal(t, uint8(3), it.CollMeta().MaxBkeyRange.Len)
	assert.Equal(t, []byte("xyz"), it.CollMeta().MaxBkeyRange.Bytes())
}

func TestNewCollItem_NullRange(t *testing.T) {
	it := NewCollItem(ItemTypeMap, []byte("m"), nil, 0, 0, CollMeta{MaxBkeyRange: BkeyRange{Len: 2, Val: []byte("ab")}})
	assert.True(t, it.CollMeta().MaxBkeyRange.IsNull())
	assert.Empty(t, it.CollMeta().MaxBkeyRange.Bytes())
}

func TestNewCollItem_UnsetBTreeRange(t *testing.T) {
	it := NewCollItem(ItemTypeBTree, []byte("bt"), nil, 0, 0, CollMeta{})
	assert.True(t, it.CollMeta().MaxBkeyRange.IsNull())
	assert.Nil(t, CheckItem(it))

	var log ItemLinkLog
	bodyLen := ConstructSnapshotItem(&log, it)
	assert.Equal(t, uint32(32), bodyLen)
	assert.Equal(t, BkeyNull, log.Payload.(*CollPayload).MaxBkrLen)
}

func TestCheckItem(t *testing.T) {
	short := CollMeta{MaxBkeyRange: BkeyRange{Len: BkeyUint64, Val: []byte{1, 2}}}

	tests := []struct {
		name string
		item Item
		err  error
	}{
		{"kv", NewKVItem([]byte("k"), []byte("v"), 0, 0, 1), nil},
		{"max key", NewKVItem(bytes.Repeat([]byte("k"), MaxKeyLength), nil, 0, 0, 1), nil},
		{"long key", NewKVItem(bytes.Repeat([]byte("k"), MaxKeyLength+1), nil, 0, 0, 1), ErrKeyTooLong},
		{"long coll key", NewCollItem(ItemTypeSet, bytes.Repeat([]byte("k"), 70000), nil, 0, 0, CollMeta{}), ErrKeyTooLong},
		{"short range", NewCollItem(ItemTypeBTree, []byte("bt"), nil, 0, 0, short), ErrInvalidBkey},
		{"long range", NewCollItem(ItemTypeBTree, []byte("bt"), nil, 0, 0, CollMeta{MaxBkeyRange: BkeyRange{Len: 40, Val: make([]byte, 40)}}), ErrInvalidBkey},
		{"no meta", &HashItem{itemType: ItemTypeList, key: []byte("l")}, ErrMissingCollMeta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.err, CheckItem(tt.item))
		})
	}
}

func TestConstructSnapshotItem_LongKeyPanics(t *testing.T) {
	it := NewKVItem(bytes.Repeat([]byte("k"), 70000), []byte("v"), 0, 0, 1)
	var log ItemLinkLog
	assert.Panics(t, func() {
		ConstructSnapshotItem(&log, it)
	})
	assert.Panics(t, func() {
		NewItemLinkLog(it)
	})
}
