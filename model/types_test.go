package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverflowAction_String(t *testing.T) {
	seen := make(map[string]bool)
	for a := OverflowAction(0); a < NumOverflowActions; a++ {
		name := a.String()
		assert.False(t, seen[name], name)
		seen[name] = true

		parsed, ok := ParseOverflowAction(name)
		assert.True(t, ok)
		assert.Equal(t, a, parsed)
	}
	assert.Len(t, seen, int(NumOverflowActions))

	assert.Equal(t, "error", OvflError.String())
	assert.Equal(t, "largest_silent_trim", OvflLargestSilentTrim.String())
}

func TestOverflowAction_Invalid(t *testing.T) {
	assert.False(t, NumOverflowActions.Valid())
	assert.Panics(t, func() {
		_ = NumOverflowActions.String()
	})
	assert.Panics(t, func() {
		_ = OverflowAction(200).String()
	})

	_, ok := ParseOverflowAction("truncate")
	assert.False(t, ok)
}

func TestRealBkeyLen(t *testing.T) {
	assert.Equal(t, 0, RealBkeyLen(BkeyNull))
	assert.Equal(t, 8, RealBkeyLen(BkeyUint64))
	for n := uint8(1); n <= MaxBkeyLength; n++ {
		assert.Equal(t, int(n), RealBkeyLen(n))
	}
}

func TestTypeText(t *testing.T) {
	assert.Equal(t, "IT_LINK", LogTypeText(LogItLink))
	assert.Equal(t, "SNAPSHOT_TAIL", LogTypeText(LogSnapshotTail))
	assert.Equal(t, "unknown(15)", LogTypeText(NumLogTypes))

	assert.Equal(t, "NONE", UpdateTypeText(UpdNone))
	assert.Equal(t, "BT_ELEM_ARITHMETIC", UpdateTypeText(UpdBtElemArithmetic))
	assert.Equal(t, "unknown(255)", UpdateTypeText(255))

	assert.Equal(t, "B+TREE", ItemTypeText(ItemTypeBTree))
	assert.Equal(t, "unknown(9)", ItemTypeText(9))
}

func TestCreateUpdateType(t *testing.T) {
	assert.Equal(t, UpdSet, createUpdateType(ItemTypeKV))
	assert.Equal(t, UpdListCreate, createUpdateType(ItemTypeList))
	assert.Equal(t, UpdSetCreate, createUpdateType(ItemTypeSet))
	assert.Equal(t, UpdMapCreate, createUpdateType(ItemTypeMap))
	assert.Equal(t, UpdBtCreate, createUpdateType(ItemTypeBTree))
}
