package codec

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/cqkv/cmdlog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_ItemLinkKV(t *testing.T) {
	log := model.NewItemLinkLog(model.NewKVItem([]byte("foo"), []byte("bar"), 0, 0, 42))

	lines := strings.Split(Describe(log), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[HEADER] body_length=32 | logtype=IT_LINK | updtype=SET", lines[0])
	assert.Equal(t, "[BODY]   ittype=KV | flags=0 | exptime=0 | cas=42 | keylen=3 | keystr=foo | vallen=3 | valstr=bar", lines[1])
}

func TestDescribe_ItemLinkCollections(t *testing.T) {
	list := model.NewCollItem(model.ItemTypeList, []byte("l"), nil, 0, 0, model.CollMeta{OvflAction: model.OvflTailTrim, MCount: 10})
	desc := Describe(model.NewItemLinkLog(list))
	assert.Contains(t, desc, "ittype=LIST")
	assert.Contains(t, desc, "ovflact=tail_trim | mflags=0 | mcnt=10 | keylen=1")
	assert.NotContains(t, desc, "maxbkeyrange")

	numeric := make([]byte, 8)
	binary.LittleEndian.PutUint64(numeric, 1234)
	tests := []struct {
		maxbkr model.BkeyRange
		want   string
	}{
		{model.NullBkeyRange, "maxbkeyrange len=BKEY_NULL val=0 | "},
		{model.BkeyRange{Len: 0, Val: numeric}, "maxbkeyrange len=0 val=1234 | "},
		{model.BkeyRange{Len: 2, Val: []byte{0xab, 0x01}}, "maxbkeyrange len=2 val=0xAB01 | "},
	}
	for _, tt := range tests {
		desc := Describe(model.NewItemLinkLog(btreeItem(tt.maxbkr)))
		assert.Contains(t, desc, "ittype=B+TREE")
		assert.Contains(t, desc, tt.want)
	}
}

func TestDescribe_Truncation(t *testing.T) {
	key := bytes.Repeat([]byte("k"), 300)
	value := bytes.Repeat([]byte("v"), 1000)
	desc := Describe(model.NewItemLinkLog(model.NewKVItem(key, value, 0, 0, 1)))

	assert.Contains(t, desc, "keylen=300 | keystr="+strings.Repeat("k", previewLength)+" | ")
	assert.Contains(t, desc, "vallen=1000 | valstr="+strings.Repeat("v", previewLength))
	assert.NotContains(t, desc, strings.Repeat("v", previewLength+1))
}

func TestDescribe_AllTypes(t *testing.T) {
	for _, rec := range allRecords(t, []byte("key"), []byte("value")) {
		desc := Describe(rec)
		assert.True(t, strings.HasPrefix(desc, "[HEADER] body_length="))
		assert.Contains(t, desc, "logtype="+model.LogTypeText(rec.Header().LogType))
		assert.Contains(t, desc, "updtype="+model.UpdateTypeText(rec.Header().UpdType))
	}
}

func TestDescribe_ElementRecords(t *testing.T) {
	bkey := model.BkeyRange{Len: 3, Val: []byte{0x00, 0x10, 0xff}}
	log, err := model.NewBtElemInsertLog([]byte("bt"), bkey, nil, []byte("x"), false, nil)
	require.Nil(t, err)
	desc := Describe(log)
	assert.Contains(t, desc, "updtype=BT_ELEM_INSERT")
	assert.Contains(t, desc, "create=false | keylen=2 | keystr=bt | bkey len=3 val=0x0010FF | eflag=none")

	attrs := &model.CollAttrs{MaxCount: 100, OvflAction: model.OvflError}
	mlog, err := model.NewMapElemInsertLog([]byte("m"), []byte("f1"), []byte("v1"), attrs)
	require.Nil(t, err)
	desc = Describe(mlog)
	assert.Contains(t, desc, "create=true | flags=0 | exptime=0 | maxcount=100 | ovflact=error")
	assert.Contains(t, desc, "fldlen=2 | fldstr=f1")

	var tail model.SnapshotTailLog
	model.ConstructSnapshotTail(&tail)
	assert.Equal(t, "[HEADER] body_length=0 | logtype=SNAPSHOT_TAIL | updtype=NONE\n", Describe(&tail))
}
