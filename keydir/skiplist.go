package keydir

import (
	"bytes"

	"github.com/cqkv/cmdlog/model"
	"github.com/zhangyunhao116/skipmap"
)

var _ Keydir = (*SkipList)(nil)

// SkipList is a lock free keydir, readers never block the writer
type SkipList struct {
	m *skipmap.FuncMap[[]byte, model.Item]
}

func NewSkipList() *SkipList {
	return &SkipList{
		m: newSkipMap(),
	}
}

func newSkipMap() *skipmap.FuncMap[[]byte, model.Item] {
	return skipmap.NewFunc[[]byte, model.Item](func(a, b []byte) bool {
		return bytes.Compare(a, b) < 0
	})
}

func (sl *SkipList) Put(key []byte, it model.Item) bool {
	sl.m.Store(key, it)
	return true
}

func (sl *SkipList) Get(key []byte) model.Item {
	it, ok := sl.m.Load(key)
	if !ok {
		return nil
	}
	return it
}

func (sl *SkipList) Delete(key []byte) bool {
	return sl.m.Delete(key)
}

func (sl *SkipList) Size() int {
	return sl.m.Len()
}

func (sl *SkipList) Close() error {
	sl.m = newSkipMap()
	return nil
}

func (sl *SkipList) Iterator() Iterator {
	iterator := &sliceIterator{
		values: make([]entry, 0, sl.m.Len()),
	}
	sl.m.Range(func(key []byte, it model.Item) bool {
		iterator.values = append(iterator.values, entry{key: key, it: it})
		return true
	})
	return iterator
}
