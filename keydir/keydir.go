package keydir

import (
	"github.com/cqkv/cmdlog/model"
)

// Keydir indexes the live items by key, you can use some other data structure
// once you implement this interface
type Keydir interface {
	// Put inserts or replaces the item stored under key
	Put(key []byte, it model.Item) bool
	Get(key []byte) model.Item
	Delete(key []byte) bool
	Size() int
	// Iterator walks the items in ascending key order
	Iterator() Iterator
	Close() error
}

// Iterator is a point in time view of a keydir
type Iterator interface {
	Rewind()
	Next()
	Valid() bool
	Key() []byte
	Value() model.Item
	Close()
}

type IndexType = int8

const (
	BTreeIndex IndexType = iota + 1
	SkipListIndex
)

// NewKeydir returns the index selected by typ, degree only applies to the btree
func NewKeydir(typ IndexType, degree int) Keydir {
	switch typ {
	case SkipListIndex:
		return NewSkipList()
	default:
		return NewBTree(degree)
	}
}

// entry is the unit both iterators collect
type entry struct {
	key []byte
	it  model.Item
}

// sliceIterator iterates over entries collected in key order
type sliceIterator struct {
	values []entry
	curIdx int
}

func (si *sliceIterator) Rewind() {
	si.curIdx = 0
}

func (si *sliceIterator) Next() {
	si.curIdx++
}

func (si *sliceIterator) Valid() bool {
	return si.curIdx < len(si.values)
}

func (si *sliceIterator) Key() []byte {
	return si.values[si.curIdx].key
}

func (si *sliceIterator) Value() model.Item {
	return si.values[si.curIdx].it
}

func (si *sliceIterator) Close() {
	si.values = nil
}
