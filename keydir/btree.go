package keydir

import (
	"bytes"
	"sync"

	"github.com/cqkv/cmdlog/model"
	"github.com/google/btree"
)

var _ Keydir = (*BTree)(nil)

const defaultDegree = 32

// BTree implement the keydir
type BTree struct {
	tree *btree.BTree

	// the btree is not safe for concurrent writes
	lock *sync.RWMutex
}

// Item implement the btree.Item interface
type Item struct {
	key []byte
	it  model.Item
}

func (i *Item) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(*Item).key) == -1
}

func NewBTree(degree int) *BTree {
	if degree <= 0 {
		degree = defaultDegree
	}
	return &BTree{
		tree: btree.New(degree),
		lock: &sync.RWMutex{},
	}
}

func (bt *BTree) Put(key []byte, it model.Item) bool {
	item := &Item{
		key: key,
		it:  it,
	}
	bt.lock.Lock()
	bt.tree.ReplaceOrInsert(item)
	bt.lock.Unlock()
	return true
}

func (bt *BTree) Get(key []byte) model.Item {
	item := &Item{
		key: key,
	}
	bt.lock.RLock()
	btItem := bt.tree.Get(item)
	bt.lock.RUnlock()
	if btItem == nil {
		return nil
	}
	return btItem.(*Item).it
}

func (bt *BTree) Delete(key []byte) bool {
	item := &Item{
		key: key,
	}
	bt.lock.Lock()
	res := bt.tree.Delete(item)
	bt.lock.Unlock()
	return res != nil
}

func (bt *BTree) Size() int {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return bt.tree.Len()
}

func (bt *BTree) Close() error {
	bt.lock.Lock()
	bt.tree.Clear(false)
	bt.lock.Unlock()
	return nil
}

func (bt *BTree) Iterator() Iterator {
	bt.lock.RLock()
	defer bt.lock.RUnlock()

	iterator := &sliceIterator{
		values: make([]entry, 0, bt.tree.Len()),
	}
	bt.tree.Ascend(func(item btree.Item) bool {
		i := item.(*Item)
		iterator.values = append(iterator.values, entry{key: i.key, it: i.it})
		return true
	})
	return iterator
}
