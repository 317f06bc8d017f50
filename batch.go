package cmdlog

import (
	"sync"

	"github.com/cqkv/cmdlog/model"
)

// WriteBatch collects records and appends them to the log as one contiguous run,
// no other append can land between them
type WriteBatch struct {
	mu *sync.Mutex

	log           *Log
	options       writeBatchOptions
	pendingWrites []model.Record
}

func (l *Log) NewWriteBatch(options ...WriteBatchOption) *WriteBatch {
	opts := defaultWriteBatchOptions

	for _, opt := range options {
		opt(&opts)
	}

	return &WriteBatch{
		mu:      new(sync.Mutex),
		options: opts,
		log:     l,
	}
}

// Add stores the record temporarily, it is appended on Commit
func (wb *WriteBatch) Add(rec model.Record) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	if len(wb.pendingWrites) >= wb.options.maxBatchNum {
		return ErrExceedMaxBatchNum
	}
	wb.pendingWrites = append(wb.pendingWrites, rec)
	return nil
}

// Len is the number of records waiting for Commit
func (wb *WriteBatch) Len() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return len(wb.pendingWrites)
}

// Commit appends the pending records in the order they were added and returns their
// positions. A failed commit may leave a prefix of the batch in the log.
func (wb *WriteBatch) Commit() ([]*model.RecordPos, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	if len(wb.pendingWrites) == 0 {
		return nil, nil
	}

	l := wb.log
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLogClosed
	}

	positions := make([]*model.RecordPos, 0, len(wb.pendingWrites))
	for _, rec := range wb.pendingWrites {
		pos, err := l.writer.append(rec)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}

	if wb.options.sync || l.options.syncOnAppend {
		if err := l.syncLocked(); err != nil {
			return nil, err
		}
	}

	wb.pendingWrites = nil
	return positions, nil
}
