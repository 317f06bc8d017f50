package cmdlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cqkv/cmdlog/fio"
	"github.com/cqkv/cmdlog/model"
)

// Log is the append only command log of one directory.
// Append order is replay order, and a record is never split by another writer.
type Log struct {
	mu sync.Mutex

	options  *options
	fileLock fio.FileLocker

	activeFile *model.LogFile
	writer     *recordWriter

	closed bool
}

// Open opens the command log in dir, an empty dir falls back to WithDirPath.
// Only one Log per directory can be open at a time.
func Open(dir string, opts ...Option) (*Log, error) {
	o := newOptions(opts...)
	if dir != "" {
		o.dirPath = dir
	}
	if o.ioManagerCreator == nil {
		return nil, ErrNoIOManager
	}

	if err := os.MkdirAll(o.dirPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log dir %s: %w", o.dirPath, err)
	}

	fileLock := fio.NewDirLock(o.dirPath)
	hold, err := fileLock.TryLock()
	if err != nil {
		return nil, err
	}
	if !hold {
		return nil, ErrDirIsUsing
	}

	ioManager, err := o.ioManagerCreator(model.GetLogFileName(o.dirPath, 0))
	if err != nil {
		_ = fileLock.Unlock()
		return nil, err
	}
	activeFile, err := model.OpenLogFile(0, ioManager)
	if err != nil {
		_ = ioManager.Close()
		_ = fileLock.Unlock()
		return nil, err
	}

	o.logger.Info("command log opened", "dir", o.dirPath, "size", activeFile.WriteOffset)
	return &Log{
		options:    o,
		fileLock:   fileLock,
		activeFile: activeFile,
		writer:     newRecordWriter(activeFile, o.codec, o.bufferSize),
	}, nil
}

// Append adds one record to the log. The record is durable after Sync, or right
// away with WithSyncOnAppend.
func (l *Log) Append(rec model.Record) (*model.RecordPos, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, ErrLogClosed
	}

	pos, err := l.writer.append(rec)
	if err != nil {
		return nil, err
	}

	if l.options.syncOnAppend {
		if err = l.syncLocked(); err != nil {
			return nil, err
		}
	}
	return pos, nil
}

// Flush writes the buffered records to the file without syncing it
func (l *Log) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLogClosed
	}
	return l.writer.flush()
}

func (l *Log) Sync() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLogClosed
	}
	return l.syncLocked()
}

func (l *Log) syncLocked() error {
	if err := l.writer.sync(); err != nil {
		l.options.logger.Error("sync command log failed", "fid", l.activeFile.Fid, "error", err)
		return err
	}
	return nil
}

// Size is the log size including buffered records
func (l *Log) Size() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writer.size()
}

// Close syncs and closes the log and releases the directory
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	defer func() {
		if err := l.fileLock.Unlock(); err != nil {
			l.options.logger.Error("unlock log dir failed", "dir", l.options.dirPath, "error", err)
		}
	}()

	if err := l.syncLocked(); err != nil {
		_ = l.activeFile.Close()
		return err
	}
	if err := l.activeFile.Close(); err != nil {
		l.options.logger.Error("close command log failed", "fid", l.activeFile.Fid, "error", err)
		return err
	}
	l.options.logger.Info("command log closed", "dir", l.options.dirPath)
	return nil
}

// Read returns the record at pos, as returned by Append or WriteBatch.Commit
func (l *Log) Read(pos *model.RecordPos) (model.Record, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrLogClosed
	}
	if pos.Fid != l.activeFile.Fid || pos.Offset+int64(pos.Size) > l.writer.size() {
		l.mu.Unlock()
		return nil, ErrInvalidPos
	}
	// the record may still sit in the append buffer
	if pos.Offset+int64(pos.Size) > l.activeFile.WriteOffset {
		if err := l.writer.flush(); err != nil {
			l.mu.Unlock()
			return nil, err
		}
	}
	l.mu.Unlock()

	header, err := l.activeFile.ReadRecordHeader(pos.Offset)
	if err != nil {
		return nil, err
	}
	hdr, err := l.options.codec.DecodeHeader(header)
	if err != nil {
		return nil, err
	}
	if uint32(hdr.RecordSize()) != pos.Size {
		return nil, ErrInvalidPos
	}

	data, err := l.activeFile.ReadRecord(pos.Offset, int64(pos.Size))
	if err != nil {
		return nil, err
	}
	rec, _, err := l.options.codec.Decode(data)
	return rec, err
}

// Replay calls fn for every record appended before the call, in append order.
// Records are only valid inside fn. fn may append to the log, the new records are not
// replayed. A log ending inside a record delivers every complete record and then
// returns ErrTruncatedRecord.
func (l *Log) Replay(fn func(rec model.Record) error) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLogClosed
	}
	if err := l.writer.flush(); err != nil {
		l.mu.Unlock()
		return err
	}
	end := l.activeFile.WriteOffset
	l.mu.Unlock()

	section := fio.NewSectionReader(l.activeFile.IoManager, end)
	reader := NewSizedReader(bufio.NewReader(section), end, l.options.codec)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if errors.Is(err, ErrTruncatedRecord) {
				l.options.logger.Warn("command log ends inside a record",
					"fid", l.activeFile.Fid, "offset", reader.Offset(), "size", end)
			}
			return err
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
}
