package cmdlog

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cqkv/cmdlog/codec"
	"github.com/cqkv/cmdlog/keydir"
	"github.com/cqkv/cmdlog/model"
	"github.com/cqkv/cmdlog/utils"
)

const (
	snapshotFilePrefix = "snapshot_"
	// crc(4) | size(8)
	snapshotDoneSize = 12
)

// SnapshotFileName returns the snapshot path for a snapshot taken at t
func SnapshotFileName(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", snapshotFilePrefix, t.UnixNano(), model.SnapshotFileSuffix))
}

func snapshotDoneName(path string) string {
	return path + model.SnapshotDoneSuffix
}

/*
	WriteSnapshot writes every item of store to a new snapshot file in dir:
		SNAPSHOT_HEAD | IT_LINK ... | SNAPSHOT_TAIL

	The file is synced and then a done marker holding its checksum and size is
	written next to it; a snapshot without the marker is never loaded. A canceled
	ctx stops the snapshot between items and removes the partial file.
*/
func WriteSnapshot(ctx context.Context, dir string, store keydir.Keydir, opts ...Option) (string, error) {
	o := newOptions(opts...)
	if o.ioManagerCreator == nil {
		return "", ErrNoIOManager
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	start := time.Now()
	path := SnapshotFileName(dir, start)
	items, crc, size, err := writeSnapshotFile(ctx, o, path, store, start)
	if err == nil {
		err = writeSnapshotDone(o, path, crc, size)
	}
	if err != nil {
		removeSnapshot(o, path)
		o.logger.Warn("snapshot aborted", "path", path, "items", items, "error", err)
		return "", err
	}

	o.logger.Info("snapshot written", "path", path, "items", items,
		"size", size, "duration", time.Since(start))
	return path, nil
}

// writeSnapshotFile returns the item count and the checksum and size of the file
func writeSnapshotFile(ctx context.Context, o *options, path string, store keydir.Keydir, createdAt time.Time) (int, uint32, int64, error) {
	ioManager, err := o.ioManagerCreator(path)
	if err != nil {
		return 0, 0, 0, err
	}
	file, err := model.OpenLogFile(0, ioManager)
	if err != nil {
		_ = ioManager.Close()
		return 0, 0, 0, err
	}

	w := newRecordWriter(file, o.codec, o.bufferSize)
	items, err := writeSnapshotRecords(ctx, w, store, createdAt)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return items, w.crc, w.size(), err
}

func writeSnapshotRecords(ctx context.Context, w *recordWriter, store keydir.Keydir, createdAt time.Time) (int, error) {
	var head model.SnapshotHeadLog
	model.ConstructSnapshotHead(&head, createdAt)
	if _, err := w.append(&head); err != nil {
		return 0, err
	}

	iter := store.Iterator()
	defer iter.Close()

	var (
		items int
		link  model.ItemLinkLog
	)
	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		it := iter.Value()
		if err := model.CheckItem(it); err != nil {
			return items, fmt.Errorf("snapshot item %q: %w", iter.Key(), err)
		}
		model.ConstructSnapshotItem(&link, it)
		if _, err := w.append(&link); err != nil {
			return items, err
		}
		items++
	}

	var tail model.SnapshotTailLog
	model.ConstructSnapshotTail(&tail)
	if _, err := w.append(&tail); err != nil {
		return items, err
	}
	return items, w.sync()
}

// writeSnapshotDone records the checksum and size of a finished snapshot file
func writeSnapshotDone(o *options, path string, crc uint32, size int64) error {
	done := make([]byte, snapshotDoneSize)
	binary.LittleEndian.PutUint32(done[0:4], crc)
	binary.LittleEndian.PutUint64(done[4:12], uint64(size))

	ioManager, err := o.ioManagerCreator(snapshotDoneName(path))
	if err != nil {
		return err
	}
	doneFile, err := model.OpenLogFile(0, ioManager)
	if err != nil {
		_ = ioManager.Close()
		return err
	}
	if err = doneFile.Write(done); err == nil {
		err = doneFile.Sync()
	}
	if closeErr := doneFile.Close(); err == nil {
		err = closeErr
	}
	return err
}

func removeSnapshot(o *options, path string) {
	for _, name := range []string{path, snapshotDoneName(path)} {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			o.logger.Error("remove partial snapshot failed", "path", name, "error", err)
		}
	}
}

// LoadSnapshot checks the snapshot at path against its done marker and puts every
// item it holds into store. It returns the number of items loaded.
func LoadSnapshot(path string, store keydir.Keydir, opts ...Option) (int, error) {
	o := newOptions(opts...)

	done, err := os.ReadFile(snapshotDoneName(path))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrSnapshotNotDone
		}
		return 0, err
	}
	if len(done) != snapshotDoneSize {
		return 0, ErrSnapshotCorrupted
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if uint64(len(data)) != binary.LittleEndian.Uint64(done[4:12]) ||
		!utils.CheckCrc(binary.LittleEndian.Uint32(done[0:4]), data) {
		return 0, ErrSnapshotCorrupted
	}

	items, err := loadSnapshotRecords(o.codec, data, store)
	if err != nil {
		o.logger.Warn("load snapshot failed", "path", path, "items", items, "error", err)
		return items, err
	}
	o.logger.Info("snapshot loaded", "path", path, "items", items)
	return items, nil
}

func loadSnapshotRecords(c codec.Codec, data []byte, store keydir.Keydir) (int, error) {
	rec, n, err := c.Decode(data)
	if err != nil {
		return 0, err
	}
	head, ok := rec.(*model.SnapshotHeadLog)
	if !ok || head.Version != model.SnapshotFormatVersion {
		return 0, ErrInvalidSnapshot
	}
	data = data[n:]

	var items int
	for {
		if len(data) == 0 {
			return items, ErrInvalidSnapshot
		}
		rec, n, err = c.Decode(data)
		if err != nil {
			return items, err
		}
		data = data[n:]

		switch log := rec.(type) {
		case *model.ItemLinkLog:
			it := model.NewItemFromLink(log)
			store.Put(it.Key(), it)
			items++
		case *model.SnapshotTailLog:
			if len(data) != 0 {
				return items, ErrInvalidSnapshot
			}
			return items, nil
		default:
			return items, ErrInvalidSnapshot
		}
	}
}
