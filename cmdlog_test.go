package cmdlog

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/cqkv/cmdlog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T, dir string, opts ...Option) *Log {
	l, err := Open(dir, opts...)
	require.Nil(t, err)
	require.NotNil(t, l)
	return l
}

func kvLink(key, value string, cas uint64) *model.ItemLinkLog {
	return model.NewItemLinkLog(model.NewKVItem([]byte(key), []byte(value), 0, 0, cas))
}

func unlink(t testing.TB, key string) *model.ItemUnlinkLog {
	log, err := model.NewItemUnlinkLog([]byte(key))
	require.Nil(t, err)
	return log
}

// replayKeys returns the key of every record in the log, "-" for records without one
func replayKeys(t *testing.T, l *Log) []string {
	var keys []string
	err := l.Replay(func(rec model.Record) error {
		keys = append(keys, recordKey(rec))
		return nil
	})
	require.Nil(t, err)
	return keys
}

func recordKey(rec model.Record) string {
	switch log := rec.(type) {
	case *model.ItemLinkLog:
		return string(log.Key)
	case *model.ItemUnlinkLog:
		return string(log.Key)
	case *model.SetElemInsertLog:
		return string(log.Key)
	}
	return "-"
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	l := openTestLog(t, dir)

	// the directory is locked while the log is open
	_, err := Open(dir)
	assert.Equal(t, ErrDirIsUsing, err)

	require.Nil(t, l.Close())
	require.Nil(t, l.Close())

	l = openTestLog(t, dir)
	assert.Nil(t, l.Close())

	_, err = os.Stat(model.GetLogFileName(dir, 0))
	assert.Nil(t, err)
}

func TestOpen_DirPathOption(t *testing.T) {
	dir := t.TempDir()
	l := openTestLog(t, "", WithDirPath(dir))
	defer l.Close()

	_, err := Open(dir)
	assert.Equal(t, ErrDirIsUsing, err)
}

func TestLog_AppendReplay(t *testing.T) {
	l := openTestLog(t, t.TempDir())
	defer l.Close()

	set, err := model.NewSetElemInsertLog([]byte("set"), []byte("member"), &model.CollAttrs{MaxCount: 10})
	require.Nil(t, err)
	records := []model.Record{
		kvLink("foo", "bar", 42),
		unlink(t, "old"),
		set,
		kvLink("foo", "baz", 43),
	}

	var positions []*model.RecordPos
	for _, rec := range records {
		pos, err := l.Append(rec)
		require.Nil(t, err)
		positions = append(positions, pos)
	}

	// records are laid out back to back
	assert.Equal(t, int64(0), positions[0].Offset)
	for i := 1; i < len(positions); i++ {
		assert.Equal(t, positions[i-1].Offset+int64(positions[i-1].Size), positions[i].Offset)
	}
	assert.Equal(t, uint32(40), positions[0].Size)
	assert.Equal(t, positions[3].Offset+int64(positions[3].Size), l.Size())

	var replayed []model.Record
	err = l.Replay(func(rec model.Record) error {
		replayed = append(replayed, rec)
		return nil
	})
	require.Nil(t, err)
	require.Len(t, replayed, len(records))
	for i, rec := range replayed {
		assert.Equal(t, *records[i].Header(), *rec.Header())
	}
	assert.Equal(t, []byte("baz"), replayed[3].(*model.ItemLinkLog).Value)
	assert.Equal(t, &model.CASPayload{CAS: 43}, replayed[3].(*model.ItemLinkLog).Payload)
}

func TestLog_ReplayStopsOnError(t *testing.T) {
	l := openTestLog(t, t.TempDir())
	defer l.Close()

	for i := 0; i < 5; i++ {
		_, err := l.Append(kvLink(fmt.Sprintf("key-%d", i), "v", 1))
		require.Nil(t, err)
	}

	stop := fmt.Errorf("stop")
	var n int
	err := l.Replay(func(rec model.Record) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, n)
}

func TestLog_ReplayWhileAppending(t *testing.T) {
	l := openTestLog(t, t.TempDir())
	defer l.Close()

	_, err := l.Append(kvLink("a", "1", 1))
	require.Nil(t, err)

	// records appended during a replay are not replayed by it
	var n int
	err = l.Replay(func(rec model.Record) error {
		n++
		_, err := l.Append(unlink(t, "a"))
		return err
	})
	require.Nil(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a", "a"}, replayKeys(t, l))
}

func TestLog_LargeRecord(t *testing.T) {
	l := openTestLog(t, t.TempDir(), WithBufferSize(64))
	defer l.Close()

	big := string(make([]byte, 1000))
	_, err := l.Append(kvLink("small", "v", 1))
	require.Nil(t, err)
	pos, err := l.Append(kvLink("big", big, 2))
	require.Nil(t, err)
	assert.Equal(t, int64(40), pos.Offset)
	_, err = l.Append(kvLink("small2", "v", 3))
	require.Nil(t, err)

	assert.Equal(t, []string{"small", "big", "small2"}, replayKeys(t, l))
}

func TestLog_Unbuffered(t *testing.T) {
	l := openTestLog(t, t.TempDir(), WithBufferSize(0))
	defer l.Close()

	for i := 0; i < 10; i++ {
		_, err := l.Append(kvLink(fmt.Sprintf("key-%d", i), "value", uint64(i)))
		require.Nil(t, err)
	}
	assert.Len(t, replayKeys(t, l), 10)
}

func TestLog_Reopen(t *testing.T) {
	dir := t.TempDir()
	l := openTestLog(t, dir)
	_, err := l.Append(kvLink("a", "1", 1))
	require.Nil(t, err)
	require.Nil(t, l.Close())

	l = openTestLog(t, dir)
	defer l.Close()
	pos, err := l.Append(kvLink("b", "2", 2))
	require.Nil(t, err)
	assert.Equal(t, int64(40), pos.Offset)

	assert.Equal(t, []string{"a", "b"}, replayKeys(t, l))
}

func TestLog_FlushAndSync(t *testing.T) {
	dir := t.TempDir()
	l := openTestLog(t, dir)
	defer l.Close()

	_, err := l.Append(kvLink("a", "1", 1))
	require.Nil(t, err)

	stat, err := os.Stat(model.GetLogFileName(dir, 0))
	require.Nil(t, err)
	assert.Equal(t, int64(0), stat.Size())

	require.Nil(t, l.Flush())
	stat, err = os.Stat(model.GetLogFileName(dir, 0))
	require.Nil(t, err)
	assert.Equal(t, int64(40), stat.Size())

	_, err = l.Append(kvLink("b", "2", 2))
	require.Nil(t, err)
	require.Nil(t, l.Sync())
	stat, err = os.Stat(model.GetLogFileName(dir, 0))
	require.Nil(t, err)
	assert.Equal(t, int64(80), stat.Size())
}

func TestLog_SyncOnAppend(t *testing.T) {
	dir := t.TempDir()
	l := openTestLog(t, dir, WithSyncOnAppend(true))
	defer l.Close()

	pos, err := l.Append(kvLink("a", "1", 1))
	require.Nil(t, err)

	stat, err := os.Stat(model.GetLogFileName(dir, 0))
	require.Nil(t, err)
	assert.Equal(t, pos.Offset+int64(pos.Size), stat.Size())
}

func TestLog_Closed(t *testing.T) {
	l := openTestLog(t, t.TempDir())
	require.Nil(t, l.Close())

	_, err := l.Append(kvLink("a", "1", 1))
	assert.Equal(t, ErrLogClosed, err)
	assert.Equal(t, ErrLogClosed, l.Flush())
	assert.Equal(t, ErrLogClosed, l.Sync())
	assert.Equal(t, ErrLogClosed, l.Replay(func(model.Record) error { return nil }))
}

func TestLog_ConcurrentAppend(t *testing.T) {
	l := openTestLog(t, t.TempDir(), WithBufferSize(4096))
	defer l.Close()

	const (
		writers = 8
		appends = 200
	)
	var wg sync.WaitGroup
	for g := 0; g < writers; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < appends; i++ {
				// varying sizes so that records straddle buffer flushes
				value := string(make([]byte, (g*31+i)%300))
				_, err := l.Append(kvLink(fmt.Sprintf("w%d-%04d", g, i), value, uint64(i)))
				assert.Nil(t, err)
			}
		}(g)
	}
	wg.Wait()

	// every record comes back whole and each writer's records keep their order
	next := make(map[byte]int)
	var n int
	err := l.Replay(func(rec model.Record) error {
		key := recordKey(rec)
		g := key[1]
		assert.Equal(t, fmt.Sprintf("w%c-%04d", g, next[g]), key)
		next[g]++
		n++
		return nil
	})
	require.Nil(t, err)
	assert.Equal(t, writers*appends, n)
}

func TestLog_TruncatedTail(t *testing.T) {
	tests := []struct {
		name string
		tail []byte
	}{
		{"partial header", []byte{32, 0, 0}},
		{"partial body", append([]byte{32, 0, 0, 0, model.LogItLink, model.UpdSet, 0, 0}, make([]byte, 10)...)},
		{"oversized body length", append([]byte{0xf8, 0xff, 0xff, 0xff, model.LogItLink, model.UpdSet, 0, 0}, make([]byte, 16)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			l := openTestLog(t, dir)
			for i := 0; i < 3; i++ {
				_, err := l.Append(kvLink(fmt.Sprintf("key-%d", i), "v", 1))
				require.Nil(t, err)
			}
			require.Nil(t, l.Close())

			f, err := os.OpenFile(model.GetLogFileName(dir, 0), os.O_APPEND|os.O_WRONLY, 0644)
			require.Nil(t, err)
			_, err = f.Write(tt.tail)
			require.Nil(t, err)
			require.Nil(t, f.Close())

			l = openTestLog(t, dir)
			defer l.Close()

			var keys []string
			err = l.Replay(func(rec model.Record) error {
				keys = append(keys, recordKey(rec))
				return nil
			})
			assert.ErrorIs(t, err, ErrTruncatedRecord)
			assert.Equal(t, []string{"key-0", "key-1", "key-2"}, keys)
		})
	}
}

func TestLog_Read(t *testing.T) {
	l := openTestLog(t, t.TempDir(), WithBufferSize(128))
	defer l.Close()

	var positions []*model.RecordPos
	for i := 0; i < 10; i++ {
		pos, err := l.Append(kvLink(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i), uint64(i)))
		require.Nil(t, err)
		positions = append(positions, pos)
	}

	// flushed and still buffered records alike
	for i := len(positions) - 1; i >= 0; i-- {
		rec, err := l.Read(positions[i])
		require.Nil(t, err)
		link, ok := rec.(*model.ItemLinkLog)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("key-%d", i), string(link.Key))
		assert.Equal(t, fmt.Sprintf("value-%d", i), string(link.Value))
	}

	_, err := l.Read(&model.RecordPos{Fid: 1, Size: 40})
	assert.Equal(t, ErrInvalidPos, err)
	_, err = l.Read(&model.RecordPos{Offset: l.Size(), Size: 40})
	assert.Equal(t, ErrInvalidPos, err)
	// a position inside a record
	_, err = l.Read(&model.RecordPos{Offset: 8, Size: 40})
	assert.NotNil(t, err)
}
