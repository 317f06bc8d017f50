package model

import (
	"fmt"
	"path/filepath"

	"github.com/cqkv/cmdlog/fio"
)

const (
	LogFileSuffix      = ".cmdlog"
	SnapshotFileSuffix = ".snap"
	SnapshotDoneSuffix = ".done"
)

// RecordPos locates one record inside the command log
type RecordPos struct {
	Fid    uint32 // file id
	Size   uint32 // record size, header included
	Offset int64  // record position
}

func GetLogFileName(dirPath string, fid uint32) string {
	return filepath.Join(dirPath, fmt.Sprintf("%09d%s", fid, LogFileSuffix))
}

type LogFile struct {
	Fid         uint32
	WriteOffset int64
	IoManager   fio.IOManager
}

// OpenLogFile wraps an opened file, appends continue at its current end
func OpenLogFile(fid uint32, ioManager fio.IOManager) (*LogFile, error) {
	size, err := ioManager.Size()
	if err != nil {
		return nil, err
	}
	return &LogFile{
		Fid:         fid,
		WriteOffset: size,
		IoManager:   ioManager,
	}, nil
}

func (lf *LogFile) Sync() error {
	return lf.IoManager.Sync()
}

func (lf *LogFile) Close() error {
	return lf.IoManager.Close()
}

// Write binary data into file
func (lf *LogFile) Write(data []byte) error {
	size, err := lf.IoManager.Write(data)
	if err != nil {
		return err
	}
	lf.WriteOffset += int64(size)
	return nil
}

// ReadRecordHeader returns the header bytes at offset, fewer than HeaderSize at the tail
func (lf *LogFile) ReadRecordHeader(offset int64) ([]byte, error) {
	fileSize, err := lf.IoManager.Size()
	if err != nil {
		return nil, err
	}

	var headerBuf int64 = HeaderSize
	if headerBuf+offset > fileSize {
		headerBuf = fileSize - offset
	}

	return lf.readNBytes(offset, headerBuf)
}

func (lf *LogFile) ReadRecord(off, size int64) (data []byte, err error) {
	return lf.readNBytes(off, size)
}

func (lf *LogFile) readNBytes(offset, n int64) ([]byte, error) {
	buf := make([]byte, n)
	_, err := lf.IoManager.Read(buf, offset)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
