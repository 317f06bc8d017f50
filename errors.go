package cmdlog

import (
	"fmt"

	"github.com/cqkv/cmdlog/codec"
)

var (
	ErrDirIsUsing  = addPrefix("directory is using")
	ErrLogClosed   = addPrefix("log is closed")
	ErrNoIOManager = addPrefix("no io manager")
	ErrInvalidPos  = addPrefix("record position is not in this log")

	ErrExceedMaxBatchNum = addPrefix("exceed the max batch num")

	ErrInvalidSnapshot   = addPrefix("invalid snapshot record sequence")
	ErrSnapshotNotDone   = addPrefix("snapshot is not done")
	ErrSnapshotCorrupted = addPrefix("snapshot file may be corrupted")

	ErrUnknownKeydirType = addPrefix("unknown keydir type")
	ErrUnknownLogLevel   = addPrefix("unknown log level")

	// ErrTruncatedRecord marks a log that ends inside a record
	ErrTruncatedRecord = codec.ErrTruncatedRecord
)

func addPrefix(errStr string) error {
	return fmt.Errorf("cmdlog err: %s", errStr)
}
