package codec

import "fmt"

var (
	ErrTruncatedRecord = addPrefix("record is truncated")
	ErrCorruptRecord   = addPrefix("record is corrupted")
	ErrUnknownLogType  = addPrefix("unknown log type")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("codec err: %s", errStr)
}
