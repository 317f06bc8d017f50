package cmdlog

import (
	"io"
	"log/slog"

	"github.com/cqkv/cmdlog/codec"
	"github.com/cqkv/cmdlog/fio"
	"github.com/cqkv/cmdlog/keydir"
)

const (
	defaultDirPath    = "./cmdlog"
	defaultBufferSize = 64 * 1024
)

type options struct {
	dirPath      string
	bufferSize   int
	syncOnAppend bool

	ioManagerCreator func(path string) (fio.IOManager, error)
	codec            codec.Codec
	logger           *slog.Logger

	keydirType   keydir.IndexType
	keydirDegree int
}

type Option func(*options)

var defaultIOManagerCreator = func(path string) (fio.IOManager, error) {
	return fio.NewFileIO(path)
}

func newOptions(opts ...Option) *options {
	o := &options{
		dirPath:          defaultDirPath,
		bufferSize:       defaultBufferSize,
		ioManagerCreator: defaultIOManagerCreator,
		keydirType:       keydir.BTreeIndex,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.codec == nil {
		o.codec = codec.NewLogCodec(o.logger)
	}
	if o.bufferSize < 0 {
		o.bufferSize = 0
	}
	return o
}

// WithDirPath sets the log directory used when Open gets an empty dir
func WithDirPath(dirPath string) Option {
	return func(o *options) {
		o.dirPath = dirPath
	}
}

// WithIOManagerCreator replaces the file io, fn gets the full file path
func WithIOManagerCreator(fn func(path string) (fio.IOManager, error)) Option {
	return func(o *options) {
		o.ioManagerCreator = fn
	}
}

func WithCodec(codec codec.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithBufferSize sets the append buffer, records larger than it are written directly
func WithBufferSize(size int) Option {
	return func(o *options) {
		o.bufferSize = size
	}
}

// WithSyncOnAppend fsyncs after every append and batch commit
func WithSyncOnAppend(sync bool) Option {
	return func(o *options) {
		o.syncOnAppend = sync
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithKeydirType(typ keydir.IndexType) Option {
	return func(o *options) {
		o.keydirType = typ
	}
}

func WithKeydirDegree(degree int) Option {
	return func(o *options) {
		o.keydirDegree = degree
	}
}

// NewKeydir returns the item store configured by opts
func NewKeydir(opts ...Option) keydir.Keydir {
	o := newOptions(opts...)
	return keydir.NewKeydir(o.keydirType, o.keydirDegree)
}

type writeBatchOptions struct {
	// max number of records in one batch
	maxBatchNum int
	// sync after commit
	sync bool
}

type WriteBatchOption func(*writeBatchOptions)

var defaultWriteBatchOptions = writeBatchOptions{
	maxBatchNum: 10000,
	sync:        false,
}

func WithMaxBatchNum(num int) WriteBatchOption {
	return func(o *writeBatchOptions) {
		o.maxBatchNum = num
	}
}

func WithBatchSync(sync bool) WriteBatchOption {
	return func(o *writeBatchOptions) {
		o.sync = sync
	}
}
