package cmdlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cqkv/cmdlog/keydir"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir         string        `yaml:"data_dir"`
	BufferSizeBytes int           `yaml:"buffer_size_bytes"`
	SyncOnAppend    bool          `yaml:"sync_on_append"`
	Keydir          KeydirConfig  `yaml:"keydir"`
	Logging         LoggingConfig `yaml:"logging"`
}

type KeydirConfig struct {
	// btree or skiplist
	Type   string `yaml:"type"`
	Degree int    `yaml:"degree"`
}

type LoggingConfig struct {
	// debug, info, warn or error
	Level string `yaml:"level"`
	// stdout, stderr or none
	Output string `yaml:"output"`
}

// Load reads a yaml config from r on top of the defaults, a nil or empty r gives the defaults
func Load(r io.Reader) (*Config, error) {
	cfg := &Config{
		DataDir:         defaultDirPath,
		BufferSizeBytes: defaultBufferSize,
		SyncOnAppend:    false,
		Keydir: KeydirConfig{
			Type:   "btree",
			Degree: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "none",
		},
	}

	if r == nil {
		return cfg, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config yaml: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads the config file at path, a missing file gives the defaults
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load(nil)
		}
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	return Load(file)
}

// Options converts the config into options for Open, WriteSnapshot and LoadSnapshot
func (c *Config) Options() ([]Option, error) {
	var typ keydir.IndexType
	switch strings.ToLower(c.Keydir.Type) {
	case "", "btree":
		typ = keydir.BTreeIndex
	case "skiplist":
		typ = keydir.SkipListIndex
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeydirType, c.Keydir.Type)
	}

	logger, err := c.Logging.newLogger()
	if err != nil {
		return nil, err
	}

	return []Option{
		WithDirPath(c.DataDir),
		WithBufferSize(c.BufferSizeBytes),
		WithSyncOnAppend(c.SyncOnAppend),
		WithKeydirType(typ),
		WithKeydirDegree(c.Keydir.Degree),
		WithLogger(logger),
	}, nil
}

func (lc LoggingConfig) newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLogLevel, lc.Level)
	}

	var w io.Writer
	switch strings.ToLower(lc.Output) {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	case "", "none":
		w = io.Discard
	default:
		return nil, fmt.Errorf("unknown log output %q", lc.Output)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("component", "cmdlog"), nil
}
