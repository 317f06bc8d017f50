package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cqkv/cmdlog"
	"github.com/cqkv/cmdlog/codec"
	"github.com/cqkv/cmdlog/model"
)

func main() {
	file := flag.String("file", "", "The command log or snapshot file to dump (required)")
	configPath := flag.String("config", "", "Optional yaml config, its logging and keydir sections are used")
	limit := flag.Int("limit", 0, "Stop after this many records, 0 dumps all")
	verify := flag.Bool("verify", false, "Load a snapshot file through its done marker instead of dumping it")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file flag is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := cmdlog.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *configPath == "" {
		cfg.Logging.Output = "stderr"
		cfg.Logging.Level = "warn"
	}
	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}

	if *verify {
		if !strings.HasSuffix(*file, model.SnapshotFileSuffix) {
			fmt.Fprintf(os.Stderr, "Error: -verify needs a %s file\n", model.SnapshotFileSuffix)
			os.Exit(1)
		}
		n, err := cmdlog.LoadSnapshot(*file, cmdlog.NewKeydir(opts...), opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("snapshot ok, %d items\n", n)
		return
	}

	if err = dump(os.Stdout, *file, *limit); err != nil {
		fmt.Fprintf(os.Stderr, "Error dumping %s: %v\n", *file, err)
		os.Exit(1)
	}
}

func dump(w io.Writer, path string, limit int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rd := cmdlog.NewSizedReader(bufio.NewReader(f), stat.Size(), codec.NewLogCodec(logger))
	out := bufio.NewWriter(w)
	defer out.Flush()

	for n := 0; limit == 0 || n < limit; n++ {
		offset := rd.Offset()
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("record %d at offset %d: %w", n, offset, err)
		}
		fmt.Fprintf(out, "# record %d offset %d\n%s\n", n, offset, codec.Describe(rec))
	}
	return nil
}
