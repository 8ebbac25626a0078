package writeback

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/go-edifmt/formatter"
)

// FormatFile formats the document at path and replaces the file with the formatted document.
//
// The file is rewritten only when formatting changed it. On failure the file is left as it was
// and no temporary file remains.
func FormatFile(path string, opts ...formatter.Option) (formatter.Result, error) {
	cfg := formatter.NewConfig(opts...)
	log := cfg.Logger().With("path", path)

	src, err := os.Open(path)
	if err != nil {
		return formatter.Result{}, fmt.Errorf("format %s: %w", path, err)
	}
	defer src.Close()

	pending, err := Acquire(path)
	if err != nil {
		return formatter.Result{}, err
	}
	defer pending.Discard() //nolint:errcheck

	res, err := cfg.Format(src, pending)
	if err != nil {
		return res, fmt.Errorf("format %s: %w", path, err)
	}

	if !res.Changed {
		log.Debug("already formatted, skipping")
		return res, pending.Discard()
	}

	// close the source before the rename, required on Windows
	_ = src.Close()

	if err := pending.Commit(); err != nil {
		return res, err
	}
	log.Info("formatted", "segments", res.Segments, "bytes", res.BytesOut)

	return res, nil
}

// Preview formats the document at path and writes the result to w. The file is not modified.
func Preview(path string, w io.Writer, opts ...formatter.Option) (formatter.Result, error) {
	src, err := os.Open(path)
	if err != nil {
		return formatter.Result{}, fmt.Errorf("preview %s: %w", path, err)
	}
	defer src.Close()

	res, err := formatter.Format(src, w, opts...)
	if err != nil {
		return res, fmt.Errorf("preview %s: %w", path, err)
	}

	return res, nil
}

// FormatStream formats the document read from r and writes it to w.
func FormatStream(r io.Reader, w io.Writer, opts ...formatter.Option) (formatter.Result, error) {
	return formatter.Format(r, w, opts...)
}
