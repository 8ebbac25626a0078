package formatter

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/go-edifmt/logger"
	"github.com/arloliu/go-edifmt/una"
)

// FuzzFormat fuzzes the formatter with arbitrary documents.
//
// The invariants are: Format never panics, only inputs shorter than the header are
// rejected, the header is kept, Changed matches a plain byte comparison and a second
// pass over the output is a no-op.
func FuzzFormat(f *testing.F) {
	f.Add([]byte("UNA:+.? 'UNB+IATB:1+...'UNH+1+...'"), uint8(0), false)
	f.Add([]byte("UNA:+.? '\nUNB+IATB:1+...'\nUNH+1+...'\n"), uint8(0), false)
	f.Add([]byte("UNA:+.? '\r\nA'\r\nB'\r\n"), uint8(1), false)
	f.Add([]byte("UNA:+.? 'A'B'UNZ+1"), uint8(0), false)
	f.Add([]byte("UNA:+.? \nA\nB"), uint8(0), false)
	f.Add([]byte("UNA|*,# ~A~\n\n~"), uint8(0), false)
	f.Add([]byte("\nUNA:+.? 'A'"), uint8(0), true)
	f.Add([]byte("UNB+IATB:1'UNH+1'"), uint8(0), true)
	f.Add([]byte("UNA:+"), uint8(0), false)
	f.Add([]byte{}, uint8(0), true)
	f.Add([]byte("UNA:+.? 'A"), uint8(2), false)

	silent := logger.NewSlogWithOptions(logger.Options{Level: logger.ErrorLevel, Output: io.Discard})

	breakSets := [][]byte{nil, {'\r', '\n'}, {'\r'}}

	f.Fuzz(func(t *testing.T, input []byte, breaks uint8, defaultHeader bool) {
		opts := []Option{WithLogger(silent), WithLineBreaks(breakSets[int(breaks)%len(breakSets)]...)}
		if defaultHeader {
			opts = append(opts, WithDefaultHeader())
		}

		out, res, err := FormatBytes(input, opts...)
		if err != nil {
			if !IsKind(err, KindTruncatedHeader) || len(input) >= una.HeaderSize {
				t.Fatalf("unexpected error for %q: %v", input, err)
			}
			return
		}

		if res.Changed == bytes.Equal(input, out) {
			t.Fatalf("changed=%v for %q -> %q", res.Changed, input, out)
		}

		if !res.DefaultHeader && !bytes.Equal(input[:una.HeaderSize], out[:una.HeaderSize]) {
			t.Fatalf("header not kept: %q -> %q", input, out)
		}

		again, res2, err := FormatBytes(out, opts...)
		if err != nil {
			t.Fatalf("second pass failed for %q: %v", out, err)
		}
		if res2.Changed || !bytes.Equal(out, again) {
			t.Fatalf("not idempotent: %q -> %q -> %q", input, out, again)
		}
		if res.Segments != res2.Segments {
			t.Fatalf("segment count changed from %d to %d for %q", res.Segments, res2.Segments, input)
		}
	})
}
