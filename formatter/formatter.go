package formatter

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/arloliu/go-edifmt/internal/pool"
	"github.com/arloliu/go-edifmt/segment"
	"github.com/arloliu/go-edifmt/una"
)

const lineBreak = '\n'

var lineBreakBytes = []byte{lineBreak}

// Result describes a completed formatting pass.
type Result struct {
	// Changed reports whether the formatted output differs from the input, byte for byte.
	Changed bool
	// Descriptor is the UNA descriptor used to split the document.
	Descriptor una.Descriptor
	// DefaultHeader reports whether the document had no UNA header and the default one was inserted.
	DefaultHeader bool
	// Segments is the number of segments written, not counting the header.
	Segments int
	// Truncated reports whether the final segment had no terminator.
	Truncated bool
	// Stats holds the splitter counters.
	Stats segment.Stats
	// BytesIn is the number of bytes read from the input.
	BytesIn int64
	// BytesOut is the number of bytes written to the output.
	BytesOut int64
}

// Format reads an EDIFACT document from r and writes it to w with one segment per line.
//
// The 9-byte UNA header is written verbatim followed by a line break, then every segment is
// written with its interior line breaks removed and followed by exactly one line break.
// Formatting is idempotent: formatting the output again yields the same bytes and a Result
// with Changed set to false.
//
// Format fails with an *Error of kind KindTruncatedHeader when r holds fewer than 9 bytes; nothing
// is written in that case. Read and write failures are reported with kind KindIO.
func Format(r io.Reader, w io.Writer, opts ...Option) (Result, error) {
	return NewConfig(opts...).Format(r, w)
}

// FormatBytes formats an in-memory document and returns the formatted bytes.
func FormatBytes(in []byte, opts ...Option) ([]byte, Result, error) {
	var out bytes.Buffer
	out.Grow(len(in) + len(in)/16 + una.HeaderSize)

	res, err := Format(bytes.NewReader(in), &out, opts...)
	if err != nil {
		return nil, res, err
	}

	return out.Bytes(), res, nil
}

// Format runs a formatting pass with this configuration.
func (cfg *Config) Format(r io.Reader, w io.Writer) (Result, error) {
	det := &changeDetector{}

	br := pool.GetReader(io.TeeReader(r, inputTee{d: det}))
	defer pool.PutReader(br)

	bw := pool.GetWriter(w)
	defer pool.PutWriter(bw)

	p := &pass{cfg: cfg, det: det, br: br, bw: bw}
	res, err := p.run()

	res.BytesIn = det.bytesIn
	res.BytesOut = det.bytesOut
	if err != nil {
		return res, err
	}

	res.Changed = det.changed()
	cfg.logger.Debug("document formatted",
		"segments", res.Segments,
		"changed", res.Changed,
		"bytes_in", res.BytesIn,
		"bytes_out", res.BytesOut,
	)

	return res, nil
}

// pass holds the state of a single formatting pass.
type pass struct {
	cfg *Config
	det *changeDetector
	br  *bufio.Reader
	bw  *bufio.Writer
	res Result
}

func (p *pass) run() (Result, error) {
	if err := p.readHeader(); err != nil {
		return p.res, err
	}

	if err := p.emit(p.res.Descriptor.Bytes()); err != nil {
		return p.res, err
	}

	splitter := segment.NewSplitter(p.br, p.res.Descriptor.Segment,
		segment.WithLineBreaks(p.cfg.lineBreaks...),
		segment.WithReaderSize(p.br.Size()),
	)

	for splitter.Scan() {
		if splitter.Truncated() {
			p.res.Truncated = true
			if p.cfg.rejectTruncated {
				p.res.Stats = splitter.Stats()
				return p.res, newError("read segment", KindTruncatedSegment, ErrTruncatedSegment)
			}

			p.cfg.logger.Warn("final segment has no terminator",
				"segment", p.res.Segments+1,
				"size", len(splitter.Bytes()),
			)
		}

		if err := p.emit(splitter.Bytes()); err != nil {
			return p.res, err
		}
		p.res.Segments++
	}

	p.res.Stats = splitter.Stats()
	if err := splitter.Err(); err != nil {
		return p.res, newError("read segment", KindIO, err)
	}

	if p.res.Stats.DroppedFragments > 0 {
		p.cfg.logger.Debug("dropped whitespace after last segment")
	}

	if err := p.bw.Flush(); err != nil {
		return p.res, newError("write", KindIO, err)
	}

	return p.res, nil
}

func (p *pass) readHeader() error {
	if p.cfg.defaultHeader {
		marker, err := p.br.Peek(len(una.Marker))
		if err != nil && !errors.Is(err, io.EOF) {
			return newError("parse header", KindIO, err)
		}

		if !una.HasMarker(marker) {
			p.cfg.logger.Debug("no UNA header, using default delimiters")
			p.res.Descriptor = una.Default()
			p.res.DefaultHeader = true

			return nil
		}
	}

	var opts []una.ParseOption
	if p.cfg.strictMarker {
		opts = append(opts, una.WithStrictMarker())
	}

	desc, err := una.Parse(p.br, opts...)
	if err != nil {
		return newError("parse header", headerErrorKind(err), err)
	}

	p.cfg.logger.Debug("UNA header parsed", "una", desc.String())
	p.res.Descriptor = desc

	return nil
}

// emit writes b followed by a line break.
func (p *pass) emit(b []byte) error {
	if _, err := p.bw.Write(b); err != nil {
		return newError("write", KindIO, err)
	}
	p.det.observeOutput(b)

	// a '\n' terminator already ends the line
	if len(b) > 0 && b[len(b)-1] == lineBreak {
		return nil
	}

	if err := p.bw.WriteByte(lineBreak); err != nil {
		return newError("write", KindIO, err)
	}
	p.det.observeOutput(lineBreakBytes)

	return nil
}
