package segment

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"slices"
)

const defaultReaderSize = 4096

// Stats counts what a Splitter did to its input.
type Stats struct {
	// Segments is the number of segments produced, including a truncated final fragment.
	Segments int
	// BoundaryBreaks is the number of line-break bytes skipped between segments.
	BoundaryBreaks int
	// InteriorBreaks is the number of line-break bytes removed from inside segments.
	InteriorBreaks int
	// DroppedFragments is the number of whitespace-only trailing fragments that were discarded.
	DroppedFragments int
}

// Option represents a functional option for configuring a Splitter.
type Option func(*Splitter)

// WithLineBreaks sets the line-break bytes skipped on segment boundaries and removed from
// segment content. The default is DefaultLineBreaks; pass '\r', '\n' to normalize CRLF input.
func WithLineBreaks(breaks ...byte) Option {
	return func(s *Splitter) {
		if len(breaks) > 0 {
			s.breaks = slices.Clone(breaks)
		}
	}
}

// WithReaderSize sets the minimum buffer size of the underlying bufio.Reader.
// Segments longer than the buffer are still read in full.
func WithReaderSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.readerSize = size
		}
	}
}

// Splitter produces the segments of a document one at a time.
//
// A Splitter is a forward-only sequence: once the underlying reader is consumed it can't be
// restarted. It's not safe for concurrent use.
type Splitter struct {
	r          *bufio.Reader
	delim      byte
	breaks     []byte
	readerSize int

	seg       []byte
	truncated bool
	done      bool
	err       error
	stats     Stats
}

// NewSplitter creates a Splitter reading segments terminated by delim from r.
//
// If r is already a *bufio.Reader with a large enough buffer, it's used directly, so bytes
// buffered by a previous reader such as the UNA header parser are not lost.
func NewSplitter(r io.Reader, delim byte, opts ...Option) *Splitter {
	s := &Splitter{
		delim:      delim,
		breaks:     DefaultLineBreaks,
		readerSize: defaultReaderSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	// the terminator itself is never treated as a line break
	s.breaks = slices.DeleteFunc(slices.Clone(s.breaks), func(b byte) bool { return b == delim })
	s.r = bufio.NewReaderSize(r, s.readerSize)

	return s
}

// Scan advances to the next segment, which is then available through Bytes.
//
// It returns false when the input is exhausted or an error occurred; Err tells the two apart.
// A trailing fragment without a terminator is still returned when it contains anything other
// than whitespace, and Truncated reports true for it. A whitespace-only fragment is dropped.
func (s *Splitter) Scan() bool {
	if s.done {
		return false
	}

	if len(s.breaks) > 0 {
		skipped, err := SkipLineBreaks(s.r, s.breaks...)
		s.stats.BoundaryBreaks += skipped
		if err != nil {
			s.fail(err)
			return false
		}
	}

	s.seg = s.seg[:0]
	s.truncated = false

	read := 0
	for {
		chunk, err := s.r.ReadSlice(s.delim)
		read += len(chunk)
		s.appendChunk(chunk)

		if err == nil {
			s.stats.Segments++
			return true
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if !errors.Is(err, io.EOF) {
			s.fail(err)
			return false
		}

		break
	}

	// end of stream, no terminator found
	s.done = true
	if read == 0 {
		return false
	}

	if isBlank(s.seg) {
		s.stats.DroppedFragments++
		s.seg = s.seg[:0]

		return false
	}

	s.truncated = true
	s.stats.Segments++

	return true
}

// Bytes returns the current segment without interior line breaks.
//
// The returned slice is only valid until the next call to Scan.
func (s *Splitter) Bytes() []byte {
	return s.seg
}

// Truncated reports whether the current segment is a final fragment without a terminator.
func (s *Splitter) Truncated() bool {
	return s.truncated
}

// Err returns the first error other than io.EOF encountered by the Splitter.
func (s *Splitter) Err() error {
	return s.err
}

// Stats returns the counters collected so far.
func (s *Splitter) Stats() Stats {
	return s.stats
}

// All returns an iterator over the remaining segments.
//
// Each yielded slice is only valid during the iteration step. If reading fails, the error
// is yielded once with a nil segment and the iteration stops.
func (s *Splitter) All() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for s.Scan() {
			if !yield(s.Bytes(), nil) {
				return
			}
		}

		if err := s.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func (s *Splitter) appendChunk(chunk []byte) {
	start := 0
	for i, b := range chunk {
		if isLineBreak(b, s.breaks) {
			s.seg = append(s.seg, chunk[start:i]...)
			s.stats.InteriorBreaks++
			start = i + 1
		}
	}
	s.seg = append(s.seg, chunk[start:]...)
}

// isBlank reports whether b holds only ASCII whitespace. Other bytes, including
// Unicode spaces such as NBSP, are content.
func isBlank(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return false
		}
	}

	return true
}

func (s *Splitter) fail(err error) {
	s.err = err
	s.done = true
	s.seg = s.seg[:0]
	s.truncated = false
}
