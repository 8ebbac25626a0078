package una

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	// HeaderSize is the fixed length of the UNA header in bytes.
	HeaderSize = 9

	// Marker is the literal tag which opens a UNA header.
	Marker = "UNA"
)

// Descriptor holds the delimiters declared by a UNA header.
//
// Descriptor is an immutable value. It keeps a copy of the raw header bytes so the
// header can be emitted verbatim, including a non-standard marker in lenient mode.
type Descriptor struct {
	// Composite is the component data element separator, ':' by default.
	Composite byte
	// DataElement is the data element separator, '+' by default.
	DataElement byte
	// Decimal is the decimal mark, '.' by default.
	Decimal byte
	// Escape is the release character, '?' by default.
	Escape byte
	// Reserved is the reserved character, ' ' by default.
	Reserved byte
	// Segment is the segment terminator, '\'' by default.
	Segment byte

	raw [HeaderSize]byte
}

var defaultRaw = [HeaderSize]byte{'U', 'N', 'A', ':', '+', '.', '?', ' ', '\''}

// Default returns the descriptor used by documents which omit the UNA header.
func Default() Descriptor {
	return fromRaw(defaultRaw)
}

// ParseOption represents a functional option for Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	strictMarker bool
}

// WithStrictMarker makes Parse fail with ErrInvalidMarker when the header does not start with "UNA".
func WithStrictMarker() ParseOption {
	return func(cfg *parseConfig) {
		cfg.strictMarker = true
	}
}

// Parse reads exactly HeaderSize bytes from r and extracts the delimiters at offsets 3 to 8.
//
// It returns ErrTruncatedHeader if r ends before 9 bytes were read. Other read errors are
// returned wrapped. On success r is positioned immediately after the header; nothing more
// is consumed.
func Parse(r io.Reader, opts ...ParseOption) (Descriptor, error) {
	cfg := parseConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var raw [HeaderSize]byte
	n, err := io.ReadFull(r, raw[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Descriptor{}, fmt.Errorf("%w, got %d", ErrTruncatedHeader, n)
		}

		return Descriptor{}, fmt.Errorf("read UNA header: %w", err)
	}

	if cfg.strictMarker && !HasMarker(raw[:]) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidMarker, raw[:3])
	}

	return fromRaw(raw), nil
}

// FromBytes builds a descriptor from an in-memory header of exactly HeaderSize bytes.
// The marker is not validated.
func FromBytes(b []byte) (Descriptor, error) {
	switch {
	case len(b) < HeaderSize:
		return Descriptor{}, fmt.Errorf("%w, got %d", ErrTruncatedHeader, len(b))
	case len(b) > HeaderSize:
		return Descriptor{}, fmt.Errorf("%w, got %d", ErrHeaderLength, len(b))
	}

	var raw [HeaderSize]byte
	copy(raw[:], b)

	return fromRaw(raw), nil
}

// HasMarker reports whether b starts with the literal "UNA".
func HasMarker(b []byte) bool {
	return bytes.HasPrefix(b, []byte(Marker))
}

func fromRaw(raw [HeaderSize]byte) Descriptor {
	return Descriptor{
		Composite:   raw[3],
		DataElement: raw[4],
		Decimal:     raw[5],
		Escape:      raw[6],
		Reserved:    raw[7],
		Segment:     raw[8],
		raw:         raw,
	}
}

// Raw returns the header bytes exactly as they were read.
func (d Descriptor) Raw() [HeaderSize]byte {
	return d.raw
}

// Bytes returns a copy of the header bytes exactly as they were read.
func (d Descriptor) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b, d.raw[:])

	return b
}

// IsZero reports whether d is the zero value, i.e. no header has been parsed.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// String implements fmt.Stringer.
func (d Descriptor) String() string {
	return fmt.Sprintf("UNA{composite=%q data=%q decimal=%q escape=%q reserved=%q segment=%q}",
		d.Composite, d.DataElement, d.Decimal, d.Escape, d.Reserved, d.Segment)
}
