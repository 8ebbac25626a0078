package formatter

import (
	"errors"
	"fmt"

	"github.com/arloliu/go-edifmt/una"
)

var (
	// ErrTruncatedHeader indicates that the document is shorter than the 9-byte UNA header.
	ErrTruncatedHeader = una.ErrTruncatedHeader

	// ErrInvalidMarker indicates that the header doesn't start with "UNA" in strict marker mode.
	ErrInvalidMarker = una.ErrInvalidMarker

	// ErrTruncatedSegment indicates that the last segment has no terminator.
	// It's only returned when WithRejectTruncated is used; otherwise the fragment is emitted as is.
	ErrTruncatedSegment = errors.New("final segment has no terminator")
)

// ErrorKind classifies formatting failures.
type ErrorKind string

const (
	KindTruncatedHeader  ErrorKind = "truncated_header"
	KindInvalidMarker    ErrorKind = "invalid_marker"
	KindTruncatedSegment ErrorKind = "truncated_segment"
	KindIO               ErrorKind = "io"
)

// Error describes a failed formatting pass.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func newError(op string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}

	return false
}

func headerErrorKind(err error) ErrorKind {
	switch {
	case errors.Is(err, una.ErrTruncatedHeader):
		return KindTruncatedHeader
	case errors.Is(err, una.ErrInvalidMarker):
		return KindInvalidMarker
	default:
		return KindIO
	}
}
