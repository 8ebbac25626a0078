package una

import "errors"

var (
	// ErrTruncatedHeader indicates that fewer than 9 bytes were available when reading the header.
	ErrTruncatedHeader = errors.New("truncated UNA header, expected 9 bytes")

	// ErrHeaderLength indicates that an in-memory header is longer than 9 bytes.
	ErrHeaderLength = errors.New("invalid UNA header length, expected 9 bytes")

	// ErrInvalidMarker indicates that the header does not start with the literal "UNA".
	// It is only reported when strict marker validation is enabled.
	ErrInvalidMarker = errors.New("invalid UNA header marker")
)
