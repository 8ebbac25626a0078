package writeback

import "errors"

var (
	// ErrFinished is returned when writing to or committing a Pending which was already committed or discarded.
	ErrFinished = errors.New("pending file already finished")
	// ErrNotRegular is returned when the path to format is not a regular file.
	ErrNotRegular = errors.New("not a regular file")
)
