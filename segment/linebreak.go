package segment

import (
	"bufio"
	"errors"
	"io"
)

// DefaultLineBreaks is the set of line-break bytes absorbed when no other set is configured.
var DefaultLineBreaks = []byte{'\n'}

// SkipLineBreaks advances r past consecutive line-break bytes and returns how many were skipped.
//
// The first byte which is not in breaks is left unread. If breaks is empty, DefaultLineBreaks is used.
// Reaching the end of the stream is not an error; only a failure of the underlying reader is returned.
func SkipLineBreaks(r *bufio.Reader, breaks ...byte) (int, error) {
	if len(breaks) == 0 {
		breaks = DefaultLineBreaks
	}

	n := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}

		if !isLineBreak(b, breaks) {
			// UnreadByte can't fail right after a successful ReadByte
			_ = r.UnreadByte()
			return n, nil
		}
		n++
	}
}

func isLineBreak(b byte, breaks []byte) bool {
	for _, lb := range breaks {
		if b == lb {
			return true
		}
	}

	return false
}
