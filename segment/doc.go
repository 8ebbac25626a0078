// Package segment splits the body of an EDIFACT interchange into segments.
//
// A Splitter reads one delimiter-terminated segment at a time from a byte stream, so memory
// use is bounded by the longest segment rather than the document size. Before every read it
// skips line-break bytes that already sit on the segment boundary (see SkipLineBreaks), which
// makes re-splitting already formatted input stable.
//
// The splitter is a plain byte scan. A segment terminator preceded by the release character
// still ends the segment.
//
// Usage Example:
//
//	s := segment.NewSplitter(r, '\'')
//	for s.Scan() {
//	    fmt.Printf("%s\n", s.Bytes())
//	}
//	if err := s.Err(); err != nil {
//	    // Handle error
//	}
package segment
