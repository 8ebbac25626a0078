// Package una parses the UNA service string advice header of EDIFACT interchanges.
//
// The UNA header is a fixed 9-byte prefix which declares the delimiter characters used
// throughout the rest of the document:
//
//	offset  0-2   literal "UNA"
//	offset  3     component data element separator (composite delimiter)
//	offset  4     data element separator
//	offset  5     decimal mark
//	offset  6     release (escape) character
//	offset  7     reserved, usually a space
//	offset  8     segment terminator
//
// The parser is lenient by default: it does not check that the first three bytes spell "UNA".
// Use WithStrictMarker to reject headers with a different marker.
//
// Usage Example:
//
//	desc, err := una.Parse(r)
//	if err != nil {
//	    // Handle error, errors.Is(err, una.ErrTruncatedHeader) for short input
//	}
//	// desc.Segment is the segment terminator, r is positioned right after the header
package una
