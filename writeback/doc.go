// Package writeback writes formatted EDIFACT documents back to their destination.
//
// A file is never modified in place: the formatted document is written to a temporary file in the
// same directory, which replaces the original only after it has been completely written and synced.
// Files which are already formatted are left untouched.
//
// Preview and FormatStream write to an arbitrary io.Writer instead, for dry runs and pipes.
package writeback
