// Command edi-format rewrites EDIFACT documents with one segment per line.
//
// Usage:
//
//	edi-format [path] [flags]
//
// The file is replaced atomically and only when its content changes. With --dry-run the
// formatted document is printed instead, with --stdin the document is read from standard
// input and written to standard output.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
