package buildinfo

import "fmt"

// Set at build time with -ldflags "-X github.com/arloliu/go-edifmt/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("edi-format %s (commit=%s, date=%s)", Version, Commit, Date)
}
