// Package buildinfo carries version metadata stamped at build time.
//
// Release builds inject the values with ldflags, e.g.
//
//	go build -ldflags "-X github.com/noahgsolomon/lumen/pkg/buildinfo.Version=v0.3.0"
//
// Development builds report "dev".
package buildinfo

import "fmt"

var (
	// Version is the release tag.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the build metadata for plain output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
