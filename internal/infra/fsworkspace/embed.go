package fsworkspace

import "embed"

// seedFS holds the starter files copied into a fresh home directory.
//
//go:embed seed
var seedFS embed.FS
