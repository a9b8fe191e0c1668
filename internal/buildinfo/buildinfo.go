package buildinfo

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/MistByteX/predictor/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("predictor %s (commit=%s, date=%s, %s)", Version, Commit, Date, runtime.Version())
}
