// Package buildinfo holds version data stamped at link time with -ldflags "-X ...".
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String is the `iro version` line. Unstamped builds installed with `go install` report the
// module version instead of "dev".
func String() string {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return fmt.Sprintf("iro %s (commit=%s, date=%s, %s)", v, Commit, Date, runtime.Version())
}
