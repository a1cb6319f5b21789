package version

import "runtime/debug"

// Version is set via -ldflags at build time.
var Version = "devel"

// A user may install vista with `go install` and no -ldflags, in which case
// the variable above stays unset; fall back to the embedded build version,
// which is set for `go install` builds.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	mainVersion := info.Main.Version
	if mainVersion != "" && mainVersion != "(devel)" {
		Version = mainVersion
	}
}
