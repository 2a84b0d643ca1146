package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var release string

// Version reports the module version of an installed binary. Source builds
// report "<VERSION>-dev", followed by the short commit and "-dirty" when
// the tree had local changes.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return strings.TrimSpace(release)
	}
	return versionFrom(info)
}

func versionFrom(info *debug.BuildInfo) string {
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	out := strings.TrimSpace(release) + "-dev"
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) >= 7 {
		out += "+" + rev[:7]
	}
	if dirty {
		out += "-dirty"
	}
	return out
}
