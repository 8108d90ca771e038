package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata; overridden at link time via -ldflags "-X hop/internal/version.Version=...".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	GitCommit  = ""
	GitMessage = ""
	// BuildDate is an ISO-8601 timestamp.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component in its own colour.
// Pre-release suffixes are left plain.
func Colored(enabled bool) string {
	v := strings.TrimSpace(Version)
	if !enabled || v == "" {
		return v
	}
	core, suffix, hasSuffix := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	palette := []*color.Color{majorColor, minorColor, patchColor}
	for i := range parts {
		c := *palette[i]
		c.EnableColor()
		parts[i] = c.Sprint(parts[i])
	}
	out := strings.Join(parts, ".")
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}
