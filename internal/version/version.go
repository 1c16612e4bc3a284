package version

import "github.com/fatih/color"

// Build-time identity of the catalyst CLI. Every variable here can be
// overridden via -ldflags.

var (
	// Version is the semantic version reported by the version command.
	Version = colorSemver("0", "1", "0", "-dev")

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// colorSemver paints each version component in its own color.
func colorSemver(major, minor, patch, pre string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(major) + "." +
		color.New(color.FgGreen, color.Bold).Sprint(minor) + "." +
		color.New(color.FgBlue, color.Bold).Sprint(patch) + pre
}
