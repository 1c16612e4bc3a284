package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	jobs           int
}

func flagsOf(cmd *cobra.Command) rootFlags {
	quiet, _ := cmd.Flags().GetBool("quiet")
	timings, _ := cmd.Flags().GetBool("timings")
	maxDiag, _ := cmd.Flags().GetInt("max-diagnostics")
	jobs, _ := cmd.Flags().GetInt("jobs")
	return rootFlags{quiet: quiet, timings: timings, maxDiagnostics: maxDiag, jobs: jobs}
}

// setupColor applies the --color mode to the global color state.
func setupColor(cmd *cobra.Command) {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}
