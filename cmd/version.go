package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, set via -ldflags at build time:
//
//	-X github.com/kompaksatyabuana/kompak/cmd.version=v1.2.0
//	-X github.com/kompaksatyabuana/kompak/cmd.commit=abc1234
//	-X github.com/kompaksatyabuana/kompak/cmd.buildDate=2026-10-19
var (
	version   = "(devel)"
	commit    = ""
	buildDate = ""
)

// versionString renders the version line, omitting unknown metadata.
func versionString() string {
	s := "kompak " + version
	switch {
	case commit != "" && buildDate != "":
		s += fmt.Sprintf(" (commit %s, built %s)", commit, buildDate)
	case commit != "":
		s += fmt.Sprintf(" (commit %s)", commit)
	case buildDate != "":
		s += fmt.Sprintf(" (built %s)", buildDate)
	}
	return s
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build metadata",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString())
	},
}
