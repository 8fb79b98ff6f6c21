package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(stdout, "scanboard %s\n", Version)
		fmt.Fprintf(stdout, "  commit: %s\n", Commit)
		fmt.Fprintf(stdout, "  built:  %s\n", Date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
