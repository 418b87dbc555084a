package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Actual version can be set at build time via -ldflags "-X github.com/spigell/resume-screener/cmd.version=...".
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
