package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotopo.",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("gotopo\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
