package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bvh",
	Short: "bvh inspects and converts Biovision Hierarchy motion files",
	Long: `bvh parses, inspects, and canonically rewrites .bvh skeletal motion
capture files. Gzip- and zstd-compressed inputs are detected and
decompressed transparently.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
