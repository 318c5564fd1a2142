package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/animtools/bvh/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <config.yaml>",
	Short: "Convert a set of motion files described by a YAML config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(args[0])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(configPath string) error {
	cfg, err := batch.LoadConfigFile(configPath)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range batch.Run(cfg) {
		if res.Failed() {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", res.Job.Input, res.Err)
			continue
		}
		fmt.Printf("ok   %s -> %s\n", res.Job.Input, res.Job.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(cfg.Jobs))
	}
	return nil
}
