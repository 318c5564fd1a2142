package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/animtools/bvh/bvh"
)

var inspectDump bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Print the joint table of a motion file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectDump, "dump", false, "dump the full parsed structure")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string) error {
	f, err := bvh.LoadFile(path)
	if err != nil {
		return err
	}

	if inspectDump {
		spew.Fdump(os.Stdout, f)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tNAME\tPARENT\tDEPTH\tCHANNELS\tOFFSET")
	for i, j := range f.Joints() {
		kinds := make([]string, len(j.Channels))
		for k, c := range j.Channels {
			kinds[k] = c.Kind.String()
		}
		channels := strings.Join(kinds, " ")
		if channels == "" {
			channels = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%.3f %.3f %.3f\n",
			i, j.Name, j.ParentIndex, j.Depth, channels,
			j.Offset.X, j.Offset.Y, j.Offset.Z)
	}
	return w.Flush()
}
