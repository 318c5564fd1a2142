package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/animtools/bvh/bvh"
)

var statsCmd = &cobra.Command{
	Use:   "stats <input>",
	Short: "Summarize a motion file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(args[0])
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(path string) error {
	f, err := bvh.LoadFile(path)
	if err != nil {
		return err
	}

	endSites := 0
	for _, j := range f.Joints() {
		if j.HasEndSite() {
			endSites++
		}
	}

	fmt.Printf("joints:     %d (%d end sites)\n", f.NumJoints(), endSites)
	fmt.Printf("channels:   %d\n", f.NumChannels())
	fmt.Printf("frames:     %d\n", f.NumFrames())
	fmt.Printf("frame time: %gs (%.2f fps)\n", f.FrameTime(), 1/f.FrameTime())
	fmt.Printf("duration:   %.3fs\n", f.Duration())
	return nil
}
