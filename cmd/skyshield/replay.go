package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skyshield/internal/engine"
)

var (
	replayInput  string
	replayEvents bool
	replaySpeed  float64
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded mission log file",
	Long:  "replay feeds track or event rows from a JSONL log back through the stdout writers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		w := engine.NewJSONStdoutWriter()
		if replayEvents {
			return engine.ReplayEventFile(replayInput, w, replaySpeed)
		}
		return engine.ReplayTrackFile(replayInput, w, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to mission log file")
	replayCmd.Flags().BoolVar(&replayEvents, "events", false, "Replay mission events instead of threat tracks")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.MarkFlagRequired("input")
}
