package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var volumeFile string

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Weekly working sets per muscle group of a workout log",
	RunE:  runVolume,
}

func init() {
	volumeCmd.Flags().StringVar(&volumeFile, "file", "", "workout log, YAML or .fit")
	_ = volumeCmd.MarkFlagRequired("file")
}

func runVolume(cmd *cobra.Command, _ []string) error {
	volumes, _, err := weeklyVolume(volumeFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, volumes)
	}

	w := newTabWriter(out)
	fmt.Fprintln(w, "MUSCLE GROUP\tSETS\tREPS\tVOLUME\tDAYS\tTARGET\tSTATUS")
	for _, v := range volumes {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%d\t%d-%d\t%s\n",
			v.MuscleGroup, v.TotalSets, v.TotalReps, v.TotalVolume, v.Frequency, v.Target.Low, v.Target.High, v.Status)
	}
	return w.Flush()
}
