package main

import (
	"fmt"
	"strings"

	"github.com/2beens/overload/internal/overload/split"

	"github.com/spf13/cobra"
)

var (
	splitFile string
	splitDays int
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Plan next week's split from a workout log",
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&splitFile, "file", "", "workout log, YAML or .fit")
	splitCmd.Flags().IntVar(&splitDays, "days", 3, "training days available, 1 to 7")
	_ = splitCmd.MarkFlagRequired("file")
}

func runSplit(cmd *cobra.Command, _ []string) error {
	volumes, resolver, err := weeklyVolume(splitFile)
	if err != nil {
		return err
	}

	days, err := split.NewOptimizer(resolver).Optimize("cli", volumes, splitDays)
	if err != nil {
		return err
	}
	frequency := split.RecommendedFrequency(volumes)

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]any{
			"days":      days,
			"frequency": frequency,
		})
	}

	for _, day := range days {
		fmt.Fprintf(out, "Day %d\n", day.Day)
		if len(day.Targets) == 0 {
			fmt.Fprintln(out, "  rest or free choice")
		}
		for _, target := range day.Targets {
			fmt.Fprintf(out, "  %-12s %-6s %s (%s)\n",
				target.MuscleGroup, target.Priority, strings.Join(target.Exercises, ", "), target.Reason)
		}
	}
	return nil
}
