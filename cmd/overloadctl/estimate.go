package main

import (
	"fmt"

	"github.com/2beens/overload/internal/overload/strength"

	"github.com/spf13/cobra"
)

var (
	estimateWeight float64
	estimateReps   int
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the one rep max of a set (Epley)",
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().Float64Var(&estimateWeight, "weight", 0, "weight lifted, kg")
	estimateCmd.Flags().IntVar(&estimateReps, "reps", 0, "repetitions performed")
	_ = estimateCmd.MarkFlagRequired("weight")
	_ = estimateCmd.MarkFlagRequired("reps")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	if estimateWeight < 0 {
		return fmt.Errorf("weight must not be negative, got %v", estimateWeight)
	}
	if estimateReps < 1 {
		return fmt.Errorf("reps must be at least 1, got %d", estimateReps)
	}

	e1rm := strength.EstimateOneRepMax(estimateWeight, estimateReps)
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string]any{
			"weight":             estimateWeight,
			"reps":               estimateReps,
			"estimatedOneRepMax": e1rm,
		})
	}

	fmt.Fprintf(out, "%.2f kg\n", e1rm)
	return nil
}
