package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/overload/internal/overload"

	"github.com/spf13/cobra"
)

const recordTimeout = 10 * time.Second

var (
	recordServer   string
	recordUser     string
	recordExercise string
	recordName     string
	recordWeight   float64
	recordReps     int
	recordEffort   float64
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a set on a running overload service",
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordServer, "server", "http://localhost:9000", "overload service base URL")
	recordCmd.Flags().StringVar(&recordUser, "user", "", "user id")
	recordCmd.Flags().StringVar(&recordExercise, "exercise", "", "exercise id, e.g. bench_press")
	recordCmd.Flags().StringVar(&recordName, "name", "", "exercise display name (default: the exercise id)")
	recordCmd.Flags().Float64Var(&recordWeight, "weight", 0, "weight lifted, kg")
	recordCmd.Flags().IntVar(&recordReps, "reps", 0, "repetitions performed")
	recordCmd.Flags().Float64Var(&recordEffort, "rpe", 0, "rate of perceived exertion, 1 to 10 (optional)")
	_ = recordCmd.MarkFlagRequired("user")
	_ = recordCmd.MarkFlagRequired("exercise")
	_ = recordCmd.MarkFlagRequired("reps")
}

func runRecord(cmd *cobra.Command, _ []string) error {
	input := overload.SetInput{
		ExerciseID:   recordExercise,
		ExerciseName: recordName,
		Weight:       recordWeight,
		Reps:         recordReps,
		PerformedAt:  time.Now().UTC(),
	}
	if input.ExerciseName == "" {
		input.ExerciseName = strings.ReplaceAll(recordExercise, "_", " ")
	}
	if cmd.Flags().Changed("rpe") {
		effort := recordEffort
		input.Effort = &effort
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), recordTimeout)
	defer cancel()

	evaluation, err := postSet(ctx, http.DefaultClient, recordServer, recordUser, input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, evaluation)
	}

	fmt.Fprintf(out, "recorded %s: %g kg x %d, e1RM %.2f kg\n",
		evaluation.Record.ExerciseID, evaluation.Record.Weight, evaluation.Record.Reps, evaluation.Record.EstimatedOneRepMax)
	if evaluation.IsPR {
		fmt.Fprintln(out, "new personal record!")
	}
	return nil
}

func postSet(ctx context.Context, client *http.Client, server, userID string, input overload.SetInput) (*overload.Evaluation, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal set: %w", err)
	}

	endpoint := strings.TrimSuffix(server, "/") + "/users/" + url.PathEscape(userID) + "/sets"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "overloadctl/"+Version)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post set: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("record set: %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var evaluation overload.Evaluation
	if err := json.Unmarshal(respBody, &evaluation); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}
	return &evaluation, nil
}
