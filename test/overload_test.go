//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/overload/internal/overload"
	"github.com/2beens/overload/internal/overload/progression"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) do(ctx context.Context, method, path string, body any) (int, []byte) {
	t := s.T()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "overloadctl/test")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestRecordSetsAndAdvice() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := gofakeit.UUID()
	start := time.Now().UTC().Add(-4 * 24 * time.Hour)

	var evaluations []overload.Evaluation
	for i, weight := range []float64{100, 105, 102.5} {
		status, body := s.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/sets", userID), overload.SetInput{
			ExerciseID:   "squat",
			ExerciseName: "Back Squat",
			Weight:       weight,
			Reps:         5,
			PerformedAt:  start.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.Equal(t, http.StatusCreated, status, string(body))

		var evaluation overload.Evaluation
		require.NoError(t, json.Unmarshal(body, &evaluation))
		evaluations = append(evaluations, evaluation)
	}
	assert.True(t, evaluations[0].IsPR)
	assert.Nil(t, evaluations[0].PreviousBest)
	assert.True(t, evaluations[1].IsPR)
	assert.False(t, evaluations[2].IsPR)
	require.NotNil(t, evaluations[2].PreviousBest)
	assert.InDelta(t, 122.5, *evaluations[2].PreviousBest, 0.001)

	status, body := s.do(ctx, http.MethodGet, fmt.Sprintf("/users/%s/prs", userID), nil)
	require.Equal(t, http.StatusOK, status)
	var prs overload.RecordsResponse
	require.NoError(t, json.Unmarshal(body, &prs))
	assert.Equal(t, 2, prs.Total)

	status, body = s.do(ctx, http.MethodGet, fmt.Sprintf("/users/%s/advice?days=3&strategy=linear", userID), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var advice overload.Advice
	require.NoError(t, json.Unmarshal(body, &advice))
	assert.Equal(t, progression.Linear, advice.Strategy)
	require.Len(t, advice.Recommendations, 1)
	assert.Equal(t, "squat", advice.Recommendations[0].ExerciseID)
	assert.Len(t, advice.Split, 3)
	assert.NotEmpty(t, advice.Volume)
}

func (s *IntegrationTestSuite) TestRecordSetIsRateLimited() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t := s.T()
	userID := gofakeit.UUID()
	path := fmt.Sprintf("/users/%s/sets", userID)
	input := overload.SetInput{ExerciseID: "bench_press", ExerciseName: "Bench Press", Weight: 60, Reps: 8}

	for i := 0; i < recordRateLimitPerMin; i++ {
		status, body := s.do(ctx, http.MethodPost, path, input)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, _ := s.do(ctx, http.MethodPost, path, input)
	assert.Equal(t, http.StatusTooManyRequests, status)

	// other users keep their own budget
	status, _ = s.do(ctx, http.MethodPost, fmt.Sprintf("/users/%s/sets", gofakeit.UUID()), input)
	assert.Equal(t, http.StatusCreated, status)
}
