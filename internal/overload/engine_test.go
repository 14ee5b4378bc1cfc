package overload_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/overload/internal/overload"
	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/split"
	"github.com/2beens/overload/internal/overload/strength"
	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/overload/volume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEngine(cfg overload.Config) *overload.Engine {
	c := catalog.New()
	resolver := catalog.NewResolver(c, 1)
	tracker := strength.NewTracker(strength.NewMemoryStore())
	return overload.NewEngine(
		tracker,
		volume.NewTracker(resolver),
		progression.NewAdvisor(tracker, resolver, progression.DefaultConfig()),
		split.NewOptimizer(c),
		cfg,
	)
}

func findVolume(t *testing.T, volumes []volume.MuscleGroupVolume, group string) volume.MuscleGroupVolume {
	t.Helper()
	for _, v := range volumes {
		if v.MuscleGroup == group {
			return v
		}
	}
	t.Fatalf("muscle group %s not found", group)
	return volume.MuscleGroupVolume{}
}

func TestEngine_LogAndEvaluate_BenchPressPRs(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(overload.Config{})
	start := training.Day(time.Now().Add(-time.Hour)).Add(time.Minute)

	log := func(weight float64, at time.Time) *overload.Evaluation {
		evaluation, err := engine.LogAndEvaluate(ctx, overload.SetInput{
			UserID:       "u1",
			ExerciseID:   "bench_press",
			ExerciseName: "Bench Press",
			Weight:       weight,
			Reps:         5,
			PerformedAt:  at,
		})
		require.NoError(t, err)
		require.NotNil(t, evaluation)
		return evaluation
	}

	first := log(80, start)
	assert.True(t, first.IsPR)
	assert.Nil(t, first.PreviousBest)
	assert.InDelta(t, 93.33, first.Record.EstimatedOneRepMax, 0.01)

	second := log(82.5, start.Add(10*time.Minute))
	assert.True(t, second.IsPR)
	require.NotNil(t, second.PreviousBest)
	assert.InDelta(t, 93.33, *second.PreviousBest, 0.01)
	assert.InDelta(t, 96.25, second.Record.EstimatedOneRepMax, 0.01)

	third := log(80, start.Add(20*time.Minute))
	assert.False(t, third.IsPR)
	require.NotNil(t, third.PreviousBest)
	assert.InDelta(t, 96.25, *third.PreviousBest, 0.01)

	chest := findVolume(t, third.Volume, "chest")
	assert.Equal(t, 3, chest.TotalSets)
	assert.Equal(t, 15, chest.TotalReps)
	assert.Equal(t, 1, chest.Frequency)
	assert.Equal(t, volume.Undertrained, chest.Status)
	assert.Equal(t, 3, findVolume(t, third.Volume, "triceps").TotalSets)

	prs, err := engine.AllPRs(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, prs, 2)
	assert.Equal(t, second.Record.ID, prs[0].ID)
	assert.Equal(t, first.Record.ID, prs[1].ID)

	best, err := engine.CurrentBest(ctx, "u1", "bench_press")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.InDelta(t, 96.25, *best, 0.01)

	history, err := engine.History(ctx, "u1", "bench_press", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, third.Record.ID, history[0].ID)
	assert.Equal(t, second.Record.ID, history[1].ID)
}

func TestEngine_LogAndEvaluate_VolumeWindowEndsAtTheSet(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(overload.Config{VolumeWindowDays: 7})
	now := time.Now().UTC()

	_, err := engine.LogAndEvaluate(ctx, overload.SetInput{
		UserID:      "u1",
		ExerciseID:  "leg_curl",
		Weight:      40,
		Reps:        10,
		PerformedAt: now.AddDate(0, 0, -10),
	})
	require.NoError(t, err)

	evaluation, err := engine.LogAndEvaluate(ctx, overload.SetInput{
		UserID:      "u1",
		ExerciseID:  "leg_curl",
		Weight:      40,
		Reps:        10,
		PerformedAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	hamstrings := findVolume(t, evaluation.Volume, "hamstrings")
	assert.Equal(t, 1, hamstrings.TotalSets, "the set ten days ago is outside the window")
}

func TestEngine_LogAndEvaluate_InvalidInput(t *testing.T) {
	engine := newTestEngine(overload.Config{})

	evaluation, err := engine.LogAndEvaluate(context.Background(), overload.SetInput{
		UserID:     "u1",
		ExerciseID: "bench_press",
		Weight:     -10,
		Reps:       0,
	})
	assert.ErrorIs(t, err, training.ErrInvalidInput)
	assert.Nil(t, evaluation)

	prs, err := engine.AllPRs(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, prs)
}

func TestEngine_Advise(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(overload.Config{})
	now := time.Now().UTC()

	sets := []overload.SetInput{
		{UserID: "u1", ExerciseID: "bench_press", ExerciseName: "Bench Press", Weight: 80, Reps: 5, PerformedAt: now.Add(-72 * time.Hour)},
		{UserID: "u1", ExerciseID: "bench_press", ExerciseName: "Bench Press", Weight: 82.5, Reps: 5, PerformedAt: now.Add(-48 * time.Hour)},
		{UserID: "u1", ExerciseID: "back_squat", ExerciseName: "Back Squat", Weight: 100, Reps: 5, PerformedAt: now.Add(-24 * time.Hour)},
	}
	for _, set := range sets {
		_, err := engine.LogAndEvaluate(ctx, set)
		require.NoError(t, err)
	}

	advice, err := engine.Advise(ctx, "u1", 2, "")
	require.NoError(t, err)
	require.NotNil(t, advice)
	assert.Equal(t, progression.Linear, advice.Strategy)

	require.Len(t, advice.Recommendations, 2)
	squat := advice.Recommendations[0]
	assert.Equal(t, "back_squat", squat.ExerciseID)
	assert.Equal(t, progression.RationaleInitial, squat.Rationale)
	assert.Equal(t, 60.0, squat.Weight)
	assert.Equal(t, 5, squat.Reps)

	bench := advice.Recommendations[1]
	assert.Equal(t, "bench_press", bench.ExerciseID)
	assert.Equal(t, "Bench Press", bench.ExerciseName)
	assert.Equal(t, progression.RationalePerformanceIncrease, bench.Rationale)
	assert.Equal(t, 85.0, bench.Weight)
	assert.Equal(t, 5, bench.Reps)

	groups := make([]string, 0, len(advice.Volume))
	for _, v := range advice.Volume {
		groups = append(groups, v.MuscleGroup)
	}
	assert.Equal(t, []string{"chest", "glutes", "quadriceps", "triceps"}, groups)

	require.Len(t, advice.Split, 2)
	assert.Equal(t, "chest", advice.Split[0].Targets[0].MuscleGroup)
	assert.Equal(t, "quadriceps", advice.Split[1].Targets[0].MuscleGroup)
	assert.Equal(t, 3, advice.Frequency["chest"])
}

func TestEngine_Advise_ExplicitStrategy(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(overload.Config{DefaultStrategy: progression.WaveLoading})
	now := time.Now().UTC()

	for i, weight := range []float64{80, 82.5} {
		_, err := engine.LogAndEvaluate(ctx, overload.SetInput{
			UserID:      "u1",
			ExerciseID:  "bench press",
			Weight:      weight,
			Reps:        5,
			PerformedAt: now.Add(time.Duration(i-3) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	advice, err := engine.Advise(ctx, "u1", 1, "")
	require.NoError(t, err)
	assert.Equal(t, progression.WaveLoading, advice.Strategy)
	require.Len(t, advice.Recommendations, 1)
	assert.Equal(t, progression.WaveLoading, advice.Recommendations[0].Strategy)

	advice, err = engine.Advise(ctx, "u1", 1, "DOUBLE_PROGRESSION")
	require.NoError(t, err)
	assert.Equal(t, progression.DoubleProgression, advice.Strategy)
	assert.Equal(t, progression.RationaleRepIncrease, advice.Recommendations[0].Rationale)
	assert.Equal(t, 6, advice.Recommendations[0].Reps)
}

func TestEngine_Advise_NoHistory(t *testing.T) {
	engine := newTestEngine(overload.Config{})

	advice, err := engine.Advise(context.Background(), "nobody", 3, progression.Linear)
	require.NoError(t, err)
	assert.Empty(t, advice.Recommendations)
	assert.Empty(t, advice.Volume)
	require.Len(t, advice.Split, 3)
	for _, plan := range advice.Split {
		assert.Empty(t, plan.Targets)
	}

	best, err := engine.CurrentBest(context.Background(), "nobody", "bench_press")
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestEngine_Advise_RejectsBadArgumentsBeforeLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no calls are expected on any collaborator
	engine := overload.NewEngine(
		NewMockstrengthTracker(ctrl),
		NewMockvolumeTracker(ctrl),
		NewMockprogressionAdvisor(ctrl),
		NewMocksplitOptimizer(ctrl),
		overload.Config{},
	)

	for _, days := range []int{0, 8, -3} {
		advice, err := engine.Advise(context.Background(), "u1", days, progression.Linear)
		assert.ErrorIs(t, err, training.ErrInvalidInput, "days: %d", days)
		assert.Nil(t, advice)
	}

	advice, err := engine.Advise(context.Background(), "u1", 3, "yolo")
	assert.ErrorIs(t, err, training.ErrInvalidInput)
	assert.Nil(t, advice)

	_, err = engine.Recommend(context.Background(), "u1", "bench_press", "yolo")
	assert.ErrorIs(t, err, training.ErrInvalidInput)

	plan, err := engine.Split(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, training.ErrInvalidInput)
	assert.Nil(t, plan)
}

func TestEngine_ErrorsFromCollaborators(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("store down")

	t.Run("current best", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := NewMockstrengthTracker(ctrl)
		tracker.EXPECT().CurrentBest(gomock.Any(), "u1", "bench_press").Return(0.0, false, storeErr)

		engine := overload.NewEngine(tracker, NewMockvolumeTracker(ctrl), NewMockprogressionAdvisor(ctrl), NewMocksplitOptimizer(ctrl), overload.Config{})
		evaluation, err := engine.LogAndEvaluate(ctx, overload.SetInput{UserID: "u1", ExerciseID: "bench_press", Weight: 80, Reps: 5})
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, evaluation)
	})

	t.Run("workouts after record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := NewMockstrengthTracker(ctrl)
		performedAt := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
		gomock.InOrder(
			tracker.EXPECT().CurrentBest(gomock.Any(), "u1", "bench_press").Return(0.0, false, nil),
			tracker.EXPECT().Record(gomock.Any(), gomock.Any()).Return(strength.Record{
				ID:        "r1",
				UserID:    "u1",
				Timestamp: performedAt,
				IsPR:      true,
			}, nil),
			tracker.EXPECT().
				Workouts(gomock.Any(), "u1", performedAt.AddDate(0, 0, -3).Add(time.Nanosecond), performedAt.Add(time.Nanosecond)).
				Return(nil, storeErr),
		)

		engine := overload.NewEngine(tracker, NewMockvolumeTracker(ctrl), NewMockprogressionAdvisor(ctrl), NewMocksplitOptimizer(ctrl), overload.Config{VolumeWindowDays: 3})
		evaluation, err := engine.LogAndEvaluate(ctx, overload.SetInput{UserID: "u1", ExerciseID: "bench_press", Weight: 80, Reps: 5, PerformedAt: performedAt})
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, evaluation)
	})

	t.Run("recommend", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := NewMockstrengthTracker(ctrl)
		advisor := NewMockprogressionAdvisor(ctrl)
		tracker.EXPECT().Exercises(gomock.Any(), "u1").Return([]strength.ExerciseRef{{ID: "bench_press", Name: "Bench Press"}}, nil)
		advisor.EXPECT().Recommend(gomock.Any(), "u1", "bench_press", progression.Deload).Return(progression.Recommendation{}, storeErr)

		engine := overload.NewEngine(tracker, NewMockvolumeTracker(ctrl), advisor, NewMocksplitOptimizer(ctrl), overload.Config{})
		advice, err := engine.Advise(ctx, "u1", 2, progression.Deload)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, advice)
	})

	t.Run("split", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := NewMockstrengthTracker(ctrl)
		volumes := NewMockvolumeTracker(ctrl)
		optimizer := NewMocksplitOptimizer(ctrl)

		workouts := []training.Workout{{Date: time.Now()}}
		computed := []volume.MuscleGroupVolume{{MuscleGroup: "chest", TotalSets: 4}}
		tracker.EXPECT().Workouts(gomock.Any(), "u1", gomock.Any(), gomock.Any()).Return(workouts, nil)
		volumes.EXPECT().WeeklyVolume(workouts).Return(computed, nil)
		optimizer.EXPECT().Optimize("u1", computed, 4).Return(nil, storeErr)

		engine := overload.NewEngine(tracker, volumes, NewMockprogressionAdvisor(ctrl), optimizer, overload.Config{})
		plan, err := engine.Split(ctx, "u1", 4)
		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, plan)
	})
}

func TestEngine_WeeklyVolume(t *testing.T) {
	engine := newTestEngine(overload.Config{})
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	volumes, err := engine.WeeklyVolume([]training.Workout{
		{
			Date: day,
			Exercises: []training.ExercisePerformance{
				{ExerciseName: "Bench Press", Sets: repeatSet(12, training.SetResult{Weight: 80, Reps: 8})},
				{ExerciseName: "Romanian Deadlift", Sets: repeatSet(3, training.SetResult{Weight: 100, Reps: 8})},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, volume.Recovered, findVolume(t, volumes, "chest").Status)
	assert.Equal(t, volume.Undertrained, findVolume(t, volumes, "hamstrings").Status)
}

func TestEngine_WeeklyVolume_RejectsMalformedSets(t *testing.T) {
	engine := newTestEngine(overload.Config{})

	volumes, err := engine.WeeklyVolume([]training.Workout{
		{
			Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			Exercises: []training.ExercisePerformance{
				{ExerciseName: "Bench Press", Sets: []training.SetResult{{Weight: -80, Reps: -5}}},
			},
		},
	})
	assert.ErrorIs(t, err, training.ErrInvalidInput)
	assert.Nil(t, volumes)
}

func repeatSet(n int, set training.SetResult) []training.SetResult {
	sets := make([]training.SetResult, n)
	for i := range sets {
		sets[i] = set
	}
	return sets
}
