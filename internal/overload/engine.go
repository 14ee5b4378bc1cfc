package overload

import (
	"context"
	"time"

	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/split"
	"github.com/2beens/overload/internal/overload/strength"
	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/overload/volume"
	"github.com/2beens/overload/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=overload_test

type strengthTracker interface {
	Record(ctx context.Context, params strength.SetParams) (strength.Record, error)
	History(ctx context.Context, userID, exerciseID string, limit int) ([]strength.Record, error)
	CurrentBest(ctx context.Context, userID, exerciseID string) (float64, bool, error)
	AllPRs(ctx context.Context, userID string, limit int) ([]strength.Record, error)
	Workouts(ctx context.Context, userID string, from, to time.Time) ([]training.Workout, error)
	Exercises(ctx context.Context, userID string) ([]strength.ExerciseRef, error)
}

type volumeTracker interface {
	WeeklyVolume(workouts []training.Workout) ([]volume.MuscleGroupVolume, error)
}

type progressionAdvisor interface {
	Recommend(ctx context.Context, userID, exerciseID string, strategy progression.Strategy) (progression.Recommendation, error)
}

type splitOptimizer interface {
	Optimize(userID string, volumes []volume.MuscleGroupVolume, availableDays int) ([]split.DayPlan, error)
}

const defaultVolumeWindowDays = 7

type Config struct {
	DefaultStrategy  progression.Strategy
	VolumeWindowDays int
}

// SetInput is one logged set as the request layer receives it.
type SetInput struct {
	UserID       string    `json:"userId"`
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	Effort       *float64  `json:"effort,omitempty"`
	PerformedAt  time.Time `json:"performedAt,omitempty"`
}

type Evaluation struct {
	Record strength.Record `json:"record"`
	IsPR   bool            `json:"isPr"`
	// PreviousBest is the best e1RM before this set, nil for a first record.
	PreviousBest *float64                   `json:"previousBest"`
	Volume       []volume.MuscleGroupVolume `json:"volume"`
}

type Advice struct {
	UserID          string                       `json:"userId"`
	Strategy        progression.Strategy         `json:"strategy"`
	Recommendations []progression.Recommendation `json:"recommendations"`
	Volume          []volume.MuscleGroupVolume   `json:"volume"`
	Split           []split.DayPlan              `json:"split"`
	Frequency       map[string]int               `json:"frequency"`
}

type SplitPlan struct {
	UserID    string          `json:"userId"`
	Days      []split.DayPlan `json:"days"`
	Frequency map[string]int  `json:"frequency"`
}

// Engine is the single entry point of the request layer into strength
// tracking, volume, progression and split planning. It keeps no state.
type Engine struct {
	strength    strengthTracker
	volume      volumeTracker
	progression progressionAdvisor
	split       splitOptimizer
	cfg         Config
	now         func() time.Time
}

func NewEngine(
	tracker strengthTracker,
	volumes volumeTracker,
	advisor progressionAdvisor,
	optimizer splitOptimizer,
	cfg Config,
) *Engine {
	if cfg.VolumeWindowDays <= 0 {
		cfg.VolumeWindowDays = defaultVolumeWindowDays
	}
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = progression.Linear
	}
	return &Engine{
		strength:    tracker,
		volume:      volumes,
		progression: advisor,
		split:       optimizer,
		cfg:         cfg,
		now:         time.Now,
	}
}

// LogAndEvaluate records the set and reports whether it is a PR, together with
// the user's muscle group volume over the window ending at the set.
func (e *Engine) LogAndEvaluate(ctx context.Context, input SetInput) (_ *Evaluation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "overload.engine.logAndEvaluate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	previousBest, hasPrevious, err := e.strength.CurrentBest(ctx, input.UserID, input.ExerciseID)
	if err != nil {
		return nil, err
	}

	rec, err := e.strength.Record(ctx, strength.SetParams{
		UserID:       input.UserID,
		ExerciseID:   input.ExerciseID,
		ExerciseName: input.ExerciseName,
		Weight:       input.Weight,
		Reps:         input.Reps,
		Effort:       input.Effort,
		PerformedAt:  input.PerformedAt,
	})
	if err != nil {
		return nil, err
	}

	to := rec.Timestamp.Add(time.Nanosecond)
	volumes, err := e.windowVolume(ctx, input.UserID, to)
	if err != nil {
		return nil, err
	}

	evaluation := &Evaluation{
		Record: rec,
		IsPR:   rec.IsPR,
		Volume: volumes,
	}
	if hasPrevious {
		evaluation.PreviousBest = &previousBest
	}

	span.SetAttributes(attribute.Bool("record.pr", rec.IsPR))
	return evaluation, nil
}

// Advise recommends the next session for every exercise the user has trained,
// and plans the next week over dayCount days. An empty strategy uses the
// configured default.
func (e *Engine) Advise(ctx context.Context, userID string, dayCount int, strategy progression.Strategy) (_ *Advice, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "overload.engine.advise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("days", dayCount),
	)

	strategy, err = e.strategyOrDefault(strategy)
	if err != nil {
		return nil, err
	}
	if dayCount < split.MinDays || dayCount > split.MaxDays {
		return nil, training.NewInvalidInput("available days must be within %d..%d, got %d", split.MinDays, split.MaxDays, dayCount)
	}

	exercises, err := e.strength.Exercises(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommendations := make([]progression.Recommendation, 0, len(exercises))
	for _, ex := range exercises {
		rec, err := e.progression.Recommend(ctx, userID, ex.ID, strategy)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, rec)
	}

	volumes, err := e.windowVolume(ctx, userID, e.now())
	if err != nil {
		return nil, err
	}

	plans, err := e.split.Optimize(userID, volumes, dayCount)
	if err != nil {
		return nil, err
	}

	log.Tracef("engine: advice for [%s]: %d recommendations, %d muscle groups", userID, len(recommendations), len(volumes))
	return &Advice{
		UserID:          userID,
		Strategy:        strategy,
		Recommendations: recommendations,
		Volume:          volumes,
		Split:           plans,
		Frequency:       split.RecommendedFrequency(volumes),
	}, nil
}

func (e *Engine) History(ctx context.Context, userID, exerciseID string, limit int) ([]strength.Record, error) {
	return e.strength.History(ctx, userID, exerciseID, limit)
}

// CurrentBest returns nil when the user never recorded the exercise.
func (e *Engine) CurrentBest(ctx context.Context, userID, exerciseID string) (*float64, error) {
	best, ok, err := e.strength.CurrentBest(ctx, userID, exerciseID)
	if err != nil || !ok {
		return nil, err
	}
	return &best, nil
}

func (e *Engine) AllPRs(ctx context.Context, userID string, limit int) ([]strength.Record, error) {
	return e.strength.AllPRs(ctx, userID, limit)
}

// WeeklyVolume rolls up workouts supplied by the caller.
func (e *Engine) WeeklyVolume(workouts []training.Workout) ([]volume.MuscleGroupVolume, error) {
	return e.volume.WeeklyVolume(workouts)
}

// UserVolume rolls up what the user recorded over the last volume window.
func (e *Engine) UserVolume(ctx context.Context, userID string) ([]volume.MuscleGroupVolume, error) {
	return e.windowVolume(ctx, userID, e.now())
}

func (e *Engine) Recommend(ctx context.Context, userID, exerciseID string, strategy progression.Strategy) (progression.Recommendation, error) {
	strategy, err := e.strategyOrDefault(strategy)
	if err != nil {
		return progression.Recommendation{}, err
	}
	return e.progression.Recommend(ctx, userID, exerciseID, strategy)
}

// Split plans dayCount days from the user's volume over the last window.
func (e *Engine) Split(ctx context.Context, userID string, dayCount int) (_ *SplitPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "overload.engine.split")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if dayCount < split.MinDays || dayCount > split.MaxDays {
		return nil, training.NewInvalidInput("available days must be within %d..%d, got %d", split.MinDays, split.MaxDays, dayCount)
	}

	volumes, err := e.windowVolume(ctx, userID, e.now())
	if err != nil {
		return nil, err
	}
	plans, err := e.split.Optimize(userID, volumes, dayCount)
	if err != nil {
		return nil, err
	}

	return &SplitPlan{
		UserID:    userID,
		Days:      plans,
		Frequency: split.RecommendedFrequency(volumes),
	}, nil
}

func (e *Engine) windowVolume(ctx context.Context, userID string, to time.Time) ([]volume.MuscleGroupVolume, error) {
	from := to.AddDate(0, 0, -e.cfg.VolumeWindowDays)
	workouts, err := e.strength.Workouts(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return e.volume.WeeklyVolume(workouts)
}

func (e *Engine) strategyOrDefault(strategy progression.Strategy) (progression.Strategy, error) {
	if strategy == "" {
		return e.cfg.DefaultStrategy, nil
	}
	return progression.ParseStrategy(string(strategy))
}
