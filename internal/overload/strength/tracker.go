package strength

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/telemetry/tracing"

	"github.com/oklog/ulid/v2"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SetParams struct {
	UserID       string
	ExerciseID   string
	ExerciseName string
	Weight       float64
	Reps         int
	Effort       *float64
	// PerformedAt defaults to the tracker's clock when zero.
	PerformedAt time.Time
}

func (p SetParams) validate() error {
	v := &training.Validator{}
	v.Check(strings.TrimSpace(p.UserID) != "", "user id is required")
	v.Check(strings.TrimSpace(p.ExerciseID) != "", "exercise id is required")
	v.Check(p.Reps >= 1, "reps must be at least 1, got %d", p.Reps)
	v.Check(!math.IsNaN(p.Weight) && !math.IsInf(p.Weight, 0), "weight must be a finite number")
	v.Check(p.Weight >= 0, "weight must not be negative, got %v", p.Weight)
	if p.Effort != nil {
		v.Check(*p.Effort >= 1 && *p.Effort <= 10, "effort must be within 1..10, got %v", *p.Effort)
	}
	return v.Err()
}

// ExerciseRef names an exercise a user has records for.
type ExerciseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tracker records sets, detects personal records and answers history queries.
// It is safe for concurrent use; atomicity per (user, exercise) is delegated
// to the Store.
type Tracker struct {
	store Store
	now   func() time.Time
}

type TrackerOption func(*Tracker)

func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(store Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record stores a new set. The set is a personal record when its estimated
// one-rep max is strictly greater than every earlier record for the same
// user and exercise; the first record ever is always one.
func (t *Tracker) Record(ctx context.Context, params SetParams) (_ Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.record")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", params.UserID),
		attribute.String("exercise.id", params.ExerciseID),
	)

	if err := params.validate(); err != nil {
		return Record{}, err
	}

	performedAt := params.PerformedAt
	if performedAt.IsZero() {
		performedAt = t.now()
	}
	name := params.ExerciseName
	if strings.TrimSpace(name) == "" {
		name = params.ExerciseID
	}

	key := Key{UserID: params.UserID, ExerciseID: params.ExerciseID}
	rec, err := t.store.Append(ctx, key, func(history []Record) (Record, error) {
		estimate := EstimateOneRepMax(params.Weight, params.Reps)
		best, hasBest := bestEstimate(history)
		return Record{
			ID:                 ulid.Make().String(),
			UserID:             params.UserID,
			ExerciseID:         params.ExerciseID,
			ExerciseName:       name,
			Timestamp:          performedAt.UTC(),
			Weight:             params.Weight,
			Reps:               params.Reps,
			Effort:             params.Effort,
			EstimatedOneRepMax: estimate,
			IsPR:               !hasBest || estimate > best,
		}, nil
	})
	if err != nil {
		return Record{}, err
	}

	span.SetAttributes(attribute.Bool("record.pr", rec.IsPR))
	if rec.IsPR {
		log.Debugf("strength tracker: new PR for user [%s], exercise [%s]: %.2f", rec.UserID, rec.ExerciseID, rec.EstimatedOneRepMax)
	}

	return rec, nil
}

// History returns the user's records for one exercise, most recent first.
// A limit <= 0 returns everything.
func (t *Tracker) History(ctx context.Context, userID, exerciseID string, limit int) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := t.store.History(ctx, Key{UserID: userID, ExerciseID: exerciseID})
	if err != nil {
		return nil, err
	}

	// stored oldest first, in recording order
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return applyLimit(records, limit), nil
}

// CurrentBest returns the highest estimated one-rep max on record, and false
// when the user never recorded the exercise.
func (t *Tracker) CurrentBest(ctx context.Context, userID, exerciseID string) (_ float64, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.currentBest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := t.store.History(ctx, Key{UserID: userID, ExerciseID: exerciseID})
	if err != nil {
		return 0, false, err
	}

	best, ok := bestEstimate(records)
	return best, ok, nil
}

// AllPRs returns every record flagged as a PR across all the user's exercises,
// most recent first. A limit <= 0 returns everything.
func (t *Tracker) AllPRs(ctx context.Context, userID string, limit int) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.allPRs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := t.store.UserRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	prs := make([]Record, 0)
	for _, r := range records {
		if r.IsPR {
			prs = append(prs, r)
		}
	}
	sortNewestFirst(prs)

	return applyLimit(prs, limit), nil
}

// Sessions groups the user's records of one exercise into per-day sessions,
// oldest first.
func (t *Tracker) Sessions(ctx context.Context, userID, exerciseID string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.sessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := t.store.History(ctx, Key{UserID: userID, ExerciseID: exerciseID})
	if err != nil {
		return nil, err
	}

	return groupSessions(records), nil
}

// Workouts rebuilds the user's workouts in [from, to): one workout per UTC day,
// exercises in the order they were first performed that day.
func (t *Tracker) Workouts(ctx context.Context, userID string, from, to time.Time) (_ []training.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := t.store.UserRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	inRange := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Timestamp.Before(from) || !r.Timestamp.Before(to) {
			continue
		}
		inRange = append(inRange, r)
	}
	sortOldestFirst(inRange)

	workouts := make([]training.Workout, 0)
	var exerciseIdx map[string]int
	for _, r := range inRange {
		day := training.Day(r.Timestamp)
		if len(workouts) == 0 || !workouts[len(workouts)-1].Date.Equal(day) {
			workouts = append(workouts, training.Workout{Date: day})
			exerciseIdx = make(map[string]int)
		}
		w := &workouts[len(workouts)-1]

		idx, ok := exerciseIdx[r.ExerciseID]
		if !ok {
			idx = len(w.Exercises)
			exerciseIdx[r.ExerciseID] = idx
			w.Exercises = append(w.Exercises, training.ExercisePerformance{ExerciseName: r.ExerciseName})
		}
		w.Exercises[idx].Sets = append(w.Exercises[idx].Sets, r.set())
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

// Exercises lists the exercises the user has records for, sorted by ID.
// The name is the one used by the latest record.
func (t *Tracker) Exercises(ctx context.Context, userID string) (_ []ExerciseRef, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "strength.tracker.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := t.store.UserRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortOldestFirst(records)

	id2name := make(map[string]string)
	for _, r := range records {
		id2name[r.ExerciseID] = r.ExerciseName
	}

	refs := make([]ExerciseRef, 0, len(id2name))
	for id, name := range id2name {
		refs = append(refs, ExerciseRef{ID: id, Name: name})
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].ID < refs[j].ID
	})

	return refs, nil
}

func applyLimit(records []Record, limit int) []Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
