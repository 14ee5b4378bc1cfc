package progression

import (
	"context"
	"math"

	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/strength"
	"github.com/2beens/overload/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=progression_test

type historyReader interface {
	Sessions(ctx context.Context, userID, exerciseID string) ([]strength.Session, error)
}

type exerciseCatalog interface {
	Category(exerciseName string) catalog.Category
	Increment(category catalog.Category) float64
	RepRange(category catalog.Category) catalog.RepRange
	Starter(category catalog.Category) catalog.Scheme
}

// Recommendation is the target for the next session of one exercise.
// Strategy is the computation that produced it, which is Deload whenever
// a plateau overrode the requested strategy.
type Recommendation struct {
	UserID       string           `json:"userId"`
	ExerciseID   string           `json:"exerciseId"`
	ExerciseName string           `json:"exerciseName"`
	Category     catalog.Category `json:"category"`
	Weight       float64          `json:"weight"`
	Reps         int              `json:"reps"`
	Requested    Strategy         `json:"requestedStrategy"`
	Strategy     Strategy         `json:"strategy"`
	Rationale    Rationale        `json:"rationale"`
	Sessions     int              `json:"sessions"`
}

type Advisor struct {
	history historyReader
	catalog exerciseCatalog
	cfg     Config
}

func NewAdvisor(history historyReader, catalog exerciseCatalog, cfg Config) *Advisor {
	return &Advisor{
		history: history,
		catalog: catalog,
		cfg:     cfg,
	}
}

func (a *Advisor) Recommend(ctx context.Context, userID, exerciseID string, strategy Strategy) (_ Recommendation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.advisor.recommend")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("exercise.id", exerciseID),
		attribute.String("strategy", string(strategy)),
	)

	strategy, err = ParseStrategy(string(strategy))
	if err != nil {
		return Recommendation{}, err
	}

	sessions, err := a.history.Sessions(ctx, userID, exerciseID)
	if err != nil {
		return Recommendation{}, err
	}

	name := exerciseID
	if len(sessions) > 0 {
		lastSets := sessions[len(sessions)-1].Sets
		if len(lastSets) > 0 {
			name = lastSets[len(lastSets)-1].ExerciseName
		}
	}
	category := a.catalog.Category(name)

	rec := a.advise(sessions, category, strategy)
	rec.UserID = userID
	rec.ExerciseID = exerciseID
	rec.ExerciseName = name
	rec.Category = category
	rec.Requested = strategy
	rec.Sessions = len(sessions)

	span.SetAttributes(attribute.String("rationale", string(rec.Rationale)))
	return rec, nil
}

func (a *Advisor) advise(sessions []strength.Session, category catalog.Category, strategy Strategy) Recommendation {
	if len(sessions) < 2 {
		starter := a.catalog.Starter(category)
		return Recommendation{
			Weight:    starter.Weight,
			Reps:      starter.Reps,
			Strategy:  strategy,
			Rationale: RationaleInitial,
		}
	}

	last := sessions[len(sessions)-1]

	if a.plateaued(sessions) {
		if strategy != Deload {
			log.Debugf("progression advisor: plateau over the last %d sessions, [%s] overridden by deload", a.cfg.PlateauSessions, strategy)
		}
		return a.deload(last)
	}

	switch strategy {
	case DoubleProgression:
		return a.doubleProgression(last, category)
	case WaveLoading:
		return a.waveLoading(sessions)
	case Deload:
		return a.deload(last)
	default:
		return a.linear(sessions, category)
	}
}

// plateaued reports whether the best e1RMs of the latest sessions barely move.
func (a *Advisor) plateaued(sessions []strength.Session) bool {
	n := a.cfg.PlateauSessions
	if n < minPlateauSessions {
		n = minPlateauSessions
	}
	if len(sessions) < n {
		return false
	}

	recent := sessions[len(sessions)-n:]
	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, s := range recent {
		lo = math.Min(lo, s.BestEstimate)
		hi = math.Max(hi, s.BestEstimate)
		sum += s.BestEstimate
	}
	mean := sum / float64(n)
	if mean <= 0 {
		return false
	}

	return (hi-lo)/mean < a.cfg.PlateauThreshold
}

func (a *Advisor) linear(sessions []strength.Session, category catalog.Category) Recommendation {
	last := sessions[len(sessions)-1]
	increment := a.catalog.Increment(category)
	rec := Recommendation{
		Weight:   last.TopWeight,
		Reps:     last.TopReps,
		Strategy: Linear,
	}

	if !last.HasRPE {
		previous := sessions[len(sessions)-2]
		if last.BestEstimate >= previous.BestEstimate {
			rec.Weight, rec.Reps = step(rec.Weight, rec.Reps, increment, 1)
			rec.Rationale = RationalePerformanceIncrease
		} else {
			rec.Rationale = RationalePlateauHold
		}
		return rec
	}

	switch {
	case last.AvgRPE < a.cfg.RPEEasy:
		rec.Weight, rec.Reps = step(rec.Weight, rec.Reps, increment, 1)
		rec.Rationale = RationaleRPEIncrease
	case last.AvgRPE > a.cfg.RPEHard:
		rec.Weight, rec.Reps = step(rec.Weight, rec.Reps, increment, -1)
		rec.Rationale = RationaleRPEDecrease
	default:
		rec.Rationale = RationaleRPEHold
	}
	return rec
}

func (a *Advisor) doubleProgression(last strength.Session, category catalog.Category) Recommendation {
	increment := a.catalog.Increment(category)
	repRange := a.catalog.RepRange(category)
	rec := Recommendation{
		Weight:   last.TopWeight,
		Reps:     last.TopReps,
		Strategy: DoubleProgression,
	}

	if last.HasRPE && last.AvgRPE > a.cfg.RPEHard {
		rec.Rationale = RationaleRPEHold
		return rec
	}

	if last.TopReps < repRange.High || increment == 0 {
		rec.Reps = last.TopReps + 1
		rec.Rationale = RationaleRepIncrease
		return rec
	}

	rec.Weight = last.TopWeight + increment
	rec.Reps = repRange.Low
	rec.Rationale = RationaleWeightIncrease
	return rec
}

func (a *Advisor) waveLoading(sessions []strength.Session) Recommendation {
	best := 0.0
	for _, s := range sessions {
		best = math.Max(best, s.BestEstimate)
	}

	phase := wavePhases[len(sessions)%len(wavePhases)]
	return Recommendation{
		Weight:    a.round(best * phase.share),
		Reps:      phase.reps,
		Strategy:  WaveLoading,
		Rationale: phase.rationale,
	}
}

func (a *Advisor) deload(last strength.Session) Recommendation {
	return Recommendation{
		Weight:    a.round(last.TopWeight * (1 - a.cfg.DeloadCut)),
		Reps:      last.TopReps,
		Strategy:  Deload,
		Rationale: RationaleDeload,
	}
}

func (a *Advisor) round(weight float64) float64 {
	if a.cfg.RoundingStep <= 0 {
		return weight
	}
	return math.Round(weight/a.cfg.RoundingStep) * a.cfg.RoundingStep
}

// step moves the load one increment in direction (+1 or -1). Without a weight
// increment the reps move by one instead. Never goes below zero weight or one rep.
func step(weight float64, reps int, increment float64, direction int) (float64, int) {
	if increment == 0 {
		return weight, max(1, reps+direction)
	}
	return math.Max(0, weight+float64(direction)*increment), reps
}
