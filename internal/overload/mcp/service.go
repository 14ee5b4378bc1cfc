package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/2beens/overload/internal/overload"
	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/strength"
	"github.com/2beens/overload/internal/overload/volume"
)

// engine is the part of the periodization engine the tools read from.
type engine interface {
	AllPRs(ctx context.Context, userID string, limit int) ([]strength.Record, error)
	History(ctx context.Context, userID, exerciseID string, limit int) ([]strength.Record, error)
	UserVolume(ctx context.Context, userID string) ([]volume.MuscleGroupVolume, error)
	Recommend(ctx context.Context, userID, exerciseID string, strategy progression.Strategy) (progression.Recommendation, error)
	Split(ctx context.Context, userID string, dayCount int) (*overload.SplitPlan, error)
}

type trainingCatalog interface {
	KnownMuscleGroups() []string
	Target(muscleGroup string) catalog.TargetRange
	Increment(category catalog.Category) float64
	RepRange(category catalog.Category) catalog.RepRange
	Starter(category catalog.Category) catalog.Scheme
}

// contextService provides the numeric training facts handed to the plan generator.
// Used by Handler for testability.
type contextService interface {
	TrainingContext(ctx context.Context) string
	PersonalRecords(ctx context.Context, userID string, limit int) ([]RecordFact, error)
	ExerciseHistory(ctx context.Context, userID, exerciseID string, limit int) ([]RecordFact, error)
	WeeklyVolume(ctx context.Context, userID string) ([]volume.MuscleGroupVolume, error)
	NextRecommendation(ctx context.Context, userID, exerciseID string, strategy progression.Strategy) (progression.Recommendation, error)
	WeeklySplit(ctx context.Context, userID string, days int) (*overload.SplitPlan, error)
}

// RecordFact is a strength record trimmed down to what a prompt needs.
type RecordFact struct {
	ExerciseID         string   `json:"exercise_id"`
	ExerciseName       string   `json:"exercise_name"`
	Date               string   `json:"date"`
	Weight             float64  `json:"weight_kg"`
	Reps               int      `json:"reps"`
	RPE                *float64 `json:"rpe,omitempty"`
	EstimatedOneRepMax float64  `json:"estimated_1rm_kg"`
	IsPR               bool     `json:"is_pr"`
}

var categories = []catalog.Category{
	catalog.CompoundLower,
	catalog.CompoundUpper,
	catalog.Isolation,
	catalog.Bodyweight,
}

// ContextService holds dependencies and implements the training context logic.
type ContextService struct {
	engine  engine
	catalog trainingCatalog
}

func NewContextService(engine engine, catalog trainingCatalog) *ContextService {
	return &ContextService{
		engine:  engine,
		catalog: catalog,
	}
}

// TrainingContext describes the tables the engine judges against: weekly set
// targets per muscle group and the load steps per exercise category.
func (s *ContextService) TrainingContext(_ context.Context) string {
	var b strings.Builder
	b.WriteString("# Training Context\n\n")
	b.WriteString("Volume is classified per muscle group from weekly working sets: undertrained below 80% of the low target, ")
	b.WriteString("overtrained above 120% of the high target, recovered otherwise.\n\n")

	b.WriteString("## Weekly set targets\n\n| Muscle group | Low | High | Midpoint |\n|--------------|-----|------|----------|\n")
	for _, group := range s.catalog.KnownMuscleGroups() {
		target := s.catalog.Target(group)
		b.WriteString(fmt.Sprintf("| %s | %d | %d | %d |\n", group, target.Low, target.High, target.Midpoint()))
	}

	b.WriteString("\n## Exercise categories\n\n| Category | Increment (kg) | Rep range | Starter |\n|----------|----------------|-----------|---------|\n")
	for _, cat := range categories {
		repRange := s.catalog.RepRange(cat)
		starter := s.catalog.Starter(cat)
		b.WriteString(fmt.Sprintf("| %s | %g | %d-%d | %g kg x %d |\n",
			cat, s.catalog.Increment(cat), repRange.Low, repRange.High, starter.Weight, starter.Reps))
	}

	strategies := make([]string, 0, len(progression.Strategies()))
	for _, st := range progression.Strategies() {
		strategies = append(strategies, string(st))
	}
	b.WriteString("\nProgression strategies: " + strings.Join(strategies, ", ") + ".\n")

	return b.String()
}

// PersonalRecords returns the user's PRs across exercises, most recent first.
func (s *ContextService) PersonalRecords(ctx context.Context, userID string, limit int) ([]RecordFact, error) {
	records, err := s.engine.AllPRs(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toFacts(records), nil
}

// ExerciseHistory returns one exercise's records, most recent first.
func (s *ContextService) ExerciseHistory(ctx context.Context, userID, exerciseID string, limit int) ([]RecordFact, error) {
	records, err := s.engine.History(ctx, userID, exerciseID, limit)
	if err != nil {
		return nil, err
	}
	return toFacts(records), nil
}

func (s *ContextService) WeeklyVolume(ctx context.Context, userID string) ([]volume.MuscleGroupVolume, error) {
	return s.engine.UserVolume(ctx, userID)
}

func (s *ContextService) NextRecommendation(ctx context.Context, userID, exerciseID string, strategy progression.Strategy) (progression.Recommendation, error) {
	return s.engine.Recommend(ctx, userID, exerciseID, strategy)
}

func (s *ContextService) WeeklySplit(ctx context.Context, userID string, days int) (*overload.SplitPlan, error) {
	return s.engine.Split(ctx, userID, days)
}

func toFacts(records []strength.Record) []RecordFact {
	facts := make([]RecordFact, 0, len(records))
	for _, r := range records {
		facts = append(facts, RecordFact{
			ExerciseID:         r.ExerciseID,
			ExerciseName:       r.ExerciseName,
			Date:               r.Timestamp.UTC().Format("2006-01-02"),
			Weight:             r.Weight,
			Reps:               r.Reps,
			RPE:                r.Effort,
			EstimatedOneRepMax: math.Round(r.EstimatedOneRepMax*100) / 100,
			IsPR:               r.IsPR,
		})
	}
	return facts
}
