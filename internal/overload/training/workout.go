package training

import (
	"fmt"
	"math"
	"time"
)

// SetResult is a single performed set.
type SetResult struct {
	Weight float64  `json:"weight" yaml:"weight"`
	Reps   int      `json:"reps" yaml:"reps"`
	RPE    *float64 `json:"rpe,omitempty" yaml:"rpe,omitempty"`
}

// Volume of the set, weight x reps.
func (s SetResult) Volume() float64 {
	return s.Weight * float64(s.Reps)
}

// ExercisePerformance holds one exercise's sets within a single workout.
// Totals are always derived from Sets.
type ExercisePerformance struct {
	ExerciseName string      `json:"exerciseName" yaml:"exercise"`
	Sets         []SetResult `json:"sets" yaml:"sets"`
}

func (ep ExercisePerformance) TotalReps() int {
	total := 0
	for _, s := range ep.Sets {
		total += s.Reps
	}
	return total
}

func (ep ExercisePerformance) TotalVolume() float64 {
	var total float64
	for _, s := range ep.Sets {
		total += s.Volume()
	}
	return total
}

// AvgRPE returns the average RPE over the sets that carry one.
// The second return value is false when no set has an RPE.
func (ep ExercisePerformance) AvgRPE() (float64, bool) {
	var sum float64
	var n int
	for _, s := range ep.Sets {
		if s.RPE == nil {
			continue
		}
		sum += *s.RPE
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Workout is one completed training session. It is built by the caller
// for each request and never persisted by the engine.
type Workout struct {
	Date      time.Time             `json:"date" yaml:"date"`
	Exercises []ExercisePerformance `json:"exercises" yaml:"exercises"`
}

// TotalSets returns the number of sets logged across all exercises.
func (w Workout) TotalSets() int {
	total := 0
	for _, ex := range w.Exercises {
		total += len(ex.Sets)
	}
	return total
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// ValidateWorkouts checks every set of caller supplied workouts and reports
// all malformed ones at once.
func ValidateWorkouts(workouts []Workout) error {
	v := &Validator{}
	for wi, w := range workouts {
		for _, ex := range w.Exercises {
			for si, s := range ex.Sets {
				where := fmt.Sprintf("workout %d, %s set %d", wi+1, ex.ExerciseName, si+1)
				v.Check(s.Reps >= 1, "%s: reps must be at least 1, got %d", where, s.Reps)
				v.Check(!math.IsNaN(s.Weight) && !math.IsInf(s.Weight, 0), "%s: weight must be a finite number", where)
				v.Check(s.Weight >= 0, "%s: weight must not be negative, got %v", where, s.Weight)
				if s.RPE != nil {
					v.Check(*s.RPE >= 1 && *s.RPE <= 10, "%s: rpe must be within 1..10, got %v", where, *s.RPE)
				}
			}
		}
	}
	return v.Err()
}
