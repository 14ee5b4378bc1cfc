// Package fitimport reads strength workouts out of Garmin FIT activity files.
package fitimport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/2beens/overload/internal/overload/training"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	log "github.com/sirupsen/logrus"
)

const unknownExercise = "unknown"

var ErrNoSets = errors.New("no active sets in fit file")

// Decode returns one workout per UTC day found in the file. Only active sets
// are kept; rest sets and sets with no repetitions are skipped. Exercises keep
// the order in which they were first performed on a day.
func Decode(r io.Reader) ([]training.Workout, error) {
	fitData, err := decoder.New(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("decode fit file: %w", err)
	}

	var (
		workouts []training.Workout
		byDay    = map[time.Time]int{}
		last     time.Time
		skipped  int
	)

	for i := range fitData.Messages {
		msg := &fitData.Messages[i]
		if msg.Num != typedef.MesgNumSet {
			continue
		}

		set := mesgdef.NewSet(msg)
		if set.SetType != typedef.SetTypeActive {
			continue
		}
		if set.Repetitions == 0 || set.Repetitions == math.MaxUint16 {
			skipped++
			continue
		}

		performedAt := setTime(set)
		if performedAt.IsZero() {
			performedAt = last
		}
		if performedAt.IsZero() {
			return nil, fmt.Errorf("set %d has no timestamp", set.MessageIndex)
		}
		last = performedAt

		weight := set.WeightScaled()
		if math.IsNaN(weight) {
			weight = 0
		}

		day := training.Day(performedAt)
		idx, ok := byDay[day]
		if !ok {
			idx = len(workouts)
			byDay[day] = idx
			workouts = append(workouts, training.Workout{Date: day})
		}
		workouts[idx].Exercises = appendSet(workouts[idx].Exercises, exerciseName(set.Category), training.SetResult{
			Weight: weight,
			Reps:   int(set.Repetitions),
		})
	}

	if skipped > 0 {
		log.Debugf("fit import: skipped %d active sets without repetitions", skipped)
	}
	if len(workouts) == 0 {
		return nil, ErrNoSets
	}
	return workouts, nil
}

func setTime(set *mesgdef.Set) time.Time {
	if !set.StartTime.IsZero() {
		return set.StartTime
	}
	return set.Timestamp
}

func appendSet(exercises []training.ExercisePerformance, name string, result training.SetResult) []training.ExercisePerformance {
	for i := range exercises {
		if exercises[i].ExerciseName == name {
			exercises[i].Sets = append(exercises[i].Sets, result)
			return exercises
		}
	}
	return append(exercises, training.ExercisePerformance{
		ExerciseName: name,
		Sets:         []training.SetResult{result},
	})
}

// exerciseName turns the first valid FIT category (e.g. bench_press) into a
// catalog friendly name (bench press).
func exerciseName(categories []typedef.ExerciseCategory) string {
	for _, c := range categories {
		if c == typedef.ExerciseCategoryInvalid || c == typedef.ExerciseCategoryUnknown {
			continue
		}
		return strings.ReplaceAll(c.String(), "_", " ")
	}
	return unknownExercise
}
