package volume

import (
	"sort"
	"time"

	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/training"

	log "github.com/sirupsen/logrus"
)

type RecoveryStatus string

const (
	Undertrained RecoveryStatus = "undertrained"
	Recovered    RecoveryStatus = "recovered"
	Overtrained  RecoveryStatus = "overtrained"
)

const (
	overtrainedFactor  = 1.2
	undertrainedFactor = 0.8
)

// MuscleGroupVolume is one muscle group's rollup over a window of workouts.
type MuscleGroupVolume struct {
	MuscleGroup    string              `json:"muscleGroup"`
	TotalSets      int                 `json:"totalSets"`
	TotalReps      int                 `json:"totalReps"`
	TotalVolume    float64             `json:"totalVolume"`
	Frequency      int                 `json:"frequency"`
	Target         catalog.TargetRange `json:"target"`
	TargetMidpoint int                 `json:"targetMidpoint"`
	Status         RecoveryStatus      `json:"status"`
}

// Classify compares the weekly sets against the target range. Both bounds
// are exclusive: exactly high*1.2 sets is still recovered.
func Classify(sets int, target catalog.TargetRange) RecoveryStatus {
	switch {
	case float64(sets) > float64(target.High)*overtrainedFactor:
		return Overtrained
	case float64(sets) < float64(target.Low)*undertrainedFactor:
		return Undertrained
	default:
		return Recovered
	}
}

type muscleCatalog interface {
	MuscleGroups(exerciseName string) []string
	Target(muscleGroup string) catalog.TargetRange
}

type Tracker struct {
	catalog muscleCatalog
}

func NewTracker(catalog muscleCatalog) *Tracker {
	return &Tracker{
		catalog: catalog,
	}
}

type accumulator struct {
	sets, reps int
	volume     float64
	days       map[time.Time]struct{}
}

// WeeklyVolume rolls the workouts up per muscle group, sorted by group name.
// Every set counts toward each muscle group its exercise trains; exercises no
// rule recognizes land in the unknown bucket. Malformed sets fail the whole
// call with training.ErrInvalidInput.
func (t *Tracker) WeeklyVolume(workouts []training.Workout) ([]MuscleGroupVolume, error) {
	if err := training.ValidateWorkouts(workouts); err != nil {
		return nil, err
	}

	group2acc := make(map[string]*accumulator)

	for _, w := range workouts {
		day := training.Day(w.Date)
		for _, ex := range w.Exercises {
			groups := t.catalog.MuscleGroups(ex.ExerciseName)
			if len(groups) == 1 && groups[0] == catalog.UnknownMuscleGroup {
				log.Tracef("volume tracker: [%s] counted as %s", ex.ExerciseName, catalog.UnknownMuscleGroup)
			}

			reps := ex.TotalReps()
			vol := ex.TotalVolume()
			for _, group := range dedupe(groups) {
				acc, ok := group2acc[group]
				if !ok {
					acc = &accumulator{days: make(map[time.Time]struct{})}
					group2acc[group] = acc
				}
				acc.sets += len(ex.Sets)
				acc.reps += reps
				acc.volume += vol
				if len(ex.Sets) > 0 {
					acc.days[day] = struct{}{}
				}
			}
		}
	}

	volumes := make([]MuscleGroupVolume, 0, len(group2acc))
	for group, acc := range group2acc {
		target := t.catalog.Target(group)
		volumes = append(volumes, MuscleGroupVolume{
			MuscleGroup:    group,
			TotalSets:      acc.sets,
			TotalReps:      acc.reps,
			TotalVolume:    acc.volume,
			Frequency:      len(acc.days),
			Target:         target,
			TargetMidpoint: target.Midpoint(),
			Status:         Classify(acc.sets, target),
		})
	}

	sort.Slice(volumes, func(i, j int) bool {
		return volumes[i].MuscleGroup < volumes[j].MuscleGroup
	})

	return volumes, nil
}

func FilterUndertrained(volumes []MuscleGroupVolume) []MuscleGroupVolume {
	return WithStatus(volumes, Undertrained)
}

func FilterOvertrained(volumes []MuscleGroupVolume) []MuscleGroupVolume {
	return WithStatus(volumes, Overtrained)
}

func WithStatus(volumes []MuscleGroupVolume, status RecoveryStatus) []MuscleGroupVolume {
	filtered := make([]MuscleGroupVolume, 0)
	for _, v := range volumes {
		if v.Status == status {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func dedupe(groups []string) []string {
	if len(groups) < 2 {
		return groups
	}
	seen := make(map[string]struct{}, len(groups))
	unique := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		unique = append(unique, g)
	}
	return unique
}
