package split

import (
	"fmt"
	"sort"

	"github.com/2beens/overload/internal/overload/catalog"
	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/overload/volume"

	log "github.com/sirupsen/logrus"
)

const (
	MinDays = 1
	MaxDays = 7

	highPriorityExercises   = 2
	normalPriorityExercises = 1
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
)

type Target struct {
	MuscleGroup string   `json:"muscleGroup"`
	Priority    Priority `json:"priority"`
	Reason      string   `json:"reason"`
	Exercises   []string `json:"exercises"`
}

// DayPlan lists what one training day targets. Days are numbered from 1.
type DayPlan struct {
	Day     int      `json:"day"`
	Targets []Target `json:"targets"`
}

type exerciseSuggester interface {
	SuggestedExercises(muscleGroup string, n int) []string
}

type Optimizer struct {
	catalog exerciseSuggester
}

func NewOptimizer(catalog exerciseSuggester) *Optimizer {
	return &Optimizer{
		catalog: catalog,
	}
}

// Optimize spreads the muscle groups over the available days. Every day gets
// the next undertrained group (high priority) and the next recovered group
// (normal priority), round robin. Overtrained groups get no extra work, and
// the unknown bucket cannot be targeted.
func (o *Optimizer) Optimize(userID string, volumes []volume.MuscleGroupVolume, availableDays int) ([]DayPlan, error) {
	if availableDays < MinDays || availableDays > MaxDays {
		return nil, training.NewInvalidInput("available days must be within %d..%d, got %d", MinDays, MaxDays, availableDays)
	}

	var needsMore, recovered []volume.MuscleGroupVolume
	for _, v := range volumes {
		if v.MuscleGroup == catalog.UnknownMuscleGroup {
			continue
		}
		switch v.Status {
		case volume.Undertrained:
			needsMore = append(needsMore, v)
		case volume.Recovered:
			recovered = append(recovered, v)
		}
	}

	sort.Slice(needsMore, func(i, j int) bool {
		di, dj := deficit(needsMore[i]), deficit(needsMore[j])
		if di != dj {
			return di > dj
		}
		return needsMore[i].MuscleGroup < needsMore[j].MuscleGroup
	})
	sort.Slice(recovered, func(i, j int) bool {
		return recovered[i].MuscleGroup < recovered[j].MuscleGroup
	})

	log.Tracef("split optimizer: user [%s], %d days, %d groups need more, %d recovered", userID, availableDays, len(needsMore), len(recovered))

	plans := make([]DayPlan, 0, availableDays)
	for i := 0; i < availableDays; i++ {
		plan := DayPlan{
			Day:     i + 1,
			Targets: make([]Target, 0, 2),
		}
		if len(needsMore) > 0 {
			v := needsMore[i%len(needsMore)]
			plan.Targets = append(plan.Targets, Target{
				MuscleGroup: v.MuscleGroup,
				Priority:    PriorityHigh,
				Reason: fmt.Sprintf(
					"undertrained: %d weekly sets, target %d-%d",
					v.TotalSets, v.Target.Low, v.Target.High,
				),
				Exercises: o.catalog.SuggestedExercises(v.MuscleGroup, highPriorityExercises),
			})
		}
		if len(recovered) > 0 {
			v := recovered[i%len(recovered)]
			plan.Targets = append(plan.Targets, Target{
				MuscleGroup: v.MuscleGroup,
				Priority:    PriorityNormal,
				Reason:      fmt.Sprintf("recovered: maintain around %d weekly sets", v.TargetMidpoint),
				Exercises:   o.catalog.SuggestedExercises(v.MuscleGroup, normalPriorityExercises),
			})
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func deficit(v volume.MuscleGroupVolume) int {
	return v.Target.Low - v.TotalSets
}

var statusFrequency = map[volume.RecoveryStatus]int{
	volume.Undertrained: 3,
	volume.Recovered:    2,
	volume.Overtrained:  1,
}

// RecommendedFrequency maps each muscle group to sessions per week by status.
func RecommendedFrequency(volumes []volume.MuscleGroupVolume) map[string]int {
	frequency := make(map[string]int, len(volumes))
	for _, v := range volumes {
		frequency[v.MuscleGroup] = statusFrequency[v.Status]
	}
	return frequency
}
