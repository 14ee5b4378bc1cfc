package strength

import (
	"sort"
	"time"

	"github.com/2beens/overload/internal/overload/training"
)

// Record is one logged attempt at an exercise. Records are immutable once
// stored; IsPR reflects the history at the moment the record was appended.
type Record struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	ExerciseID         string    `json:"exerciseId"`
	ExerciseName       string    `json:"exerciseName"`
	Timestamp          time.Time `json:"timestamp"`
	Weight             float64   `json:"weight"`
	Reps               int       `json:"reps"`
	Effort             *float64  `json:"effort,omitempty"`
	EstimatedOneRepMax float64   `json:"estimatedOneRepMax"`
	IsPR               bool      `json:"isPr"`
}

// EstimateOneRepMax uses the Epley formula. A single rep is its own max.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

func (r Record) set() training.SetResult {
	return training.SetResult{
		Weight: r.Weight,
		Reps:   r.Reps,
		RPE:    r.Effort,
	}
}

func bestEstimate(records []Record) (float64, bool) {
	if len(records) == 0 {
		return 0, false
	}
	best := records[0].EstimatedOneRepMax
	for _, r := range records[1:] {
		if r.EstimatedOneRepMax > best {
			best = r.EstimatedOneRepMax
		}
	}
	return best, true
}

// Session is one calendar day of an exercise's records.
type Session struct {
	Day          time.Time `json:"day"`
	Sets         []Record  `json:"sets"`
	TopWeight    float64   `json:"topWeight"`
	TopReps      int       `json:"topReps"`
	BestEstimate float64   `json:"bestEstimate"`
	AvgRPE       float64   `json:"avgRpe"`
	HasRPE       bool      `json:"hasRpe"`
}

// groupSessions groups records by UTC day, oldest day first.
func groupSessions(records []Record) []Session {
	day2session := make(map[time.Time]*Session)
	for _, r := range records {
		day := training.Day(r.Timestamp)
		s, ok := day2session[day]
		if !ok {
			s = &Session{Day: day}
			day2session[day] = s
		}
		s.Sets = append(s.Sets, r)
	}

	sessions := make([]Session, 0, len(day2session))
	for _, s := range day2session {
		var rpeSum float64
		var rpeCount int
		for i, set := range s.Sets {
			// heaviest set is the top set, more reps break ties
			if i == 0 || set.Weight > s.TopWeight || (set.Weight == s.TopWeight && set.Reps > s.TopReps) {
				s.TopWeight = set.Weight
				s.TopReps = set.Reps
			}
			if set.EstimatedOneRepMax > s.BestEstimate {
				s.BestEstimate = set.EstimatedOneRepMax
			}
			if set.Effort != nil {
				rpeSum += *set.Effort
				rpeCount++
			}
		}
		if rpeCount > 0 {
			s.AvgRPE = rpeSum / float64(rpeCount)
			s.HasRPE = true
		}
		sessions = append(sessions, *s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Day.Before(sessions[j].Day)
	})
	return sessions
}

// sortNewestFirst orders by timestamp, then ID (ULIDs sort by creation time).
func sortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.After(records[j].Timestamp)
		}
		return records[i].ID > records[j].ID
	})
}

func sortOldestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].Timestamp.Before(records[j].Timestamp)
		}
		return records[i].ID < records[j].ID
	})
}
