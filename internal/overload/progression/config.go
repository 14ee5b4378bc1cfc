package progression

import (
	"github.com/2beens/overload/internal/overload/training"
)

const minPlateauSessions = 4

type Config struct {
	// PlateauSessions is how many of the latest sessions the plateau check looks at.
	PlateauSessions int
	// PlateauThreshold is the (max-min)/mean spread of session e1RMs under which
	// the exercise counts as stalled.
	PlateauThreshold float64
	// DeloadCut is the share of the top weight removed by a deload.
	DeloadCut    float64
	RPEEasy      float64
	RPEHard      float64
	RoundingStep float64
}

func DefaultConfig() Config {
	return Config{
		PlateauSessions:  4,
		PlateauThreshold: 0.02,
		DeloadCut:        0.10,
		RPEEasy:          7.0,
		RPEHard:          9.0,
		RoundingStep:     1.25,
	}
}

func (c Config) Validate() error {
	v := &training.Validator{}
	v.Check(c.PlateauSessions >= minPlateauSessions, "plateau sessions must be at least %d, got %d", minPlateauSessions, c.PlateauSessions)
	v.Check(c.PlateauThreshold > 0 && c.PlateauThreshold < 1, "plateau threshold must be within (0, 1), got %v", c.PlateauThreshold)
	v.Check(c.DeloadCut > 0 && c.DeloadCut < 1, "deload cut must be within (0, 1), got %v", c.DeloadCut)
	v.Check(c.RPEEasy < c.RPEHard, "rpe easy (%v) must be below rpe hard (%v)", c.RPEEasy, c.RPEHard)
	v.Check(c.RoundingStep >= 0, "rounding step must not be negative, got %v", c.RoundingStep)
	return v.Err()
}
