package progression

import (
	"strings"

	"github.com/2beens/overload/internal/overload/training"
)

type Strategy string

const (
	Linear            Strategy = "linear"
	DoubleProgression Strategy = "double-progression"
	WaveLoading       Strategy = "wave-loading"
	Deload            Strategy = "deload"
)

var strategies = []Strategy{Linear, DoubleProgression, WaveLoading, Deload}

func Strategies() []Strategy {
	return append([]Strategy(nil), strategies...)
}

// ParseStrategy accepts the strategy names case-insensitively, with either
// dashes or underscores.
func ParseStrategy(name string) (Strategy, error) {
	normalized := Strategy(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-"))
	for _, s := range strategies {
		if s == normalized {
			return s, nil
		}
	}
	return "", training.NewInvalidInput("unknown progression strategy [%s]", name)
}

type Rationale string

const (
	RationaleInitial             Rationale = "initial"
	RationaleRPEIncrease         Rationale = "rpe-driven increase"
	RationaleRPEHold             Rationale = "rpe-hold"
	RationaleRPEDecrease         Rationale = "rpe-driven decrease"
	RationalePerformanceIncrease Rationale = "performance-driven increase"
	RationalePlateauHold         Rationale = "plateau-hold"
	RationaleRepIncrease         Rationale = "rep increase"
	RationaleWeightIncrease      Rationale = "weight increase"
	RationaleWaveLight           Rationale = "wave-light"
	RationaleWaveMedium          Rationale = "wave-medium"
	RationaleWaveHeavy           Rationale = "wave-heavy"
	RationaleDeload              Rationale = "deload"
)

type wavePhase struct {
	share     float64
	reps      int
	rationale Rationale
}

// indexed by session count mod 3
var wavePhases = [3]wavePhase{
	{share: 0.70, reps: 8, rationale: RationaleWaveLight},
	{share: 0.775, reps: 5, rationale: RationaleWaveMedium},
	{share: 0.85, reps: 3, rationale: RationaleWaveHeavy},
}
