package idle

import (
	"math"
	"time"
)

const (
	MinSpeedMultiplier = 0.01
	MinCycleDuration   = 50 * time.Millisecond

	LevelCurveLinear    = 50
	LevelCurveQuadratic = 25

	DefaultCurrencyID   = "gold"
	DefaultExperienceID = "xp"

	FishingStatNamespace = "fishing"
)

func clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func clampZero(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// saturatingAdd keeps ledger values finite; overflow pins at MaxFloat64.
func saturatingAdd(a, b float64) float64 {
	sum := a + b
	if math.IsInf(sum, 1) {
		return math.MaxFloat64
	}
	if math.IsInf(sum, -1) || math.IsNaN(sum) {
		return 0
	}
	return sum
}
