package interaction

import "math"

// #region thresholds

const (
	// steadyBand is the relative change treated as no change.
	steadyBand = 0.02
	// muchBand is the relative change beyond which improvement or regression
	// counts as "much".
	muchBand = 0.20
)

// #endregion thresholds

// #region classify

// Classify discretises a repetition score. A score at or above target is Met.
// Otherwise the score is compared with the previous one: changes inside 2%
// are Steady, beyond 20% are MuchImproved/MuchRegressed. swapped marks a
// score recorded after the user switched side or limb; plain improvements
// and regressions are reported as their _SWAP variants.
func Classify(score, target, previous float64, swapped bool) Performance {
	if score >= target {
		return Met
	}
	if previous == 0 {
		if score > 0 {
			return Improved
		}
		return Steady
	}

	change := (score - previous) / math.Abs(previous)
	switch {
	case math.Abs(change) <= steadyBand:
		return Steady
	case change > muchBand:
		return MuchImproved
	case change > 0:
		if swapped {
			return ImprovedSwap
		}
		return Improved
	case change < -muchBand:
		return MuchRegressed
	default:
		if swapped {
			return RegressedSwap
		}
		return Regressed
	}
}

// #endregion classify
