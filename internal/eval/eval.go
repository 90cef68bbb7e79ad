package eval

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// #region eval-harness
// Harness validates a compiled policy before it is committed to the store.
type Harness struct {
	config Config
}

// NewHarness creates a harness with the given configuration.
func NewHarness(config Config) *Harness {
	return &Harness{config: config}
}

// Run checks every row of every style plus the belief. Metrics are emitted in
// a fixed order: row_sum_deviation, min_entry, off_track_mass,
// missing_on_track, belief_valid, degenerate_styles.
func (h *Harness) Run(tables *reward.Tables, bel belief.Distribution) Result {
	var metrics []Metric
	var failReasons []string
	check := func(name string, value float64, pass bool, reason string) {
		metrics = append(metrics, Metric{Name: name, Value: value, Pass: pass})
		if !pass {
			failReasons = append(failReasons, reason)
		}
	}

	var maxDev, minEntry, offTrack float64
	minEntry = math.Inf(1)
	missing := 0
	for _, style := range codec.Styles() {
		m := tables.Matrix(style)
		for i := 0; i < behaviour.Count; i++ {
			row, _ := tables.Row(style, behaviour.Behaviour(i))
			maxDev = math.Max(maxDev, math.Abs(floats.Sum(row)-1))
			minEntry = math.Min(minEntry, floats.Min(row))
			for j := 0; j < behaviour.Count; j++ {
				v := m.At(i, j)
				if codec.Representable(style, behaviour.Behaviour(j)) {
					if v <= 0 {
						missing++
					}
				} else {
					offTrack += v
				}
			}
		}
	}

	// 1. Row mass within the epsilon approximation bound
	check("row_sum_deviation", maxDev, maxDev <= h.config.RowBound,
		fmt.Sprintf("row sum deviation %.3g exceeds %.3g", maxDev, h.config.RowBound))

	// 2. No negative probabilities
	check("min_entry", minEntry, minEntry >= 0,
		fmt.Sprintf("negative entry %.3g", minEntry))

	// 3. Behaviours a style's track cannot represent carry no mass
	check("off_track_mass", offTrack, offTrack == 0,
		fmt.Sprintf("off-track behaviours carry mass %.3g", offTrack))

	// 4. Behaviours a style's track can represent are reachable
	check("missing_on_track", float64(missing), missing == 0,
		fmt.Sprintf("%d on-track transitions have zero probability", missing))

	// 5. Belief is a distribution
	belErr := bel.Validate()
	check("belief_valid", boolValue(belErr == nil), belErr == nil,
		fmt.Sprintf("belief: %v", belErr))

	// 6. Degenerate styles: informational unless configured to fail
	degenerate := len(tables.Degenerate())
	metrics = append(metrics, Metric{Name: "degenerate_styles", Value: float64(degenerate), Pass: degenerate == 0})
	if err := tables.RequireSpread(); err != nil && h.config.FailDegenerate {
		failReasons = append(failReasons, err.Error())
	}

	reason := "all checks passed"
	if len(failReasons) == 1 {
		reason = fmt.Sprintf("eval failed: %s", failReasons[0])
	} else if len(failReasons) > 1 {
		reason = fmt.Sprintf("eval failed: %d checks: %s", len(failReasons), failReasons[0])
	}

	return Result{
		Passed:  len(failReasons) == 0,
		Metrics: metrics,
		Reason:  reason,
	}
}

// JSON renders the result for the store's metrics column.
func (r Result) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}

// #endregion eval-harness

// #region helpers
func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
