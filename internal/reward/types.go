package reward

import (
	"errors"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
)

// #region constants

// Epsilon replaces non-positive shifted rewards so that no populated
// transition is impossible. Rows therefore sum to 1 only within Bound.
const Epsilon = 1e-6

// Bound is the largest allowed |sum(row) - 1| for a compiled row.
const Bound = float64(behaviour.Count) * Epsilon

// #endregion constants

// #region errors

var (
	// ErrDegenerateReward marks a vector whose shifted total is not positive.
	// Compile recovers with a uniform row and records it on Row.Degenerate;
	// Tables.RequireSpread reports it for callers that reject the fallback.
	ErrDegenerateReward = errors.New("degenerate reward vector")

	// ErrRewardShape is returned for vectors whose length does not match the
	// style's track, and for missing styles.
	ErrRewardShape = errors.New("reward vector shape mismatch")

	// ErrMatrixShape is returned when a loaded matrix is not 68x68 or has a
	// row with no mass.
	ErrMatrixShape = errors.New("transition matrix shape mismatch")
)

// #endregion errors

// #region table

// Table maps each style to its IRL reward vector (45 sport or 53 physio
// entries, indexed by slot).
type Table map[codec.Style][]float64

// #endregion table

// #region row

// Row is the compiled next-behaviour distribution for one style.
type Row struct {
	Style      codec.Style
	P          [behaviour.Count]float64
	Degenerate bool
}

// #endregion row
