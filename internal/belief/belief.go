package belief

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/danielpatrickdp/coaching-policy/internal/codec"
)

// ErrInvalidBelief is returned for negative entries or mass that does not sum to 1.
var ErrInvalidBelief = errors.New("invalid belief distribution")

const sumTolerance = 1e-9

// #region distribution

// Distribution is a probability vector over styles 1..12; index 0 is style 1.
type Distribution [codec.StyleCount]float64

// Point puts all mass on one style.
func Point(style codec.Style) (Distribution, error) {
	var d Distribution
	if !style.Valid() {
		return d, fmt.Errorf("point on style %d: %w", style, codec.ErrInvalidStyle)
	}
	d[style-codec.MinStyle] = 1
	return d, nil
}

// Prior builds the fixed starting belief for a user of the given ability
// bucket (1..6): 0.75 on the matching style of the track, the remaining 0.25
// spread evenly over the track's other five styles. The other track gets 0.
func Prior(track codec.Track, ability int) (Distribution, error) {
	var d Distribution
	if ability < 1 || ability > codec.StylesPerTrack {
		return d, fmt.Errorf("ability %d outside 1..%d: %w", ability, codec.StylesPerTrack, ErrInvalidBelief)
	}
	base := 0
	if track == codec.Physio {
		base = codec.StylesPerTrack
	}
	for i := 0; i < codec.StylesPerTrack; i++ {
		d[base+i] = 0.25 / float64(codec.StylesPerTrack-1)
	}
	d[base+ability-1] = 0.75
	return d, nil
}

// FromSlice copies a 12-entry vector and validates it.
func FromSlice(v []float64) (Distribution, error) {
	var d Distribution
	if len(v) != codec.StyleCount {
		return d, fmt.Errorf("got %d entries, want %d: %w", len(v), codec.StyleCount, ErrInvalidBelief)
	}
	copy(d[:], v)
	return d, d.Validate()
}

// Validate checks non-negativity and unit mass.
func (d Distribution) Validate() error {
	for i, p := range d {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("style %d has p=%g: %w", i+1, p, ErrInvalidBelief)
		}
	}
	if sum := floats.Sum(d[:]); math.Abs(sum-1) > sumTolerance {
		return fmt.Errorf("mass %g: %w", sum, ErrInvalidBelief)
	}
	return nil
}

// Normalize rescales d to unit mass. A distribution with no mass is returned
// unchanged with an error.
func (d Distribution) Normalize() (Distribution, error) {
	sum := floats.Sum(d[:])
	if sum <= 0 {
		return d, fmt.Errorf("no mass to normalize: %w", ErrInvalidBelief)
	}
	floats.Scale(1/sum, d[:])
	return d, nil
}

// Weights returns the distribution as a slice for categorical sampling.
func (d Distribution) Weights() []float64 {
	return append([]float64(nil), d[:]...)
}

// Of returns the probability of a style.
func (d Distribution) Of(style codec.Style) float64 {
	if !style.Valid() {
		return 0
	}
	return d[style-codec.MinStyle]
}

// #endregion distribution
