package reward

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
)

// #region compile

// Compile turns one style's reward vector into a next-behaviour distribution.
// Rewards are shifted so the minimum is 0 and normalised by their total;
// entries that shift to 0 get Epsilon. Behaviours absent from the style's
// track stay exactly 0. A vector with no spread compiles to a uniform row
// over the track's behaviours.
func Compile(style codec.Style, vec []float64) (Row, error) {
	track, err := codec.TrackOf(style)
	if err != nil {
		return Row{}, err
	}
	slots := codec.Slots(track)
	if len(vec) != slots {
		return Row{}, fmt.Errorf("style %d: got %d rewards, want %d: %w", style, len(vec), slots, ErrRewardShape)
	}

	shifted := make([]float64, slots)
	copy(shifted, vec)
	floats.AddConst(-floats.Min(vec), shifted)
	total := floats.Sum(shifted)

	row := Row{Style: style}
	if total <= 0 {
		row.Degenerate = true
		for slot := 0; slot < slots; slot++ {
			b, _ := codec.SlotBehaviour(track, slot)
			row.P[b] = 1 / float64(slots)
		}
		return row, nil
	}

	for slot, v := range shifted {
		b, _ := codec.SlotBehaviour(track, slot)
		if v > 0 {
			row.P[b] = v / total
		} else {
			row.P[b] = Epsilon
		}
	}
	return row, nil
}

// Sum returns the total probability mass of the row.
func (r Row) Sum() float64 {
	return floats.Sum(r.P[:])
}

// #endregion compile

// #region tables

// Tables holds one 68x68 transition matrix per style. Row i is the
// distribution over the next behaviour when the current behaviour is i.
// Tables are never mutated after construction and may be shared freely.
type Tables struct {
	matrices   [codec.StyleCount]*mat.Dense
	degenerate []codec.Style
}

// CompileAll compiles every style of the table. Every row of a style's
// matrix equals the compiled reward row.
func CompileAll(table Table) (*Tables, error) {
	t := &Tables{}
	for _, style := range codec.Styles() {
		vec, ok := table[style]
		if !ok {
			return nil, fmt.Errorf("style %d missing: %w", style, ErrRewardShape)
		}
		row, err := Compile(style, vec)
		if err != nil {
			return nil, err
		}
		if row.Degenerate {
			t.degenerate = append(t.degenerate, style)
		}

		m := mat.NewDense(behaviour.Count, behaviour.Count, nil)
		for i := 0; i < behaviour.Count; i++ {
			m.SetRow(i, row.P[:])
		}
		t.matrices[style-codec.MinStyle] = m
	}
	return t, nil
}

// FromMatrices wraps matrices loaded from a persisted artifact. Every style
// must be present, 68x68, non-negative, and every row must carry mass.
func FromMatrices(ms map[codec.Style]*mat.Dense) (*Tables, error) {
	t := &Tables{}
	for _, style := range codec.Styles() {
		m, ok := ms[style]
		if !ok || m == nil {
			return nil, fmt.Errorf("style %d missing: %w", style, ErrMatrixShape)
		}
		r, c := m.Dims()
		if r != behaviour.Count || c != behaviour.Count {
			return nil, fmt.Errorf("style %d is %dx%d: %w", style, r, c, ErrMatrixShape)
		}
		for i := 0; i < r; i++ {
			row := m.RawRowView(i)
			if floats.Min(row) < 0 || floats.Sum(row) <= 0 {
				return nil, fmt.Errorf("style %d row %d: %w", style, i, ErrMatrixShape)
			}
		}
		t.matrices[style-codec.MinStyle] = mat.DenseCopyOf(m)
	}
	return t, nil
}

// Matrix returns the style's transition matrix. Callers must not mutate it.
func (t *Tables) Matrix(style codec.Style) mat.Matrix {
	if !style.Valid() {
		return nil
	}
	return t.matrices[style-codec.MinStyle]
}

// Row returns a copy of the distribution for style when the current
// behaviour is from.
func (t *Tables) Row(style codec.Style, from behaviour.Behaviour) ([]float64, error) {
	if !style.Valid() {
		return nil, fmt.Errorf("style %d: %w", style, codec.ErrInvalidStyle)
	}
	if !from.Valid() {
		return nil, fmt.Errorf("row %d: %w", int(from), behaviour.ErrInvalidBehaviour)
	}
	return mat.Row(nil, int(from), t.matrices[style-codec.MinStyle]), nil
}

// Degenerate lists styles compiled with the uniform fallback.
func (t *Tables) Degenerate() []codec.Style {
	return append([]codec.Style(nil), t.degenerate...)
}

// RequireSpread fails with ErrDegenerateReward when any style fell back to
// the uniform row.
func (t *Tables) RequireSpread() error {
	if len(t.degenerate) == 0 {
		return nil
	}
	return fmt.Errorf("styles %v compiled uniform: %w", t.degenerate, ErrDegenerateReward)
}

// #endregion tables
