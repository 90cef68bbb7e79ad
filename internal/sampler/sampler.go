package sampler

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// #region sampler

type rowKey struct {
	style codec.Style
	row   behaviour.Behaviour
}

// Sampler draws behaviours and observations from compiled tables. The tables
// are shared; the random source and the per-row distributions are owned by
// the sampler, so a Sampler belongs to one session and is not safe for
// concurrent use.
type Sampler struct {
	tables *reward.Tables
	src    rand.Source
	rows   map[rowKey]distuv.Categorical
	draws  int
}

// New creates a sampler over tables drawing from src.
func New(tables *reward.Tables, src rand.Source) *Sampler {
	return &Sampler{
		tables: tables,
		src:    src,
		rows:   make(map[rowKey]distuv.Categorical),
	}
}

// NewSeeded creates a sampler with a PCG source seeded from seed.
func NewSeeded(tables *reward.Tables, seed uint64) *Sampler {
	return New(tables, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Draws returns how many behaviours have been drawn so far.
func (s *Sampler) Draws() int {
	return s.draws
}

// #endregion sampler

// #region sample-behaviour

// SampleBehaviour draws the next behaviour from the row of the behaviour the
// state currently holds. The sport End slot reads the End row.
func (s *Sampler) SampleBehaviour(state codec.State) (behaviour.Behaviour, error) {
	d, err := codec.Decode(state)
	if err != nil {
		return 0, err
	}

	key := rowKey{style: d.Style, row: d.Behaviour}
	dist, ok := s.rows[key]
	if !ok {
		weights, err := s.tables.Row(d.Style, d.Behaviour)
		if err != nil {
			return 0, err
		}
		dist = distuv.NewCategorical(weights, s.src)
		s.rows[key] = dist
	}

	s.draws++
	return behaviour.Behaviour(int(dist.Rand())), nil
}

// #endregion sample-behaviour

// #region sample-observation

// SampleObservation draws a style from bel and moves the chain to
// (style, b). If b cannot be represented on the drawn style's track the
// original state is returned, so the result always decodes.
func (s *Sampler) SampleObservation(state codec.State, b behaviour.Behaviour, bel belief.Distribution) (codec.State, error) {
	if !state.Valid() {
		return state, fmt.Errorf("state %d: %w", int(state), codec.ErrInvalidState)
	}
	if !b.Valid() {
		return state, fmt.Errorf("observe %d: %w", int(b), behaviour.ErrInvalidBehaviour)
	}
	weights := bel.Weights()
	if floats.Min(weights) < 0 || floats.Sum(weights) <= 0 {
		return state, fmt.Errorf("sample style: %w", belief.ErrInvalidBelief)
	}

	style := codec.Style(int(distuv.NewCategorical(weights, s.src).Rand())) + codec.MinStyle
	if !codec.Representable(style, b) {
		return state, nil
	}
	return codec.Encode(style, b)
}

// #endregion sample-observation
