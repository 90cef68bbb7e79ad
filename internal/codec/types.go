package codec

import (
	"errors"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
)

// #region errors

var (
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidStyle     = errors.New("invalid style")
	ErrInvalidBehaviour = behaviour.ErrInvalidBehaviour
)

// #endregion errors

// #region style

// Style is one of the 12 latent coaching styles, numbered from 1.
type Style int

const (
	MinStyle Style = 1
	MaxStyle Style = 12

	StyleCount     = 12
	StylesPerTrack = 6
)

// Valid reports whether s is in 1..12.
func (s Style) Valid() bool {
	return s >= MinStyle && s <= MaxStyle
}

// Styles returns 1..12.
func Styles() []Style {
	out := make([]Style, 0, StyleCount)
	for s := MinStyle; s <= MaxStyle; s++ {
		out = append(out, s)
	}
	return out
}

// #endregion style

// #region track

// Track identifies the slot layout a style uses.
type Track int

const (
	Sport Track = iota
	Physio
)

const (
	SportSlots  = 45
	PhysioSlots = 53

	// SportStates is the size of the sport block of the state space.
	SportStates = StylesPerTrack * SportSlots
	// StateCount is the size of the whole state space.
	StateCount = SportStates + StylesPerTrack*PhysioSlots
)

func (t Track) String() string {
	if t == Physio {
		return "physio"
	}
	return "sport"
}

// #endregion track

// #region state

// State is the linear encoding of a (style, slot) pair, in 0..587.
type State int

// Valid reports whether s is inside the state space.
func (s State) Valid() bool {
	return s >= 0 && int(s) < StateCount
}

// #endregion state
