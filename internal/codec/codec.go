package codec

import (
	"fmt"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
)

// #region physio-layout

// physioLayout maps physio slots to behaviours. The physio track keeps the
// atomic acts and a subset of the sport compounds, adds the physio-only
// compound block, and ends on End.
var physioLayout = [PhysioSlots]behaviour.Behaviour{
	behaviour.Start,
	behaviour.Silence,
	behaviour.PreInstruction,
	behaviour.ConcurrentInstructionPositive,
	behaviour.ConcurrentInstructionNegative,
	behaviour.PostInstructionPositive,
	behaviour.PostInstructionNegative,
	behaviour.ManualManipulation,
	behaviour.Questioning,
	behaviour.PositiveModeling,
	behaviour.NegativeModeling,
	behaviour.FirstName,
	behaviour.Hustle,
	behaviour.Praise,
	behaviour.Scold,
	behaviour.Console,
	behaviour.PreInstructionFirstName,
	behaviour.PreInstructionQuestioning,
	behaviour.PreInstructionPositiveModeling,
	behaviour.ConcurrentInstructionPositiveFirstName,
	behaviour.ConcurrentInstructionNegativeFirstName,
	behaviour.PostInstructionPositiveFirstName,
	behaviour.PostInstructionNegativeFirstName,
	behaviour.QuestioningFirstName,
	behaviour.PositiveModelingFirstName,
	behaviour.PraiseFirstName,
	behaviour.ConsoleFirstName,
	behaviour.ManualManipulationPreInstruction,
	behaviour.ManualManipulationQuestioning,
	behaviour.ManualManipulationFirstName,
	behaviour.ManualManipulationPraise,
	behaviour.ManualManipulationConsole,
	behaviour.ManualManipulationPositiveModeling,
	behaviour.ManualManipulationConcurrentInstructionPositive,
	behaviour.ManualManipulationConcurrentInstructionNegative,
	behaviour.PreInstructionConsole,
	behaviour.ConcurrentInstructionPositivePraise,
	behaviour.ConcurrentInstructionNegativeConsole,
	behaviour.ConcurrentInstructionNegativeQuestioning,
	behaviour.PostInstructionNegativeConsole,
	behaviour.QuestioningPraise,
	behaviour.QuestioningConsole,
	behaviour.PositiveModelingQuestioning,
	behaviour.PositiveModelingPraise,
	behaviour.NegativeModelingFirstName,
	behaviour.NegativeModelingQuestioning,
	behaviour.HustlePraise,
	behaviour.HustleConsole,
	behaviour.PraiseConsole,
	behaviour.ConsoleQuestioning,
	behaviour.PositiveModelingConsole,
	behaviour.ConcurrentInstructionPositiveHustle,
	behaviour.End,
}

// physioSlot is the reverse of physioLayout; -1 marks behaviours absent from
// the physio track.
var physioSlot = func() [behaviour.Count]int {
	var idx [behaviour.Count]int
	for i := range idx {
		idx[i] = -1
	}
	for slot, b := range physioLayout {
		idx[b] = slot
	}
	return idx
}()

var (
	sportSet  = buildSet(Sport)
	physioSet = buildSet(Physio)
)

func buildSet(t Track) behaviour.Set {
	var s behaviour.Set
	for slot := 0; slot < Slots(t); slot++ {
		s = s.With(slotBehaviour(t, slot))
	}
	return s
}

// #endregion physio-layout

// #region track-helpers

// TrackOf returns the track a style belongs to. Styles 1..6 are sport,
// 7..12 are physio.
func TrackOf(style Style) (Track, error) {
	if !style.Valid() {
		return 0, fmt.Errorf("style %d: %w", int(style), ErrInvalidStyle)
	}
	if style <= StylesPerTrack {
		return Sport, nil
	}
	return Physio, nil
}

// Slots returns the number of slots per style on the track.
func Slots(t Track) int {
	if t == Physio {
		return PhysioSlots
	}
	return SportSlots
}

// Behaviours returns the behaviours representable on the track.
func Behaviours(t Track) behaviour.Set {
	if t == Physio {
		return physioSet
	}
	return sportSet
}

// Representable reports whether b can be encoded for style.
func Representable(style Style, b behaviour.Behaviour) bool {
	t, err := TrackOf(style)
	if err != nil {
		return false
	}
	return Behaviours(t).Has(b)
}

// SlotBehaviour returns the behaviour held by a slot of the track.
func SlotBehaviour(t Track, slot int) (behaviour.Behaviour, error) {
	if slot < 0 || slot >= Slots(t) {
		return 0, fmt.Errorf("%s slot %d: %w", t, slot, ErrInvalidState)
	}
	return slotBehaviour(t, slot), nil
}

func slotBehaviour(t Track, slot int) behaviour.Behaviour {
	if t == Physio {
		return physioLayout[slot]
	}
	if slot == SportSlots-1 {
		return behaviour.End
	}
	return behaviour.Behaviour(slot)
}

// #endregion track-helpers

// #region decode

// Decoded is the (style, slot, behaviour) triple a state stands for.
type Decoded struct {
	Style     Style
	Track     Track
	Slot      int
	Behaviour behaviour.Behaviour
}

// Decode splits a state into its style and slot.
func Decode(s State) (Decoded, error) {
	if !s.Valid() {
		return Decoded{}, fmt.Errorf("state %d: %w", int(s), ErrInvalidState)
	}
	n := int(s)
	if n < SportStates {
		slot := n % SportSlots
		return Decoded{
			Style:     Style(n/SportSlots) + MinStyle,
			Track:     Sport,
			Slot:      slot,
			Behaviour: slotBehaviour(Sport, slot),
		}, nil
	}
	n -= SportStates
	slot := n % PhysioSlots
	return Decoded{
		Style:     Style(StylesPerTrack+n/PhysioSlots) + MinStyle,
		Track:     Physio,
		Slot:      slot,
		Behaviour: slotBehaviour(Physio, slot),
	}, nil
}

// #endregion decode

// #region encode

// Encode returns the state for (style, b). End maps to the track's last slot.
func Encode(style Style, b behaviour.Behaviour) (State, error) {
	t, err := TrackOf(style)
	if err != nil {
		return 0, err
	}
	if !b.Valid() {
		return 0, fmt.Errorf("encode %d: %w", int(b), ErrInvalidBehaviour)
	}

	switch t {
	case Sport:
		var slot int
		switch {
		case b == behaviour.End:
			slot = SportSlots - 1
		case int(b) < SportSlots-1:
			slot = int(b)
		default:
			return 0, fmt.Errorf("%s not on sport track: %w", b, ErrInvalidBehaviour)
		}
		return State(int(style-MinStyle)*SportSlots + slot), nil
	default:
		slot := physioSlot[b]
		if slot < 0 {
			return 0, fmt.Errorf("%s not on physio track: %w", b, ErrInvalidBehaviour)
		}
		offset := int(style-MinStyle) - StylesPerTrack
		return State(SportStates + offset*PhysioSlots + slot), nil
	}
}

// #endregion encode
