package behaviour

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBehaviour is returned for codes outside 0..67 and unknown names.
var ErrInvalidBehaviour = errors.New("invalid behaviour")

// #region behaviour

// Behaviour is a coaching act code. Codes 0..43 form the sport block,
// 44..66 the physio-only compound block, and 67 is End.
type Behaviour int

const (
	Start Behaviour = iota
	Silence
	PreInstruction
	ConcurrentInstructionPositive
	ConcurrentInstructionNegative
	PostInstructionPositive
	PostInstructionNegative
	ManualManipulation
	Questioning
	PositiveModeling
	NegativeModeling
	FirstName
	Hustle
	Praise
	Scold
	Console
	PreInstructionFirstName
	PreInstructionQuestioning
	PreInstructionPositiveModeling
	PreInstructionNegativeModeling
	PreInstructionPraise
	ConcurrentInstructionPositiveFirstName
	ConcurrentInstructionPositiveQuestioning
	ConcurrentInstructionNegativeFirstName
	PostInstructionPositiveFirstName
	PostInstructionPositiveQuestioning
	PostInstructionPositivePraise
	PostInstructionNegativeFirstName
	PostInstructionNegativeQuestioning
	PostInstructionNegativeScold
	QuestioningFirstName
	PositiveModelingFirstName
	PositiveModelingPreInstruction
	PositiveModelingPostInstructionPositive
	NegativeModelingPostInstructionNegative
	HustleFirstName
	PraiseFirstName
	ScoldFirstName
	ConsoleFirstName
	ManualManipulationPreInstruction
	ManualManipulationPostInstructionPositive
	ManualManipulationPostInstructionNegative
	ManualManipulationQuestioning
	ManualManipulationHustle

	// physio-only compounds
	ManualManipulationFirstName
	ManualManipulationPraise
	ManualManipulationConsole
	ManualManipulationPositiveModeling
	ManualManipulationConcurrentInstructionPositive
	ManualManipulationConcurrentInstructionNegative
	PreInstructionConsole
	ConcurrentInstructionPositivePraise
	ConcurrentInstructionNegativeConsole
	ConcurrentInstructionNegativeQuestioning
	PostInstructionNegativeConsole
	QuestioningPraise
	QuestioningConsole
	PositiveModelingQuestioning
	PositiveModelingPraise
	NegativeModelingFirstName
	NegativeModelingQuestioning
	HustlePraise
	HustleConsole
	PraiseConsole
	ConsoleQuestioning
	PositiveModelingConsole
	ConcurrentInstructionPositiveHustle

	End
)

const (
	// Count is the number of behaviour codes.
	Count = int(End) + 1

	// FirstPhysioOnly is the first code of the physio-only compound block.
	FirstPhysioOnly = ManualManipulationFirstName
)

// #endregion behaviour

// #region names

var names = [Count]string{
	"START",
	"SILENCE",
	"PREINSTRUCTION",
	"CONCURRENTINSTRUCTIONPOSITIVE",
	"CONCURRENTINSTRUCTIONNEGATIVE",
	"POSTINSTRUCTIONPOSITIVE",
	"POSTINSTRUCTIONNEGATIVE",
	"MANUALMANIPULATION",
	"QUESTIONING",
	"POSITIVEMODELING",
	"NEGATIVEMODELING",
	"FIRSTNAME",
	"HUSTLE",
	"PRAISE",
	"SCOLD",
	"CONSOLE",
	"PREINSTRUCTION_FIRSTNAME",
	"PREINSTRUCTION_QUESTIONING",
	"PREINSTRUCTION_POSITIVEMODELING",
	"PREINSTRUCTION_NEGATIVEMODELING",
	"PREINSTRUCTION_PRAISE",
	"CONCURRENTINSTRUCTIONPOSITIVE_FIRSTNAME",
	"CONCURRENTINSTRUCTIONPOSITIVE_QUESTIONING",
	"CONCURRENTINSTRUCTIONNEGATIVE_FIRSTNAME",
	"POSTINSTRUCTIONPOSITIVE_FIRSTNAME",
	"POSTINSTRUCTIONPOSITIVE_QUESTIONING",
	"POSTINSTRUCTIONPOSITIVE_PRAISE",
	"POSTINSTRUCTIONNEGATIVE_FIRSTNAME",
	"POSTINSTRUCTIONNEGATIVE_QUESTIONING",
	"POSTINSTRUCTIONNEGATIVE_SCOLD",
	"QUESTIONING_FIRSTNAME",
	"POSITIVEMODELING_FIRSTNAME",
	"POSITIVEMODELING_PREINSTRUCTION",
	"POSITIVEMODELING_POSTINSTRUCTIONPOSITIVE",
	"NEGATIVEMODELING_POSTINSTRUCTIONNEGATIVE",
	"HUSTLE_FIRSTNAME",
	"PRAISE_FIRSTNAME",
	"SCOLD_FIRSTNAME",
	"CONSOLE_FIRSTNAME",
	"MANUALMANIPULATION_PREINSTRUCTION",
	"MANUALMANIPULATION_POSTINSTRUCTIONPOSITIVE",
	"MANUALMANIPULATION_POSTINSTRUCTIONNEGATIVE",
	"MANUALMANIPULATION_QUESTIONING",
	"MANUALMANIPULATION_HUSTLE",
	"MANUALMANIPULATION_FIRSTNAME",
	"MANUALMANIPULATION_PRAISE",
	"MANUALMANIPULATION_CONSOLE",
	"MANUALMANIPULATION_POSITIVEMODELING",
	"MANUALMANIPULATION_CONCURRENTINSTRUCTIONPOSITIVE",
	"MANUALMANIPULATION_CONCURRENTINSTRUCTIONNEGATIVE",
	"PREINSTRUCTION_CONSOLE",
	"CONCURRENTINSTRUCTIONPOSITIVE_PRAISE",
	"CONCURRENTINSTRUCTIONNEGATIVE_CONSOLE",
	"CONCURRENTINSTRUCTIONNEGATIVE_QUESTIONING",
	"POSTINSTRUCTIONNEGATIVE_CONSOLE",
	"QUESTIONING_PRAISE",
	"QUESTIONING_CONSOLE",
	"POSITIVEMODELING_QUESTIONING",
	"POSITIVEMODELING_PRAISE",
	"NEGATIVEMODELING_FIRSTNAME",
	"NEGATIVEMODELING_QUESTIONING",
	"HUSTLE_PRAISE",
	"HUSTLE_CONSOLE",
	"PRAISE_CONSOLE",
	"CONSOLE_QUESTIONING",
	"POSITIVEMODELING_CONSOLE",
	"CONCURRENTINSTRUCTIONPOSITIVE_HUSTLE",
	"END",
}

var byName = func() map[string]Behaviour {
	m := make(map[string]Behaviour, Count)
	for i, n := range names {
		m[n] = Behaviour(i)
	}
	return m
}()

// #endregion names

// #region methods

// Valid reports whether b is one of the 68 known codes.
func (b Behaviour) Valid() bool {
	return b >= Start && b <= End
}

func (b Behaviour) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Behaviour(%d)", int(b))
	}
	return names[b]
}

// PhysioOnly reports whether b can only be represented on the physio track.
func (b Behaviour) PhysioOnly() bool {
	return b >= FirstPhysioOnly && b < End
}

// IsCompound reports whether b pairs two atomic acts.
func (b Behaviour) IsCompound() bool {
	return b.Valid() && strings.Contains(names[b], "_")
}

// Components returns the atomic acts that make up b. Atomic and marker codes
// return themselves.
func (b Behaviour) Components() []Behaviour {
	if !b.IsCompound() {
		return []Behaviour{b}
	}
	parts := strings.Split(names[b], "_")
	out := make([]Behaviour, 0, len(parts))
	for _, p := range parts {
		out = append(out, byName[p])
	}
	return out
}

// Involves reports whether atomic act a is one of b's components.
func (b Behaviour) Involves(a Behaviour) bool {
	for _, c := range b.Components() {
		if c == a {
			return true
		}
	}
	return false
}

// Parse resolves an upper-case behaviour name such as "PRAISE_FIRSTNAME".
func Parse(name string) (Behaviour, error) {
	b, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("parse %q: %w", name, ErrInvalidBehaviour)
	}
	return b, nil
}

// FromInt converts a wire integer to a Behaviour.
func FromInt(code int) (Behaviour, error) {
	b := Behaviour(code)
	if !b.Valid() {
		return 0, fmt.Errorf("code %d: %w", code, ErrInvalidBehaviour)
	}
	return b, nil
}

// All returns every behaviour code in ascending order.
func All() []Behaviour {
	out := make([]Behaviour, Count)
	for i := range out {
		out[i] = Behaviour(i)
	}
	return out
}

// #endregion methods
