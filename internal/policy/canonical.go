package policy

import b "github.com/danielpatrickdp/coaching-policy/internal/behaviour"

// #region canonical

// canonical collapses each manual-manipulation compound to the act it was
// paired with. It is the last repair tried before advancing the chain.
var canonical = map[b.Behaviour]b.Behaviour{
	b.ManualManipulationPreInstruction:                b.PreInstruction,
	b.ManualManipulationPostInstructionPositive:       b.PostInstructionPositive,
	b.ManualManipulationPostInstructionNegative:       b.PostInstructionNegative,
	b.ManualManipulationQuestioning:                   b.Questioning,
	b.ManualManipulationHustle:                        b.Hustle,
	b.ManualManipulationFirstName:                     b.FirstName,
	b.ManualManipulationPraise:                        b.Praise,
	b.ManualManipulationConsole:                       b.Console,
	b.ManualManipulationPositiveModeling:              b.PositiveModeling,
	b.ManualManipulationConcurrentInstructionPositive: b.ConcurrentInstructionPositive,
	b.ManualManipulationConcurrentInstructionNegative: b.ConcurrentInstructionNegative,
}

// Canonical returns the atomic counterpart of a manual-manipulation compound.
func Canonical(x b.Behaviour) (b.Behaviour, bool) {
	c, ok := canonical[x]
	return c, ok
}

// #endregion canonical
