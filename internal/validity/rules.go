package validity

import (
	b "github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
)

// #region groups

var (
	preInstruction = b.NewSet(
		b.PreInstruction,
		b.PreInstructionFirstName,
		b.PreInstructionQuestioning,
		b.PreInstructionPositiveModeling,
		b.PreInstructionNegativeModeling,
		b.PreInstructionPraise,
		b.PreInstructionConsole,
	)

	opening = preInstruction.Union(b.NewSet(
		b.FirstName,
		b.Questioning,
		b.QuestioningFirstName,
	))

	demonstration = b.NewSet(
		b.PositiveModeling,
		b.PositiveModelingFirstName,
		b.PositiveModelingPreInstruction,
		b.NegativeModeling,
		b.ManualManipulationPreInstruction,
	)

	positiveFeedback = b.NewSet(
		b.Praise,
		b.PraiseFirstName,
		b.PostInstructionPositive,
		b.PostInstructionPositiveFirstName,
		b.PostInstructionPositivePraise,
		b.QuestioningPraise,
	)

	steadyFeedback = b.NewSet(
		b.PostInstructionPositive,
		b.PostInstructionNegative,
		b.Questioning,
		b.QuestioningFirstName,
		b.FirstName,
	)

	negativeFeedback = b.NewSet(
		b.PostInstructionNegative,
		b.PostInstructionNegativeFirstName,
		b.PostInstructionNegativeConsole,
		b.Console,
		b.ConsoleFirstName,
	)

	correction = b.NewSet(
		b.Scold,
		b.ScoldFirstName,
		b.PostInstructionNegativeScold,
		b.NegativeModeling,
		b.NegativeModelingPostInstructionNegative,
	)

	statPositive = b.NewSet(
		b.PostInstructionPositive,
		b.PostInstructionPositiveFirstName,
		b.PostInstructionPositiveQuestioning,
		b.Praise,
	)

	statSteady = b.NewSet(
		b.PostInstructionPositive,
		b.PostInstructionNegative,
		b.Questioning,
	)

	statNegative = b.NewSet(
		b.PostInstructionNegative,
		b.PostInstructionNegativeFirstName,
		b.PostInstructionNegativeQuestioning,
		b.Console,
	)

	actionPositive = b.NewSet(
		b.Silence,
		b.Praise,
		b.PraiseFirstName,
		b.ConcurrentInstructionPositive,
		b.ConcurrentInstructionPositiveFirstName,
		b.ConcurrentInstructionPositivePraise,
		b.Hustle,
		b.HustlePraise,
	)

	actionSteady = b.NewSet(
		b.Silence,
		b.Hustle,
		b.HustleFirstName,
		b.ConcurrentInstructionPositive,
		b.ConcurrentInstructionNegative,
		b.FirstName,
	)

	actionNegative = b.NewSet(
		b.Silence,
		b.Hustle,
		b.ConcurrentInstructionNegative,
		b.ConcurrentInstructionNegativeFirstName,
		b.ConcurrentInstructionNegativeQuestioning,
		b.Scold,
		b.ScoldFirstName,
		b.Console,
		b.ManualManipulation,
		b.ManualManipulationConcurrentInstructionNegative,
	)
)

// #endregion groups

// #region rules

var (
	positive = []interaction.Performance{
		interaction.Met, interaction.MuchImproved, interaction.Improved, interaction.ImprovedSwap,
	}
	steady   = []interaction.Performance{interaction.Steady}
	negative = []interaction.Performance{
		interaction.Regressed, interaction.RegressedSwap, interaction.MuchRegressed,
	}
	startOnly = []interaction.Phase{interaction.PhaseStart}
	endOnly   = []interaction.Phase{interaction.PhaseEnd}
)

// rule grants a behaviour set to every context matching goal, any of phases
// and any of performances. nil phases or performances match everything.
type rule struct {
	goal         interaction.GoalLevel
	phases       []interaction.Phase
	performances []interaction.Performance
	allow        b.Set
}

// rules is the interaction design. A context's valid set is the union of
// every matching rule.
var rules = []rule{
	{interaction.PersonGoal, startOnly, nil, preInstruction},
	{interaction.PersonGoal, endOnly, nil, b.NewSet(b.End)},

	{interaction.SessionGoal, startOnly, nil, opening},
	{interaction.SessionGoal, endOnly, positive, positiveFeedback},
	{interaction.SessionGoal, endOnly, steady, steadyFeedback},
	{interaction.SessionGoal, endOnly, negative, negativeFeedback},

	{interaction.ExerciseGoal, startOnly, nil, preInstruction.Union(demonstration)},
	{interaction.ExerciseGoal, endOnly, positive, positiveFeedback},
	{interaction.ExerciseGoal, endOnly, steady, steadyFeedback},
	{interaction.ExerciseGoal, endOnly, negative, negativeFeedback.Union(b.NewSet(b.NegativeModeling))},

	{interaction.StatGoal, startOnly, nil, b.NewSet(b.Silence, b.PreInstruction, b.Questioning)},
	{interaction.StatGoal, endOnly, positive, statPositive},
	{interaction.StatGoal, endOnly, steady, statSteady},
	{interaction.StatGoal, endOnly, negative, statNegative},

	{interaction.SetGoal, startOnly, nil, preInstruction.Union(demonstration).Union(b.NewSet(b.Hustle, b.HustleFirstName))},
	{interaction.SetGoal, endOnly, positive, positiveFeedback},
	{interaction.SetGoal, endOnly, steady, steadyFeedback.Union(b.NewSet(b.Hustle, b.HustleFirstName))},
	{interaction.SetGoal, endOnly, negative, negativeFeedback.Union(correction)},

	// action feedback is given during the repetition; phase does not matter
	{interaction.ActionGoal, nil, positive, actionPositive},
	{interaction.ActionGoal, nil, steady, actionSteady},
	{interaction.ActionGoal, nil, negative, actionNegative},

	{interaction.BaselineGoal, startOnly, nil, b.NewSet(b.Silence, b.PreInstruction, b.PreInstructionFirstName)},
	{interaction.BaselineGoal, endOnly, nil, b.NewSet(b.Silence, b.PostInstructionPositive, b.Praise, b.FirstName)},
}

// #endregion rules
