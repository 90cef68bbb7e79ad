package validity

import (
	"fmt"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
)

// #region table

const (
	goalCount        = int(interaction.BaselineGoal) + 1
	phaseCount       = int(interaction.PhaseEnd) + 1
	performanceCount = int(interaction.MuchRegressed) + 1
)

// table is the rules expanded over every (goal, phase, performance).
type table [goalCount][phaseCount][performanceCount]behaviour.Set

var compiled = compile(rules)

func compile(rs []rule) *table {
	var t table
	for _, r := range rs {
		for _, ph := range orAllPhases(r.phases) {
			for _, p := range orAllPerformances(r.performances) {
				cell := &t[r.goal][ph][p]
				*cell = cell.Union(r.allow)
			}
		}
	}
	return &t
}

func orAllPhases(ps []interaction.Phase) []interaction.Phase {
	if ps == nil {
		return interaction.Phases()
	}
	return ps
}

func orAllPerformances(ps []interaction.Performance) []interaction.Performance {
	if ps == nil {
		return interaction.Performances()
	}
	return ps
}

// #endregion table

// #region valid

// Valid returns the behaviours legal in ctx. Unknown contexts get the empty set.
func Valid(ctx interaction.Context) behaviour.Set {
	if !ctx.Valid() {
		return behaviour.Set{}
	}
	return compiled[ctx.Goal][ctx.Phase][ctx.Performance]
}

// #endregion valid

// #region verdict

// Verdict explains why a behaviour was accepted or rejected in a context.
type Verdict struct {
	Allowed bool
	Reason  string
}

// Check evaluates one behaviour against the context's valid set.
func Check(ctx interaction.Context, b behaviour.Behaviour) Verdict {
	switch {
	case !ctx.Valid():
		return Verdict{Reason: fmt.Sprintf("unknown context %s", ctx)}
	case !b.Valid():
		return Verdict{Reason: fmt.Sprintf("unknown behaviour %d", int(b))}
	}
	valid := Valid(ctx)
	if valid.Has(b) {
		return Verdict{Allowed: true, Reason: fmt.Sprintf("%s allowed at %s", b, ctx)}
	}
	return Verdict{Reason: fmt.Sprintf("%s not in %d behaviours allowed at %s", b, valid.Len(), ctx)}
}

// #endregion verdict
