package validity

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
)

func ctxOf(g interaction.GoalLevel, ph interaction.Phase, p interaction.Performance) interaction.Context {
	return interaction.Context{Goal: g, Phase: ph, Performance: p}
}

func TestEveryContextHasBehaviours(t *testing.T) {
	for _, c := range interaction.All() {
		set := Valid(c)
		if set.Empty() {
			t.Errorf("%s: empty valid set", c)
		}
		if set.Has(behaviour.Start) {
			t.Errorf("%s: Start must never be valid", c)
		}
	}
}

func TestValidSetsReachableOnBothTracks(t *testing.T) {
	for _, c := range interaction.All() {
		set := Valid(c)
		for _, tr := range []codec.Track{codec.Sport, codec.Physio} {
			if set.Intersect(codec.Behaviours(tr)).Empty() {
				t.Errorf("%s: no valid behaviour on the %s track", c, tr)
			}
		}
	}
}

func TestPersonGoal(t *testing.T) {
	for _, p := range interaction.Performances() {
		end := Valid(ctxOf(interaction.PersonGoal, interaction.PhaseEnd, p))
		if diff := cmp.Diff([]behaviour.Behaviour{behaviour.End}, end.Slice()); diff != "" {
			t.Errorf("PERSON/END/%s mismatch (-want +got):\n%s", p, diff)
		}

		start := Valid(ctxOf(interaction.PersonGoal, interaction.PhaseStart, p))
		for _, b := range start.Slice() {
			if b.Components()[0] != behaviour.PreInstruction {
				t.Errorf("PERSON/START/%s allows non pre-instruction %s", p, b)
			}
		}
	}
}

func TestEndOnlyAtPersonEnd(t *testing.T) {
	for _, c := range interaction.All() {
		if c.Goal == interaction.PersonGoal && c.Phase == interaction.PhaseEnd {
			continue
		}
		if Valid(c).Has(behaviour.End) {
			t.Errorf("%s: End allowed outside PERSON/END", c)
		}
	}
}

func TestActionGoalIgnoresPhaseAndAllowsSilence(t *testing.T) {
	for _, p := range interaction.Performances() {
		start := Valid(ctxOf(interaction.ActionGoal, interaction.PhaseStart, p))
		end := Valid(ctxOf(interaction.ActionGoal, interaction.PhaseEnd, p))
		if diff := cmp.Diff(start.Slice(), end.Slice()); diff != "" {
			t.Errorf("ACTION/%s differs by phase (-start +end):\n%s", p, diff)
		}
		if !start.Has(behaviour.Silence) {
			t.Errorf("ACTION/%s must allow Silence", p)
		}
	}
}

func TestStartPhasesIgnorePerformance(t *testing.T) {
	for _, g := range interaction.Goals() {
		if g == interaction.ActionGoal {
			continue // performance-dependent in both phases
		}
		want := Valid(ctxOf(g, interaction.PhaseStart, interaction.Met)).Slice()
		for _, p := range interaction.Performances() {
			got := Valid(ctxOf(g, interaction.PhaseStart, p)).Slice()
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s/START/%s differs from MET (-want +got):\n%s", g, p, diff)
			}
		}
	}
}

func TestFeedbackDirection(t *testing.T) {
	for _, g := range []interaction.GoalLevel{interaction.SessionGoal, interaction.ExerciseGoal, interaction.SetGoal, interaction.ActionGoal} {
		for _, p := range interaction.Performances() {
			set := Valid(ctxOf(g, interaction.PhaseEnd, p))
			if p.Positive() && (set.Has(behaviour.Scold) || set.Has(behaviour.PostInstructionNegative)) {
				t.Errorf("%s/END/%s allows negative feedback", g, p)
			}
			if p.Negative() && (set.Has(behaviour.Praise) || set.Has(behaviour.PostInstructionPositive)) {
				t.Errorf("%s/END/%s allows positive feedback", g, p)
			}
		}
	}
}

func TestGoldenCells(t *testing.T) {
	tests := []struct {
		ctx  interaction.Context
		want []behaviour.Behaviour
	}{
		{
			ctxOf(interaction.StatGoal, interaction.PhaseStart, interaction.Steady),
			[]behaviour.Behaviour{behaviour.Silence, behaviour.PreInstruction, behaviour.Questioning},
		},
		{
			ctxOf(interaction.BaselineGoal, interaction.PhaseEnd, interaction.MuchRegressed),
			[]behaviour.Behaviour{behaviour.Silence, behaviour.PostInstructionPositive, behaviour.FirstName, behaviour.Praise},
		},
		{
			ctxOf(interaction.SessionGoal, interaction.PhaseStart, interaction.Met),
			[]behaviour.Behaviour{
				behaviour.PreInstruction, behaviour.Questioning, behaviour.FirstName,
				behaviour.PreInstructionFirstName, behaviour.PreInstructionQuestioning,
				behaviour.PreInstructionPositiveModeling, behaviour.PreInstructionNegativeModeling,
				behaviour.PreInstructionPraise, behaviour.QuestioningFirstName, behaviour.PreInstructionConsole,
			},
		},
	}
	for _, tt := range tests {
		got := Valid(tt.ctx)
		if diff := cmp.Diff(behaviour.NewSet(tt.want...).Slice(), got.Slice()); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.ctx, diff)
		}
	}
}

func TestUnknownContext(t *testing.T) {
	if !Valid(interaction.Context{Goal: 42}).Empty() {
		t.Fatal("unknown context must have no valid behaviours")
	}
}

func TestCheck(t *testing.T) {
	c := ctxOf(interaction.PersonGoal, interaction.PhaseEnd, interaction.Met)
	if v := Check(c, behaviour.End); !v.Allowed {
		t.Fatalf("End should be allowed: %s", v.Reason)
	}
	v := Check(c, behaviour.Praise)
	if v.Allowed {
		t.Fatal("Praise should be rejected at PERSON/END")
	}
	if v.Reason == "" {
		t.Fatal("expected rejection reason")
	}
	if Check(c, behaviour.Behaviour(-3)).Allowed {
		t.Fatal("unknown behaviour must be rejected")
	}
}
