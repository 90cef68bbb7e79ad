package replay

import (
	"fmt"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
)

// #region types
// Turn is a single recorded interaction to replay.
type Turn struct {
	TurnID  string
	Context interaction.Context
}

// Result captures the outcome of replaying one turn.
type Result struct {
	TurnID    string
	Context   interaction.Context
	State     codec.State // state the behaviour was drawn from, after any advance
	Behaviour behaviour.Behaviour
	NextState codec.State
	Draws     int
	Advances  int
	Path      []policy.Step
}

// Final returns the terminal step of the turn.
func (r Result) Final() policy.Step {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[len(r.Path)-1]
}

// Canonicalized reports whether the turn needed the manual-manipulation repair.
func (r Result) Canonicalized() bool {
	for _, s := range r.Path {
		if s == policy.StepCanonicalizing {
			return true
		}
	}
	return false
}

// Silenced reports whether the action-level fallback was used.
func (r Result) Silenced() bool {
	for _, s := range r.Path {
		if s == policy.StepSilenced {
			return true
		}
	}
	return false
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTurns    int
	Draws         int
	Retried       int // turns that drew more than once
	Silenced      int
	Canonicalized int
	Advanced      int // turns whose chain advanced at least once
	Behaviours    map[behaviour.Behaviour]int
	FinalState    codec.State
}
// #endregion types

// #region replay
// Replay runs GetBehaviour then GetObservation for every turn, feeding each
// turn's next state into the following one. It stops at the first error and
// returns the results so far.
func Replay(p *policy.Policy, start codec.State, turns []Turn) ([]Result, error) {
	current := start
	results := make([]Result, 0, len(turns))

	for _, turn := range turns {
		d, err := p.Decide(current, turn.Context)
		if err != nil {
			return results, fmt.Errorf("turn %s: %w", turn.TurnID, err)
		}
		next, err := p.GetObservation(d.State, d.Behaviour)
		if err != nil {
			return results, fmt.Errorf("turn %s observe: %w", turn.TurnID, err)
		}
		results = append(results, Result{
			TurnID:    turn.TurnID,
			Context:   turn.Context,
			State:     d.State,
			Behaviour: d.Behaviour,
			NextState: next,
			Draws:     d.Draws,
			Advances:  d.Advances,
			Path:      d.Path,
		})
		current = next
	}

	return results, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result, start codec.State) Summary {
	s := Summary{
		TotalTurns: len(results),
		Behaviours: make(map[behaviour.Behaviour]int),
		FinalState: start,
	}
	for _, r := range results {
		s.Draws += r.Draws
		s.Behaviours[r.Behaviour]++
		if r.Draws > 1 {
			s.Retried++
		}
		if r.Silenced() {
			s.Silenced++
		}
		if r.Canonicalized() {
			s.Canonicalized++
		}
		if r.Advances > 0 {
			s.Advanced++
		}
		s.FinalState = r.NextState
	}
	return s
}
// #endregion replay
