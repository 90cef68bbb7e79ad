package interaction

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned when parsing an unknown goal, phase or performance.
var ErrUnknown = errors.New("unknown interaction value")

// #region goal-level

// GoalLevel marks where in the person/session/exercise/set/action hierarchy
// the interaction currently is.
type GoalLevel int

const (
	PersonGoal GoalLevel = iota
	SessionGoal
	ExerciseGoal
	StatGoal
	SetGoal
	ActionGoal
	BaselineGoal
)

var goalNames = []string{"PERSON", "SESSION", "EXERCISE", "STAT", "SET", "ACTION", "BASELINE"}

func (g GoalLevel) String() string {
	if g < 0 || int(g) >= len(goalNames) {
		return fmt.Sprintf("GoalLevel(%d)", int(g))
	}
	return goalNames[g]
}

// Goals returns every goal level.
func Goals() []GoalLevel {
	return []GoalLevel{PersonGoal, SessionGoal, ExerciseGoal, StatGoal, SetGoal, ActionGoal, BaselineGoal}
}

// #endregion goal-level

// #region phase

// Phase is whether the goal is starting or ending.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseEnd
)

var phaseNames = []string{"START", "END"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Phases returns both phases.
func Phases() []Phase {
	return []Phase{PhaseStart, PhaseEnd}
}

// #endregion phase

// #region performance

// Performance is the discretised comparison of the latest score to target.
type Performance int

const (
	Met Performance = iota
	MuchImproved
	Improved
	ImprovedSwap
	Steady
	Regressed
	RegressedSwap
	MuchRegressed
)

var performanceNames = []string{
	"MET", "MUCH_IMPROVED", "IMPROVED", "IMPROVED_SWAP",
	"STEADY", "REGRESSED", "REGRESSED_SWAP", "MUCH_REGRESSED",
}

func (p Performance) String() string {
	if p < 0 || int(p) >= len(performanceNames) {
		return fmt.Sprintf("Performance(%d)", int(p))
	}
	return performanceNames[p]
}

// Performances returns every performance level.
func Performances() []Performance {
	return []Performance{Met, MuchImproved, Improved, ImprovedSwap, Steady, Regressed, RegressedSwap, MuchRegressed}
}

// Positive reports whether p is at or above the previous attempt.
func (p Performance) Positive() bool {
	return p <= ImprovedSwap
}

// Negative reports whether p is below the previous attempt.
func (p Performance) Negative() bool {
	return p >= Regressed && p <= MuchRegressed
}

// #endregion performance

// #region context

// Context is the immutable interaction context supplied with every call.
type Context struct {
	Goal        GoalLevel
	Phase       Phase
	Performance Performance
}

// Valid reports whether every field is a known value.
func (c Context) Valid() bool {
	return c.Goal >= PersonGoal && c.Goal <= BaselineGoal &&
		c.Phase >= PhaseStart && c.Phase <= PhaseEnd &&
		c.Performance >= Met && c.Performance <= MuchRegressed
}

func (c Context) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Goal, c.Phase, c.Performance)
}

// All enumerates every context.
func All() []Context {
	out := make([]Context, 0, len(goalNames)*len(phaseNames)*len(performanceNames))
	for _, g := range Goals() {
		for _, ph := range Phases() {
			for _, p := range Performances() {
				out = append(out, Context{Goal: g, Phase: ph, Performance: p})
			}
		}
	}
	return out
}

// #endregion context

// #region parse

// ParseGoal accepts names with or without a _GOAL suffix.
func ParseGoal(s string) (GoalLevel, error) {
	s = strings.TrimSuffix(normalize(s), "_GOAL")
	for i, n := range goalNames {
		if n == s {
			return GoalLevel(i), nil
		}
	}
	return 0, fmt.Errorf("goal %q: %w", s, ErrUnknown)
}

// ParsePhase parses START or END.
func ParsePhase(s string) (Phase, error) {
	s = normalize(s)
	for i, n := range phaseNames {
		if n == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("phase %q: %w", s, ErrUnknown)
}

// ParsePerformance parses names such as MUCH_IMPROVED.
func ParsePerformance(s string) (Performance, error) {
	s = normalize(s)
	for i, n := range performanceNames {
		if n == s {
			return Performance(i), nil
		}
	}
	return 0, fmt.Errorf("performance %q: %w", s, ErrUnknown)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
}

// #endregion parse
