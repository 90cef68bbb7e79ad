package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/policy"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Seed            uint64                  `json:"seed"`
	StartState      int                     `json:"start_state"`
	Belief          FixtureBelief           `json:"belief"`
	Config          FixtureConfig           `json:"config"`
	Turns           []FixtureTurn           `json:"turns"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results"`
}

// FixtureBelief is either an explicit 12-entry distribution or a prior.
type FixtureBelief struct {
	Distribution []float64 `json:"distribution,omitempty"`
	Track        string    `json:"track,omitempty"`
	Ability      int       `json:"ability,omitempty"`
}

// FixtureConfig mirrors policy.Config with JSON tags.
type FixtureConfig struct {
	MaxRetries int `json:"max_retries"`
	MaxDraws   int `json:"max_draws"`
}

// FixtureTurn is one recorded turn. Performance may be given directly or
// derived from the raw scores.
type FixtureTurn struct {
	TurnID      string   `json:"turn_id"`
	Goal        string   `json:"goal"`
	Phase       string   `json:"phase"`
	Performance string   `json:"performance,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Target      float64  `json:"target,omitempty"`
	Previous    float64  `json:"previous,omitempty"`
	Swapped     bool     `json:"swapped,omitempty"`
}

// FixtureExpectedResult pins the behaviour (and optionally the final step) of
// a turn. Turns without an entry are only checked for legality.
type FixtureExpectedResult struct {
	TurnID    string `json:"turn_id"`
	Behaviour string `json:"behaviour"`
	Step      string `json:"step,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the fixture as indented JSON.
func (f *Fixture) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// Start validates and returns the starting state.
func (f *Fixture) Start() (codec.State, error) {
	st := codec.State(f.StartState)
	if !st.Valid() {
		return 0, fmt.Errorf("start_state %d: %w", f.StartState, codec.ErrInvalidState)
	}
	return st, nil
}

// ToBelief builds the session belief.
func (fb *FixtureBelief) ToBelief() (belief.Distribution, error) {
	if len(fb.Distribution) > 0 {
		return belief.FromSlice(fb.Distribution)
	}
	track := codec.Sport
	switch fb.Track {
	case "", "sport":
	case "physio":
		track = codec.Physio
	default:
		return belief.Distribution{}, fmt.Errorf("unknown track %q: %w", fb.Track, belief.ErrInvalidBelief)
	}
	return belief.Prior(track, fb.Ability)
}

// ToPolicyConfig converts a FixtureConfig to a policy.Config. Zero fields
// take the policy defaults.
func (fc *FixtureConfig) ToPolicyConfig() policy.Config {
	return policy.Config{
		MaxRetries: fc.MaxRetries,
		MaxDraws:   fc.MaxDraws,
	}
}

// ToTurn converts a FixtureTurn to a domain Turn.
func (ft *FixtureTurn) ToTurn() (Turn, error) {
	var ctx interaction.Context
	var err error
	if ctx.Goal, err = interaction.ParseGoal(ft.Goal); err != nil {
		return Turn{}, fmt.Errorf("turn %s: %w", ft.TurnID, err)
	}
	if ctx.Phase, err = interaction.ParsePhase(ft.Phase); err != nil {
		return Turn{}, fmt.Errorf("turn %s: %w", ft.TurnID, err)
	}
	switch {
	case ft.Performance != "":
		if ctx.Performance, err = interaction.ParsePerformance(ft.Performance); err != nil {
			return Turn{}, fmt.Errorf("turn %s: %w", ft.TurnID, err)
		}
	case ft.Score != nil:
		ctx.Performance = interaction.Classify(*ft.Score, ft.Target, ft.Previous, ft.Swapped)
	default:
		return Turn{}, fmt.Errorf("turn %s: no performance or score: %w", ft.TurnID, interaction.ErrUnknown)
	}
	return Turn{TurnID: ft.TurnID, Context: ctx}, nil
}

// ToTurns converts every turn.
func (f *Fixture) ToTurns() ([]Turn, error) {
	turns := make([]Turn, len(f.Turns))
	for i := range f.Turns {
		t, err := f.Turns[i].ToTurn()
		if err != nil {
			return nil, err
		}
		turns[i] = t
	}
	return turns, nil
}

// Policy builds the seeded policy the fixture describes.
func (f *Fixture) Policy(tables *reward.Tables) (*policy.Policy, error) {
	bel, err := f.Belief.ToBelief()
	if err != nil {
		return nil, err
	}
	return policy.NewSeeded(tables, bel, f.Seed, f.Config.ToPolicyConfig(), nil)
}

// #endregion fixture-loader

// #region check

// Mismatch is one expected result the replay did not reproduce.
type Mismatch struct {
	TurnID   string
	Expected string
	Actual   string
}

// Check compares results against the fixture's expectations. Every result
// is also checked for legality against its context.
func (f *Fixture) Check(results []Result, legal func(interaction.Context, behaviour.Behaviour) bool) []Mismatch {
	byTurn := make(map[string]Result, len(results))
	var out []Mismatch
	for _, r := range results {
		byTurn[r.TurnID] = r
		if !legal(r.Context, r.Behaviour) {
			out = append(out, Mismatch{TurnID: r.TurnID, Expected: "legal behaviour", Actual: r.Behaviour.String()})
		}
	}
	for _, e := range f.ExpectedResults {
		r, ok := byTurn[e.TurnID]
		if !ok {
			out = append(out, Mismatch{TurnID: e.TurnID, Expected: e.Behaviour, Actual: "<missing>"})
			continue
		}
		if r.Behaviour.String() != e.Behaviour {
			out = append(out, Mismatch{TurnID: e.TurnID, Expected: e.Behaviour, Actual: r.Behaviour.String()})
		}
		if e.Step != "" && string(r.Final()) != e.Step {
			out = append(out, Mismatch{TurnID: e.TurnID, Expected: "step " + e.Step, Actual: "step " + string(r.Final())})
		}
	}
	return out
}

// FromResults builds a fixture that pins every result, for regression
// baselines exported from a live run.
func FromResults(description string, seed uint64, start codec.State, bel belief.Distribution, cfg policy.Config, results []Result) *Fixture {
	f := &Fixture{
		Description: description,
		Seed:        seed,
		StartState:  int(start),
		Belief:      FixtureBelief{Distribution: bel.Weights()},
		Config:      FixtureConfig{MaxRetries: cfg.MaxRetries, MaxDraws: cfg.MaxDraws},
	}
	for _, r := range results {
		f.Turns = append(f.Turns, FixtureTurn{
			TurnID:      r.TurnID,
			Goal:        r.Context.Goal.String(),
			Phase:       r.Context.Phase.String(),
			Performance: r.Context.Performance.String(),
		})
		f.ExpectedResults = append(f.ExpectedResults, FixtureExpectedResult{
			TurnID:    r.TurnID,
			Behaviour: r.Behaviour.String(),
			Step:      string(r.Final()),
		})
	}
	return f
}

// #endregion check
