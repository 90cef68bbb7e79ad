package policy

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
	"github.com/danielpatrickdp/coaching-policy/internal/sampler"
	"github.com/danielpatrickdp/coaching-policy/internal/validity"
)

// #region policy

// Policy picks the next behaviour for one session. It holds the session's
// sampler and belief; the compiled tables behind the sampler are shared.
type Policy struct {
	sampler Sampler
	belief  belief.Distribution
	config  Config
	logger  *zap.Logger
}

// New creates a policy. A nil logger logs nowhere.
func New(s Sampler, bel belief.Distribution, config Config, logger *zap.Logger) (*Policy, error) {
	if err := bel.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Policy{
		sampler: s,
		belief:  bel,
		config:  config.withDefaults(),
		logger:  logger,
	}, nil
}

// NewSeeded creates a policy over shared tables with its own seeded sampler.
func NewSeeded(tables *reward.Tables, bel belief.Distribution, seed uint64, config Config, logger *zap.Logger) (*Policy, error) {
	return New(sampler.NewSeeded(tables, seed), bel, config, logger)
}

// Belief returns the belief the policy observes with.
func (p *Policy) Belief() belief.Distribution {
	return p.belief
}

// #endregion policy

// #region get-behaviour

// GetBehaviour returns a behaviour legal in ctx, drawn from state.
func (p *Policy) GetBehaviour(state codec.State, ctx interaction.Context) (behaviour.Behaviour, error) {
	d, err := p.Decide(state, ctx)
	if err != nil {
		return 0, err
	}
	return d.Behaviour, nil
}

// Decide runs the draw-and-repair loop:
//
//  1. PERSON/END returns End without drawing.
//  2. Draw from state. While the draw is illegal:
//     at ACTION level answer Silence;
//     otherwise redraw up to MaxRetries times, then collapse a
//     manual-manipulation compound to its atomic act, then advance the chain
//     with the rejected behaviour (End advances as Start) and start over.
//
// At most MaxDraws behaviours are drawn before ErrValidityExhausted.
func (p *Policy) Decide(state codec.State, ctx interaction.Context) (Decision, error) {
	if !ctx.Valid() {
		return Decision{}, fmt.Errorf("context %s: %w", ctx, interaction.ErrUnknown)
	}
	if !state.Valid() {
		return Decision{}, fmt.Errorf("state %d: %w", int(state), codec.ErrInvalidState)
	}

	d := Decision{State: state}
	if ctx.Goal == interaction.PersonGoal && ctx.Phase == interaction.PhaseEnd {
		d.Behaviour = behaviour.End
		d.Path = append(d.Path, StepAccepted)
		return d, nil
	}

	valid := validity.Valid(ctx)
	b, err := p.draw(&d, StepSampling)
	if err != nil {
		return d, err
	}

	retries := 0
	for !valid.Has(b) {
		if ctx.Goal == interaction.ActionGoal {
			b = behaviour.Silence
			d.Path = append(d.Path, StepSilenced)
			break
		}

		if retries < p.config.MaxRetries {
			if d.Draws >= p.config.MaxDraws {
				return d, p.exhausted(d, ctx)
			}
			retries++
			if b, err = p.draw(&d, StepRetrying); err != nil {
				return d, err
			}
			continue
		}

		if c, ok := Canonical(b); ok {
			p.logger.Debug("canonicalized behaviour",
				zap.Stringer("from", b),
				zap.Stringer("to", c),
				zap.Stringer("context", ctx),
			)
			b = c
			d.Path = append(d.Path, StepCanonicalizing)
			continue
		}

		if d.Draws >= p.config.MaxDraws {
			return d, p.exhausted(d, ctx)
		}
		action := b
		if action == behaviour.End {
			action = behaviour.Start
		}
		next, err := p.sampler.SampleObservation(d.State, action, p.belief)
		if err != nil {
			return d, fmt.Errorf("advance from state %d: %w", int(d.State), err)
		}
		p.logger.Debug("advanced chain",
			zap.Int("from_state", int(d.State)),
			zap.Int("to_state", int(next)),
			zap.Stringer("action", action),
			zap.Stringer("context", ctx),
		)
		d.State = next
		d.Advances++
		d.Path = append(d.Path, StepAdvancing)
		retries = 0
		if b, err = p.draw(&d, StepSampling); err != nil {
			return d, err
		}
	}

	d.Behaviour = b
	d.Path = append(d.Path, StepAccepted)
	return d, nil
}

func (p *Policy) draw(d *Decision, step Step) (behaviour.Behaviour, error) {
	b, err := p.sampler.SampleBehaviour(d.State)
	if err != nil {
		return 0, fmt.Errorf("sample from state %d: %w", int(d.State), err)
	}
	d.Draws++
	d.Path = append(d.Path, step)
	return b, nil
}

func (p *Policy) exhausted(d Decision, ctx interaction.Context) error {
	p.logger.Warn("no valid behaviour found",
		zap.Int("state", int(d.State)),
		zap.Int("draws", d.Draws),
		zap.Int("advances", d.Advances),
		zap.Stringer("context", ctx),
	)
	return fmt.Errorf("%d draws at %s: %w", d.Draws, ctx, ErrValidityExhausted)
}

// #endregion get-behaviour

// #region get-observation

// GetObservation advances the chain after behaviour b was performed, drawing
// the next style from the policy's belief.
func (p *Policy) GetObservation(state codec.State, b behaviour.Behaviour) (codec.State, error) {
	return p.sampler.SampleObservation(state, b, p.belief)
}

// #endregion get-observation
