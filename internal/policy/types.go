package policy

// #region imports
import (
	"errors"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
)

// #endregion

// #region errors

// ErrValidityExhausted is returned when no valid behaviour was found within
// Config.MaxDraws draws. It is fatal for the call.
var ErrValidityExhausted = errors.New("validity search exhausted")

// #endregion

// #region config

// Config bounds the repair loop.
type Config struct {
	MaxRetries int // redraws from the same state before repair (default 10)
	MaxDraws   int // hard cap on draws per decision (default 1000)
}

// DefaultConfig returns the standard bounds.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 10,
		MaxDraws:   1000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.MaxDraws <= 0 {
		c.MaxDraws = d.MaxDraws
	}
	return c
}

// #endregion

// #region step

// Step is a stage of the repair loop.
type Step string

const (
	StepSampling       Step = "sampling"
	StepRetrying       Step = "retrying"
	StepCanonicalizing Step = "canonicalizing"
	StepAdvancing      Step = "advancing"
	StepSilenced       Step = "silenced"
	StepAccepted       Step = "accepted"
)

// #endregion

// #region decision

// Decision is the outcome of one GetBehaviour call.
type Decision struct {
	Behaviour behaviour.Behaviour
	State     codec.State // state after any chain advance; equals the input otherwise
	Draws     int
	Advances  int
	Path      []Step
}

// Final returns the last step taken.
func (d Decision) Final() Step {
	if len(d.Path) == 0 {
		return ""
	}
	return d.Path[len(d.Path)-1]
}

// #endregion

// #region interfaces

// Sampler draws behaviours and observations. *sampler.Sampler implements it.
type Sampler interface {
	SampleBehaviour(state codec.State) (behaviour.Behaviour, error)
	SampleObservation(state codec.State, b behaviour.Behaviour, bel belief.Distribution) (codec.State, error)
}

// #endregion
