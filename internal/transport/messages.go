package transport

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/interaction"
)

// #region field-names
const (
	fieldSessionID   = "session_id"
	fieldBelief      = "belief"
	fieldSeed        = "seed"
	fieldState       = "state"
	fieldGoal        = "goal"
	fieldPhase       = "phase"
	fieldPerformance = "performance"
	fieldBehaviour   = "behaviour"
	fieldCode        = "code"
	fieldDraws       = "draws"
	fieldAdvances    = "advances"
	fieldStep        = "step"
)
// #endregion field-names

// errBadField marks a request field that is missing or has the wrong type.
var errBadField = errors.New("bad request field")

// #region types
// BehaviourResult is the decoded GetBehaviour response.
type BehaviourResult struct {
	Behaviour behaviour.Behaviour
	State     codec.State // state the behaviour was drawn from, after any advance
	Draws     int
	Advances  int
	Step      string
}
// #endregion types

// #region readers
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("missing field %q: %w", key, errBadField)
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q is not a string: %w", key, errBadField)
	}
	return str.StringValue, nil
}

func intField(s *structpb.Struct, key string) (int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q: %w", key, errBadField)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("field %q is not a number: %w", key, errBadField)
	}
	f := num.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("field %q is not an integer (%g): %w", key, f, errBadField)
	}
	return int(f), nil
}

func stateField(s *structpb.Struct) (codec.State, error) {
	n, err := intField(s, fieldState)
	if err != nil {
		return 0, err
	}
	st := codec.State(n)
	if !st.Valid() {
		return 0, fmt.Errorf("state %d: %w", n, codec.ErrInvalidState)
	}
	return st, nil
}

// behaviourField accepts either a name ("PRAISE") or a numeric code.
func behaviourField(s *structpb.Struct) (behaviour.Behaviour, error) {
	if _, ok := s.GetFields()[fieldBehaviour].GetKind().(*structpb.Value_NumberValue); ok {
		n, err := intField(s, fieldBehaviour)
		if err != nil {
			return 0, err
		}
		return behaviour.FromInt(n)
	}
	name, err := stringField(s, fieldBehaviour)
	if err != nil {
		return 0, err
	}
	return behaviour.Parse(name)
}

func contextFields(s *structpb.Struct) (interaction.Context, error) {
	var ctx interaction.Context
	g, err := stringField(s, fieldGoal)
	if err != nil {
		return ctx, err
	}
	if ctx.Goal, err = interaction.ParseGoal(g); err != nil {
		return ctx, err
	}
	p, err := stringField(s, fieldPhase)
	if err != nil {
		return ctx, err
	}
	if ctx.Phase, err = interaction.ParsePhase(p); err != nil {
		return ctx, err
	}
	perf, err := stringField(s, fieldPerformance)
	if err != nil {
		return ctx, err
	}
	if ctx.Performance, err = interaction.ParsePerformance(perf); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func beliefField(s *structpb.Struct) ([]float64, bool, error) {
	v, ok := s.GetFields()[fieldBelief]
	if !ok {
		return nil, false, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, false, fmt.Errorf("field %q is not a list: %w", fieldBelief, errBadField)
	}
	out := make([]float64, 0, len(list.GetValues()))
	for i, e := range list.GetValues() {
		num, ok := e.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, false, fmt.Errorf("belief[%d] is not a number: %w", i, errBadField)
		}
		out = append(out, num.NumberValue)
	}
	return out, true, nil
}
// #endregion readers

// #region writers
func behaviourRequest(sessionID string, state codec.State, ctx interaction.Context) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldSessionID:   sessionID,
		fieldState:       int(state),
		fieldGoal:        ctx.Goal.String(),
		fieldPhase:       ctx.Phase.String(),
		fieldPerformance: ctx.Performance.String(),
	})
}

func decodeBehaviourResult(s *structpb.Struct) (BehaviourResult, error) {
	var r BehaviourResult
	code, err := intField(s, fieldCode)
	if err != nil {
		return r, err
	}
	if r.Behaviour, err = behaviour.FromInt(code); err != nil {
		return r, err
	}
	if r.State, err = stateField(s); err != nil {
		return r, err
	}
	if r.Draws, err = intField(s, fieldDraws); err != nil {
		return r, err
	}
	if r.Advances, err = intField(s, fieldAdvances); err != nil {
		return r, err
	}
	if r.Step, err = stringField(s, fieldStep); err != nil {
		return r, err
	}
	return r, nil
}
// #endregion writers
