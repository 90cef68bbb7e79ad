package sampler

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
	"github.com/danielpatrickdp/coaching-policy/internal/belief"
	"github.com/danielpatrickdp/coaching-policy/internal/codec"
	"github.com/danielpatrickdp/coaching-policy/internal/reward"
)

func defaultTables(t *testing.T) *reward.Tables {
	t.Helper()
	tables, err := reward.CompileAll(reward.DefaultTable())
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	return tables
}

func point(t *testing.T, s codec.Style) belief.Distribution {
	t.Helper()
	d, err := belief.Point(s)
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	return d
}

func TestSampleBehaviourDeterministic(t *testing.T) {
	tables := defaultTables(t)
	a := NewSeeded(tables, 7)
	b := NewSeeded(tables, 7)
	for i := 0; i < 500; i++ {
		st := codec.State(i % codec.StateCount)
		x, err := a.SampleBehaviour(st)
		if err != nil {
			t.Fatalf("SampleBehaviour: %v", err)
		}
		y, _ := b.SampleBehaviour(st)
		if x != y {
			t.Fatalf("draw %d diverged: %s vs %s", i, x, y)
		}
	}
	if a.Draws() != 500 {
		t.Fatalf("expected 500 draws, got %d", a.Draws())
	}
}

func TestSampleBehaviourStaysOnTrack(t *testing.T) {
	s := NewSeeded(defaultTables(t), 11)
	for n := 0; n < codec.StateCount; n++ {
		d, _ := codec.Decode(codec.State(n))
		for i := 0; i < 20; i++ {
			b, err := s.SampleBehaviour(codec.State(n))
			if err != nil {
				t.Fatalf("SampleBehaviour(%d): %v", n, err)
			}
			if !codec.Representable(d.Style, b) {
				t.Fatalf("state %d (style %d) drew %s which is not on its track", n, d.Style, b)
			}
		}
	}
}

func TestSampleBehaviourFrequencies(t *testing.T) {
	tables := defaultTables(t)
	s := New(tables, rand.NewPCG(1, 2))
	const n = 200000
	var counts [behaviour.Count]int
	for i := 0; i < n; i++ {
		b, err := s.SampleBehaviour(0)
		if err != nil {
			t.Fatalf("SampleBehaviour: %v", err)
		}
		counts[b]++
	}
	row, _ := tables.Row(1, behaviour.Start)
	for b, p := range row {
		got := float64(counts[b]) / n
		// five standard deviations of a binomial proportion
		tol := 5*math.Sqrt(p*(1-p)/n) + 1e-4
		if math.Abs(got-p) > tol {
			t.Errorf("%s: frequency %.5f, probability %.5f", behaviour.Behaviour(b), got, p)
		}
	}
}

func TestSampleBehaviourInvalidState(t *testing.T) {
	s := NewSeeded(defaultTables(t), 1)
	for _, st := range []codec.State{-1, 588} {
		if _, err := s.SampleBehaviour(st); !errors.Is(err, codec.ErrInvalidState) {
			t.Errorf("state %d: expected ErrInvalidState, got %v", st, err)
		}
	}
	if s.Draws() != 0 {
		t.Fatalf("failed draws must not count, got %d", s.Draws())
	}
}

func TestSampleObservationStyleSwitch(t *testing.T) {
	s := NewSeeded(defaultTables(t), 3)
	next, err := s.SampleObservation(44, behaviour.End, point(t, 2))
	if err != nil {
		t.Fatalf("SampleObservation: %v", err)
	}
	d, err := codec.Decode(next)
	if err != nil {
		t.Fatalf("Decode(%d): %v", next, err)
	}
	if d.Style != 2 || d.Behaviour != behaviour.End {
		t.Fatalf("expected style 2 End, got %+v", d)
	}
	if next < 45 || next >= 90 {
		t.Fatalf("state %d outside style 2 range", next)
	}
}

func TestSampleObservationCrossTrack(t *testing.T) {
	s := NewSeeded(defaultTables(t), 3)
	next, err := s.SampleObservation(13, behaviour.Praise, point(t, 10))
	if err != nil {
		t.Fatalf("SampleObservation: %v", err)
	}
	want, _ := codec.Encode(10, behaviour.Praise)
	if next != want {
		t.Fatalf("expected %d, got %d", want, next)
	}
}

func TestSampleObservationStaysPut(t *testing.T) {
	s := NewSeeded(defaultTables(t), 5)
	physio, _ := codec.Encode(8, behaviour.HustleConsole)

	// physio-only behaviour cannot move onto a sport style
	next, err := s.SampleObservation(physio, behaviour.HustleConsole, point(t, 1))
	if err != nil {
		t.Fatalf("SampleObservation: %v", err)
	}
	if next != physio {
		t.Fatalf("expected state to stay at %d, got %d", physio, next)
	}

	// sport-only compound cannot move onto a physio style
	next, err = s.SampleObservation(29, behaviour.PostInstructionNegativeScold, point(t, 12))
	if err != nil {
		t.Fatalf("SampleObservation: %v", err)
	}
	if next != 29 {
		t.Fatalf("expected state to stay at 29, got %d", next)
	}
}

func TestSampleObservationAlwaysDecodes(t *testing.T) {
	s := NewSeeded(defaultTables(t), 9)
	uniform := belief.Distribution{}
	for i := range uniform {
		uniform[i] = 1.0 / 12
	}
	st := codec.State(0)
	for i := 0; i < 5000; i++ {
		b := behaviour.Behaviour(i % behaviour.Count)
		next, err := s.SampleObservation(st, b, uniform)
		if err != nil {
			t.Fatalf("SampleObservation: %v", err)
		}
		if _, err := codec.Decode(next); err != nil {
			t.Fatalf("state %d does not decode: %v", next, err)
		}
		st = next
	}
}

func TestSampleObservationErrors(t *testing.T) {
	s := NewSeeded(defaultTables(t), 5)
	if _, err := s.SampleObservation(600, behaviour.Praise, point(t, 1)); !errors.Is(err, codec.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if _, err := s.SampleObservation(0, behaviour.Behaviour(80), point(t, 1)); !errors.Is(err, behaviour.ErrInvalidBehaviour) {
		t.Errorf("expected ErrInvalidBehaviour, got %v", err)
	}
	if _, err := s.SampleObservation(0, behaviour.Praise, belief.Distribution{}); !errors.Is(err, belief.ErrInvalidBelief) {
		t.Errorf("expected ErrInvalidBelief, got %v", err)
	}
}
