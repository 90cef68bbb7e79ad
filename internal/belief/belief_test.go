package belief

import (
	"errors"
	"math"
	"testing"

	"github.com/danielpatrickdp/coaching-policy/internal/codec"
)

func TestPoint(t *testing.T) {
	d, err := Point(2)
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	if d.Of(2) != 1 || d.Of(1) != 0 {
		t.Fatalf("unexpected point distribution %v", d)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := Point(0); !errors.Is(err, codec.ErrInvalidStyle) {
		t.Fatalf("expected ErrInvalidStyle, got %v", err)
	}
}

func TestPrior(t *testing.T) {
	d, err := Prior(codec.Physio, 3)
	if err != nil {
		t.Fatalf("Prior: %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.Of(9) != 0.75 {
		t.Errorf("expected 0.75 on style 9, got %g", d.Of(9))
	}
	for s := codec.Style(1); s <= 6; s++ {
		if d.Of(s) != 0 {
			t.Errorf("sport style %d should have no mass", s)
		}
	}
	if math.Abs(d.Of(7)-0.05) > 1e-12 {
		t.Errorf("expected 0.05 on style 7, got %g", d.Of(7))
	}

	if _, err := Prior(codec.Sport, 7); !errors.Is(err, ErrInvalidBelief) {
		t.Errorf("expected ErrInvalidBelief for ability 7, got %v", err)
	}
}

func TestFromSlice(t *testing.T) {
	if _, err := FromSlice([]float64{1}); !errors.Is(err, ErrInvalidBelief) {
		t.Errorf("short slice: expected ErrInvalidBelief, got %v", err)
	}
	v := make([]float64, 12)
	v[0], v[1] = 0.5, 0.6
	if _, err := FromSlice(v); !errors.Is(err, ErrInvalidBelief) {
		t.Errorf("mass 1.1: expected ErrInvalidBelief, got %v", err)
	}
	v[1] = -0.5
	if _, err := FromSlice(v); !errors.Is(err, ErrInvalidBelief) {
		t.Errorf("negative: expected ErrInvalidBelief, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	var d Distribution
	d[0], d[11] = 2, 6
	n, err := d.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if n.Of(1) != 0.25 || n.Of(12) != 0.75 {
		t.Fatalf("unexpected normalized distribution %v", n)
	}
	if d.Of(1) != 2 {
		t.Fatal("Normalize must not modify its receiver")
	}
	if _, err := (Distribution{}).Normalize(); !errors.Is(err, ErrInvalidBelief) {
		t.Fatalf("expected ErrInvalidBelief, got %v", err)
	}
}
