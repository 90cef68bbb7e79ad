package behaviour

import (
	"errors"
	"testing"
)

func TestCount(t *testing.T) {
	if Count != 68 {
		t.Fatalf("expected 68 behaviours, got %d", Count)
	}
	if End != 67 {
		t.Fatalf("expected End=67, got %d", End)
	}
	if FirstPhysioOnly != 44 {
		t.Fatalf("expected physio block to start at 44, got %d", FirstPhysioOnly)
	}
}

func TestNamesUniqueAndParseable(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range All() {
		name := b.String()
		if name == "" {
			t.Fatalf("empty name for %d", b)
		}
		if seen[name] {
			t.Fatalf("duplicate name %s", name)
		}
		seen[name] = true

		got, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%s): %v", name, err)
		}
		if got != b {
			t.Fatalf("Parse(%s) = %d, want %d", name, got, b)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("DANCE")
	if !errors.Is(err, ErrInvalidBehaviour) {
		t.Fatalf("expected ErrInvalidBehaviour, got %v", err)
	}
}

func TestFromInt(t *testing.T) {
	if _, err := FromInt(-1); !errors.Is(err, ErrInvalidBehaviour) {
		t.Errorf("expected error for -1, got %v", err)
	}
	if _, err := FromInt(68); !errors.Is(err, ErrInvalidBehaviour) {
		t.Errorf("expected error for 68, got %v", err)
	}
	b, err := FromInt(13)
	if err != nil || b != Praise {
		t.Errorf("FromInt(13) = %v, %v", b, err)
	}
}

func TestComponents(t *testing.T) {
	parts := ManualManipulationQuestioning.Components()
	if len(parts) != 2 || parts[0] != ManualManipulation || parts[1] != Questioning {
		t.Fatalf("unexpected components %v", parts)
	}
	if !PreInstructionFirstName.Involves(FirstName) {
		t.Error("PREINSTRUCTION_FIRSTNAME should involve FIRSTNAME")
	}
	if Praise.IsCompound() || Start.IsCompound() || End.IsCompound() {
		t.Error("atomic and marker codes must not be compound")
	}

	// every compound is built from exactly two atomic acts
	for _, b := range All() {
		if !b.IsCompound() {
			continue
		}
		parts := b.Components()
		if len(parts) != 2 {
			t.Fatalf("%s: expected 2 components, got %d", b, len(parts))
		}
		for _, p := range parts {
			if p.IsCompound() || p == Start || p == End || p == Silence {
				t.Fatalf("%s: component %s is not an atomic act", b, p)
			}
		}
	}
}

func TestPhysioOnly(t *testing.T) {
	count := 0
	for _, b := range All() {
		if b.PhysioOnly() {
			count++
		}
	}
	if count != 23 {
		t.Fatalf("expected 23 physio-only compounds, got %d", count)
	}
	if End.PhysioOnly() || ManualManipulationHustle.PhysioOnly() {
		t.Error("End and sport compounds are not physio-only")
	}
}

func TestSet(t *testing.T) {
	s := NewSet(Praise, End, Silence, Behaviour(99))
	if s.Len() != 3 {
		t.Fatalf("expected 3 members, got %d", s.Len())
	}
	if !s.Has(End) || !s.Has(Praise) || s.Has(Scold) {
		t.Fatalf("unexpected membership: %s", s)
	}

	o := NewSet(Praise, Scold)
	if got := s.Intersect(o).Slice(); len(got) != 1 || got[0] != Praise {
		t.Errorf("intersect = %v", got)
	}
	if got := s.Union(o).Len(); got != 4 {
		t.Errorf("union len = %d", got)
	}
	if !NewSet().Empty() {
		t.Error("expected empty set")
	}
	if s.String() != "{SILENCE,PRAISE,END}" {
		t.Errorf("unexpected string %s", s.String())
	}
}
