package codec

import (
	"errors"
	"testing"

	"github.com/danielpatrickdp/coaching-policy/internal/behaviour"
)

func TestStateSpaceSize(t *testing.T) {
	if SportStates != 270 {
		t.Fatalf("expected 270 sport states, got %d", SportStates)
	}
	if StateCount != 588 {
		t.Fatalf("expected 588 states, got %d", StateCount)
	}
}

func TestTrackOf(t *testing.T) {
	for _, s := range Styles() {
		tr, err := TrackOf(s)
		if err != nil {
			t.Fatalf("TrackOf(%d): %v", s, err)
		}
		want := Sport
		if s >= 7 {
			want = Physio
		}
		if tr != want {
			t.Errorf("style %d: expected %s, got %s", s, want, tr)
		}
	}
	for _, s := range []Style{0, 13, -1} {
		if _, err := TrackOf(s); !errors.Is(err, ErrInvalidStyle) {
			t.Errorf("style %d: expected ErrInvalidStyle, got %v", s, err)
		}
	}
}

func TestTrackBehaviours(t *testing.T) {
	if n := Behaviours(Sport).Len(); n != 45 {
		t.Errorf("sport track: expected 45 behaviours, got %d", n)
	}
	// 52 distinct non-End behaviours plus End
	if n := Behaviours(Physio).Len(); n != 53 {
		t.Errorf("physio track: expected 53 behaviours, got %d", n)
	}
	for _, b := range behaviour.All() {
		if b.PhysioOnly() && Behaviours(Sport).Has(b) {
			t.Errorf("%s is physio-only but on sport track", b)
		}
		if b.PhysioOnly() && !Behaviours(Physio).Has(b) {
			t.Errorf("%s is physio-only but missing from physio track", b)
		}
	}
	if !Behaviours(Sport).Has(behaviour.End) || !Behaviours(Physio).Has(behaviour.End) {
		t.Error("End must be on both tracks")
	}
}

func TestDecodeSport(t *testing.T) {
	d, err := Decode(0)
	if err != nil {
		t.Fatalf("Decode(0): %v", err)
	}
	if d.Style != 1 || d.Slot != 0 || d.Behaviour != behaviour.Start || d.Track != Sport {
		t.Fatalf("unexpected decode of 0: %+v", d)
	}

	d, _ = Decode(44)
	if d.Style != 1 || d.Slot != 44 || d.Behaviour != behaviour.End {
		t.Fatalf("unexpected decode of 44: %+v", d)
	}

	d, _ = Decode(45 + 13)
	if d.Style != 2 || d.Behaviour != behaviour.Praise {
		t.Fatalf("unexpected decode of 58: %+v", d)
	}

	d, _ = Decode(269)
	if d.Style != 6 || d.Behaviour != behaviour.End {
		t.Fatalf("unexpected decode of 269: %+v", d)
	}
}

func TestDecodePhysio(t *testing.T) {
	d, err := Decode(270)
	if err != nil {
		t.Fatalf("Decode(270): %v", err)
	}
	if d.Style != 7 || d.Slot != 0 || d.Track != Physio || d.Behaviour != behaviour.Start {
		t.Fatalf("unexpected decode of 270: %+v", d)
	}

	d, _ = Decode(270 + 53 + 52)
	if d.Style != 8 || d.Slot != 52 || d.Behaviour != behaviour.End {
		t.Fatalf("unexpected decode of physio End: %+v", d)
	}

	d, _ = Decode(587)
	if d.Style != 12 || d.Slot != 52 {
		t.Fatalf("unexpected decode of 587: %+v", d)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	for _, s := range []State{-1, 588, 10000} {
		if _, err := Decode(s); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Decode(%d): expected ErrInvalidState, got %v", s, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	pairs := 0
	for _, s := range Styles() {
		for _, b := range behaviour.All() {
			if !Representable(s, b) {
				continue
			}
			st, err := Encode(s, b)
			if err != nil {
				t.Fatalf("Encode(%d, %s): %v", s, b, err)
			}
			d, err := Decode(st)
			if err != nil {
				t.Fatalf("Decode(%d): %v", st, err)
			}
			if d.Style != s || d.Behaviour != b {
				t.Fatalf("round trip (%d,%s) -> %d -> (%d,%s)", s, b, st, d.Style, d.Behaviour)
			}
			pairs++
		}
	}
	if pairs != StateCount {
		t.Fatalf("expected %d representable pairs, got %d", StateCount, pairs)
	}
}

func TestDecodeEncodeEveryState(t *testing.T) {
	for n := 0; n < StateCount; n++ {
		d, err := Decode(State(n))
		if err != nil {
			t.Fatalf("Decode(%d): %v", n, err)
		}
		st, err := Encode(d.Style, d.Behaviour)
		if err != nil {
			t.Fatalf("Encode(%d, %s): %v", d.Style, d.Behaviour, err)
		}
		if int(st) != n {
			t.Fatalf("state %d re-encoded as %d", n, st)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode(1, behaviour.PraiseConsole); !errors.Is(err, ErrInvalidBehaviour) {
		t.Errorf("physio-only on sport: expected ErrInvalidBehaviour, got %v", err)
	}
	if _, err := Encode(7, behaviour.PostInstructionNegativeScold); !errors.Is(err, ErrInvalidBehaviour) {
		t.Errorf("sport-only on physio: expected ErrInvalidBehaviour, got %v", err)
	}
	if _, err := Encode(1, behaviour.Behaviour(70)); !errors.Is(err, ErrInvalidBehaviour) {
		t.Errorf("out of range: expected ErrInvalidBehaviour, got %v", err)
	}
	if _, err := Encode(0, behaviour.Praise); !errors.Is(err, ErrInvalidStyle) {
		t.Errorf("style 0: expected ErrInvalidStyle, got %v", err)
	}
}

func TestSlotBehaviour(t *testing.T) {
	b, err := SlotBehaviour(Sport, 44)
	if err != nil || b != behaviour.End {
		t.Fatalf("sport slot 44 = %s, %v", b, err)
	}
	if _, err := SlotBehaviour(Physio, 53); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("physio slot 53: expected ErrInvalidState, got %v", err)
	}
}
