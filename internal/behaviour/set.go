package behaviour

import (
	"math/bits"
	"strings"
)

// #region set

// Set is an immutable set of behaviours backed by a 68-bit mask.
type Set struct {
	lo, hi uint64
}

// NewSet builds a set from the given behaviours. Invalid codes are ignored.
func NewSet(bs ...Behaviour) Set {
	var s Set
	for _, b := range bs {
		s = s.With(b)
	}
	return s
}

// With returns a copy of s containing b.
func (s Set) With(b Behaviour) Set {
	switch {
	case !b.Valid():
	case b < 64:
		s.lo |= 1 << uint(b)
	default:
		s.hi |= 1 << uint(b-64)
	}
	return s
}

// Has reports membership.
func (s Set) Has(b Behaviour) bool {
	switch {
	case !b.Valid():
		return false
	case b < 64:
		return s.lo&(1<<uint(b)) != 0
	default:
		return s.hi&(1<<uint(b-64)) != 0
	}
}

// Len returns the number of members.
func (s Set) Len() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	return s.lo == 0 && s.hi == 0
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	return Set{lo: s.lo | o.lo, hi: s.hi | o.hi}
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	return Set{lo: s.lo & o.lo, hi: s.hi & o.hi}
}

// Slice returns the members in ascending code order.
func (s Set) Slice() []Behaviour {
	out := make([]Behaviour, 0, s.Len())
	for i := 0; i < Count; i++ {
		if s.Has(Behaviour(i)) {
			out = append(out, Behaviour(i))
		}
	}
	return out
}

func (s Set) String() string {
	members := s.Slice()
	parts := make([]string, len(members))
	for i, b := range members {
		parts[i] = b.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// #endregion set
