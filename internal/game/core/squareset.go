package core

import "sort"

// SquareSet is a set of squares keyed by Position.Key
type SquareSet map[string]struct{}

// NewSquareSet builds a set from the given positions
func NewSquareSet(positions ...Position) SquareSet {
	s := make(SquareSet, len(positions))
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

func (s SquareSet) Has(p Position) bool {
	if s == nil {
		return false
	}
	_, ok := s[p.Key()]
	return ok
}

func (s SquareSet) Add(p Position) {
	s[p.Key()] = struct{}{}
}

// Clone returns an independent copy; a nil set clones to an empty one
func (s SquareSet) Clone() SquareSet {
	out := make(SquareSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Positions returns the members in row-major order
func (s SquareSet) Positions() []Position {
	out := make([]Position, 0, len(s))
	for k := range s {
		if p, err := ParseKey(k); err == nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
