package game

import (
	"slices"

	"github.com/dolthub/swiss"
)

const minSetSize = 8

// CoordinateSet is an unordered set of coordinates backed by a swiss table.
type CoordinateSet struct {
	m *swiss.Map[Coordinate, struct{}]
}

func NewCoordinateSet(sizeHint int, coords ...Coordinate) *CoordinateSet {
	sizeHint = max(sizeHint, len(coords), minSetSize)
	s := &CoordinateSet{m: swiss.NewMap[Coordinate, struct{}](uint32(sizeHint))}
	s.AddAll(coords...)
	return s
}

func (s *CoordinateSet) Add(c Coordinate) {
	s.m.Put(c, struct{}{})
}

func (s *CoordinateSet) AddAll(coords ...Coordinate) {
	for _, c := range coords {
		s.m.Put(c, struct{}{})
	}
}

// Remove deletes c and reports whether it was present.
func (s *CoordinateSet) Remove(c Coordinate) bool {
	return s.m.Delete(c)
}

func (s *CoordinateSet) Contains(c Coordinate) bool {
	return s.m.Has(c)
}

func (s *CoordinateSet) Len() int {
	return s.m.Count()
}

func (s *CoordinateSet) IsEmpty() bool {
	return s.m.Count() == 0
}

func (s *CoordinateSet) Clear() {
	s.m.Clear()
}

// Slice returns the members in ascending coordinate order.
func (s *CoordinateSet) Slice() []Coordinate {
	out := make([]Coordinate, 0, s.m.Count())
	s.m.Iter(func(c Coordinate, _ struct{}) (stop bool) {
		out = append(out, c)
		return false
	})
	slices.SortFunc(out, Coordinate.Compare)
	return out
}

// Intersects reports whether any coordinate is in both sets.
func (s *CoordinateSet) Intersects(other *CoordinateSet) bool {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	found := false
	small.m.Iter(func(c Coordinate, _ struct{}) (stop bool) {
		found = large.Contains(c)
		return found
	})
	return found
}
