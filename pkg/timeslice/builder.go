package timeslice

import (
	"errors"
	"time"
)

// SetBuilder collects slices to add and remove and produces a Set. Invalid
// input is recorded rather than aborting the build; Set returns everything
// that went wrong alongside the set built from the valid input.
//
// The zero value is ready to use.
type SetBuilder struct {
	in   []Slice
	out  []Slice
	errs error
}

// AddRange adds [start, end).
func (s *SetBuilder) AddRange(start, end time.Time) {
	r, err := New(start, end)
	if err != nil {
		s.errs = errors.Join(s.errs, err)
		return
	}
	s.AddSlice(r)
}

func (s *SetBuilder) AddSlice(r Slice) {
	if len(s.out) > 0 {
		s.normalize()
	}
	s.in = append(s.in, r)
}

// AddSet adds all slices of b.
func (s *SetBuilder) AddSet(b *Set) {
	if b == nil {
		return
	}
	for _, r := range b.slices {
		s.AddSlice(r)
	}
}

// Add adds a Slice or a Set.
func (s *SetBuilder) Add(op Operand) {
	switch v := op.(type) {
	case Slice:
		s.AddSlice(v)
	case *Set:
		if v == nil {
			s.errs = errors.Join(s.errs, newError(InvalidElement, "nil set"))
			return
		}
		s.AddSet(v)
	default:
		s.errs = errors.Join(s.errs, newError(InvalidElement, "expected Slice or *Set, got %T", op))
	}
}

// RemoveRange removes [start, end) from s.
func (s *SetBuilder) RemoveRange(start, end time.Time) {
	r, err := New(start, end)
	if err != nil {
		s.errs = errors.Join(s.errs, err)
		return
	}
	s.RemoveSlice(r)
}

func (s *SetBuilder) RemoveSlice(r Slice) {
	s.out = append(s.out, r)
}

// RemoveSet removes all slices of b from s.
func (s *SetBuilder) RemoveSet(b *Set) {
	if b == nil {
		return
	}
	s.out = append(s.out, b.slices...)
}

// normalize folds the pending additions and removals into s.in. Removals
// only apply to what was added before them.
func (s *SetBuilder) normalize() {
	set := NewSet(s.in...)
	for _, r := range s.out {
		set = set.Sub(r)
	}
	s.in = set.slices
	s.out = nil
}

// Set returns the set described by s and the errors recorded so far. The
// recorded errors are cleared.
func (s *SetBuilder) Set() (*Set, error) {
	s.normalize()
	set := &Set{
		slices: append([]Slice{}, s.in...),
	}
	errs := s.errs
	s.errs = nil
	return set, errs
}
