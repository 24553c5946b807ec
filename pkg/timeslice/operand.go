package timeslice

import "time"

// Operand is either a Slice or a *Set. The set of implementations is closed;
// the package functions below reject anything else with InvalidOperand.
type Operand interface {
	Duration() time.Duration
	String() string
	operand()
}

func (Slice) operand() {}
func (*Set) operand()  {}

func check(op Operand) error {
	switch v := op.(type) {
	case Slice:
		return nil
	case *Set:
		if v == nil {
			return newError(InvalidOperand, "nil set")
		}
		return nil
	default:
		return newError(InvalidOperand, "expected Slice or *Set, got %T", op)
	}
}

func asSet(op Operand) (*Set, error) {
	if err := check(op); err != nil {
		return nil, err
	}
	if s, ok := op.(Slice); ok {
		return NewSet(s), nil
	}
	return op.(*Set), nil
}

// Union returns the time covered by a or b.
func Union(a, b Operand) (*Set, error) {
	if sa, ok := a.(Slice); ok {
		if sb, ok := b.(Slice); ok {
			return sa.Union(sb), nil
		}
	}
	x, err := asSet(a)
	if err != nil {
		return nil, err
	}
	y, err := asSet(b)
	if err != nil {
		return nil, err
	}
	return x.AddSet(y), nil
}

// Difference returns the time covered by a but not by b.
func Difference(a, b Operand) (*Set, error) {
	if sa, ok := a.(Slice); ok {
		if sb, ok := b.(Slice); ok {
			return sa.Difference(sb), nil
		}
	}
	x, err := asSet(a)
	if err != nil {
		return nil, err
	}
	y, err := asSet(b)
	if err != nil {
		return nil, err
	}
	return x.SubSet(y), nil
}

// Intersection returns the time covered by both a and b.
func Intersection(a, b Operand) (*Set, error) {
	x, err := asSet(a)
	if err != nil {
		return nil, err
	}
	y, err := asSet(b)
	if err != nil {
		return nil, err
	}
	return x.IntersectSet(y), nil
}

// Contains reports whether b is entirely covered by a.
func Contains(a, b Operand) (bool, error) {
	if err := check(b); err != nil {
		return false, err
	}
	switch x := a.(type) {
	case Slice:
		switch y := b.(type) {
		case Slice:
			return x.ContainsSlice(y), nil
		case *Set:
			return x.ContainsSet(y), nil
		}
	case *Set:
		if x == nil {
			return false, newError(InvalidOperand, "nil set")
		}
		switch y := b.(type) {
		case Slice:
			return x.ContainsSlice(y), nil
		case *Set:
			return x.ContainsSet(y), nil
		}
	}
	return false, newError(InvalidOperand, "expected Slice or *Set, got %T", a)
}

// Equal reports whether a and b are of the same kind and cover the same
// slices. It never fails; operands of different kinds are not equal.
func Equal(a, b Operand) bool {
	switch x := a.(type) {
	case Slice:
		y, ok := b.(Slice)
		return ok && x.Equal(y)
	case *Set:
		y, ok := b.(*Set)
		return ok && x != nil && y != nil && x.Equal(y)
	}
	return false
}

// Compare orders two slices by duration. Ordering is only defined between
// slices.
func Compare(a, b Operand) (int, error) {
	x, ok := a.(Slice)
	if !ok {
		return 0, newError(InvalidOperand, "ordering expects a Slice, got %T", a)
	}
	y, ok := b.(Slice)
	if !ok {
		return 0, newError(InvalidOperand, "ordering expects a Slice, got %T", b)
	}
	return x.Compare(y), nil
}
