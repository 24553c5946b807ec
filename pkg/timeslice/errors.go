package timeslice

import "fmt"

// Kind classifies a timeslice error.
type Kind int

const (
	// InvalidBoundary is returned when a slice is built with start after end,
	// or from text that does not describe a slice.
	InvalidBoundary Kind = iota + 1
	// InvalidOperand is returned when an operation receives an operand that is
	// neither a Slice nor a non-nil Set.
	InvalidOperand
	// InvalidElement is returned when a set is built from something that is not
	// a slice.
	InvalidElement
	// EmptySet is returned by Min and Max on a set without slices.
	EmptySet
	// Unimplemented is returned for cadences the range generator does not support.
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case InvalidBoundary:
		return "invalid boundary"
	case InvalidOperand:
		return "invalid operand"
	case InvalidElement:
		return "invalid element"
	case EmptySet:
		return "empty set"
	case Unimplemented:
		return "unimplemented"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type of the package.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "timeslice: " + e.Kind.String()
	}
	return fmt.Sprintf("timeslice: %s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same kind, so the sentinels
// below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidBoundary = &Error{Kind: InvalidBoundary}
	ErrInvalidOperand  = &Error{Kind: InvalidOperand}
	ErrInvalidElement  = &Error{Kind: InvalidElement}
	ErrEmptySet        = &Error{Kind: EmptySet}
	ErrUnimplemented   = &Error{Kind: Unimplemented}
)

func newError(k Kind, format string, args ...any) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}
