package timeslice

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Slice is the half-open span of time [start, end). A Slice is a value and is
// never modified after construction.
//
// Two notions of comparison exist on a Slice: Equal compares position (both
// boundaries), while Compare, Less and friends compare magnitude (duration).
// Two disjoint slices of the same length are therefore not Equal but Compare
// as 0.
type Slice struct {
	start time.Time
	end   time.Time
}

// New returns the slice [start, end). start == end yields a zero-duration slice.
func New(start, end time.Time) (Slice, error) {
	if start.After(end) {
		return Slice{}, newError(InvalidBoundary, "start %s is after end %s",
			start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	}
	return Slice{start: start, end: end}, nil
}

// MustNew is New that panics on error.
func MustNew(start, end time.Time) Slice {
	s, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseSlice parses "<start>..<end>" where both times use layout. An empty
// layout means time.RFC3339.
func ParseSlice(str, layout string) (Slice, error) {
	if layout == "" {
		layout = time.RFC3339
	}
	h := strings.Index(str, "..")
	if h == -1 {
		return Slice{}, newError(InvalidBoundary, "no '..' in slice %q", str)
	}
	from, to := strings.TrimSpace(str[:h]), strings.TrimSpace(str[h+2:])
	start, err := time.Parse(layout, from)
	if err != nil {
		return Slice{}, newError(InvalidBoundary, "invalid start %q in slice %q", from, str)
	}
	end, err := time.Parse(layout, to)
	if err != nil {
		return Slice{}, newError(InvalidBoundary, "invalid end %q in slice %q", to, str)
	}
	return New(start, end)
}

// Start returns the inclusive lower bound of s.
func (s Slice) Start() time.Time { return s.start }

// End returns the exclusive upper bound of s.
func (s Slice) End() time.Time { return s.end }

func (s Slice) IsZero() bool { return s.Duration() == 0 }

func (s Slice) Duration() time.Duration { return s.end.Sub(s.start) }

// Seconds returns the duration of s in whole seconds, sub-second parts are
// truncated.
func (s Slice) Seconds() int64 { return int64(s.Duration() / time.Second) }

// Contains reports whether t lies in [start, end).
func (s Slice) Contains(t time.Time) bool {
	return !t.Before(s.start) && t.Before(s.end)
}

// ContainsSlice reports whether o is entirely covered by s. A zero-duration o
// has nothing in common with any slice and is never contained.
func (s Slice) ContainsSlice(o Slice) bool {
	i, ok := s.Intersect(o).Get()
	return ok && i.Duration() == o.Duration()
}

// ContainsSet reports whether every slice of o is contained by s.
func (s Slice) ContainsSet(o *Set) bool {
	for _, e := range o.list() {
		if !s.ContainsSlice(e) {
			return false
		}
	}
	return true
}

func (s Slice) Equal(o Slice) bool {
	return s.start.Equal(o.start) && s.end.Equal(o.end)
}

// Compare compares the durations of s and o.
func (s Slice) Compare(o Slice) int { return cmp.Compare(s.Duration(), o.Duration()) }

func (s Slice) Less(o Slice) bool           { return s.Compare(o) < 0 }
func (s Slice) LessOrEqual(o Slice) bool    { return s.Compare(o) <= 0 }
func (s Slice) Greater(o Slice) bool        { return s.Compare(o) > 0 }
func (s Slice) GreaterOrEqual(o Slice) bool { return s.Compare(o) >= 0 }

// Intersect returns the overlap of s and o. Slices that do not overlap, or
// that only meet at a single instant, have no intersection.
func (s Slice) Intersect(o Slice) mo.Option[Slice] {
	start := maxTime(s.start, o.start)
	end := minTime(s.end, o.end)
	if !start.Before(end) {
		return mo.None[Slice]()
	}
	return mo.Some(Slice{start: start, end: end})
}

// IntersectSet returns the parts of o that overlap s.
func (s Slice) IntersectSet(o *Set) *Set {
	return o.Intersect(s)
}

// Difference returns s minus o. The result holds zero, one or two slices.
// A zero-duration s yields an empty set.
func (s Slice) Difference(o Slice) *Set {
	return s.difference(o, false)
}

// DifferenceSet returns s minus every slice of o.
func (s Slice) DifferenceSet(o *Set) *Set {
	return NewSet(s).SubSet(o)
}

// difference removes o from s. In absolute mode the coverage shortcut is
// skipped and, when the overlap lies strictly inside o, the pieces are cut
// from o's boundaries instead of s's. Set.Add relies on this to split an
// incoming fragment against a stored slice.
func (s Slice) difference(o Slice, absolute bool) *Set {
	if !absolute && s.coveredBy(o) {
		return &Set{}
	}
	if s.Equal(o) {
		return &Set{}
	}
	i, ok := s.Intersect(o).Get()
	if !ok {
		return newSorted(s)
	}
	switch {
	case i.inMiddleOf(s):
		//       s
		// f-------------t
		//    f------t
		//       i
		return &Set{slices: []Slice{{start: s.start, end: i.start}, {start: i.end, end: s.end}}}
	case absolute && i.inMiddleOf(o):
		return &Set{slices: []Slice{{start: o.start, end: i.start}, {start: i.end, end: o.end}}}
	case i.Equal(s):
		return &Set{}
	case i.start.Equal(s.start):
		//   i
		// f------t
		// f----------t
		//       s
		return &Set{slices: []Slice{{start: i.end, end: s.end}}}
	default:
		//           i
		//        f------t
		//    f----------t
		//       s
		return &Set{slices: []Slice{{start: s.start, end: i.start}}}
	}
}

// Union returns a single slice spanning both when s and o overlap, and both
// slices in start order otherwise. Zero-duration operands are left out.
func (s Slice) Union(o Slice) *Set {
	if _, ok := s.Intersect(o).Get(); ok {
		return &Set{slices: []Slice{{start: minTime(s.start, o.start), end: maxTime(s.end, o.end)}}}
	}
	return NewSet(s, o)
}

// UnionSet returns o with s added.
func (s Slice) UnionSet(o *Set) *Set {
	return o.Add(s)
}

func (s Slice) String() string {
	return fmt.Sprintf("<Slice %s..%s>", s.start.Format(time.RFC3339Nano), s.end.Format(time.RFC3339Nano))
}

// coveredBy returns whether s is entirely contained within other.
func (s Slice) coveredBy(other Slice) bool {
	return !s.start.Before(other.start) && !s.end.After(other.end)
}

// inMiddleOf returns whether s is inside other, but not touching the edges of
// other.
func (s Slice) inMiddleOf(other Slice) bool {
	return other.start.Before(s.start) && s.end.Before(other.end)
}

func (s Slice) before(other Slice) bool {
	return s.start.Before(other.start)
}

type sliceDoc struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

func (s Slice) MarshalJSON() ([]byte, error) {
	return json.Marshal(sliceDoc{Start: s.start, End: s.end})
}

func (s *Slice) UnmarshalJSON(b []byte) error {
	var d sliceDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	n, err := New(d.Start, d.End)
	if err != nil {
		return err
	}
	*s = n
	return nil
}

func (s Slice) MarshalYAML() (interface{}, error) {
	return sliceDoc{Start: s.start, End: s.end}, nil
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
