package timeslice

import (
	"encoding/json"
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Set is an ordered collection of slices that do not overlap. Methods that
// look like mutations (Add, Sub, ...) return a new Set and leave the receiver
// untouched, so a Set may be shared between goroutines freely.
//
// A nil *Set behaves as an empty set.
type Set struct {
	// slices is sorted ascending by start and no two of its slices intersect.
	// Zero-duration slices are never stored. The implementation of the
	// various methods relies on these properties.
	slices []Slice
}

// NewSet returns the union of the given slices. Every slice is folded in
// through Add, so overlapping input is resolved rather than copied.
func NewSet(slices ...Slice) *Set {
	r := &Set{}
	for _, s := range slices {
		r = r.Add(s)
	}
	return r
}

// newSorted wraps slices that are already known to be disjoint.
func newSorted(slices ...Slice) *Set {
	out := make([]Slice, 0, len(slices))
	for _, s := range slices {
		if !s.IsZero() {
			out = append(out, s)
		}
	}
	sortSlices(out)
	return &Set{slices: out}
}

func sortSlices(ss []Slice) {
	sort.Slice(ss, func(i, j int) bool { return ss[i].before(ss[j]) })
}

func (r *Set) list() []Slice {
	if r == nil {
		return nil
	}
	return r.slices
}

// Add returns r with s added. Only the parts of s that are not yet covered by
// r are inserted.
//
// The fragments of s still to be placed are kept in a queue. A fragment that
// intersects a stored slice is replaced by what remains of it outside that
// slice; a fragment that intersects nothing is accepted as is.
func (r *Set) Add(s Slice) *Set {
	stored := r.list()
	if s.IsZero() {
		return newSorted(stored...)
	}

	queue := []Slice{s}
	var accepted []Slice
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		split := false
		for _, q := range stored {
			if _, ok := p.Intersect(q).Get(); ok {
				queue = append(queue, p.difference(q, true).slices...)
				split = true
				break
			}
		}
		if !split {
			accepted = append(accepted, p)
		}
	}

	out := make([]Slice, 0, len(stored)+len(accepted))
	out = append(out, stored...)
	out = append(out, accepted...)
	sortSlices(out)
	return &Set{slices: out}
}

// AddSet returns the union of r and o.
func (r *Set) AddSet(o *Set) *Set {
	n := newSorted(r.list()...)
	for _, s := range o.list() {
		n = n.Add(s)
	}
	return n
}

// Sub returns r without the time covered by s.
func (r *Set) Sub(s Slice) *Set {
	queue := append([]Slice(nil), r.list()...)
	out := make([]Slice, 0, len(queue))
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		if q.Equal(s) {
			continue
		}
		i, ok := q.Intersect(s).Get()
		if !ok {
			out = append(out, q)
			continue
		}
		// the fragments are checked again on a later iteration
		queue = append(queue, q.Difference(i).slices...)
	}
	sortSlices(out)
	return &Set{slices: out}
}

// SubSet returns r without the time covered by o.
func (r *Set) SubSet(o *Set) *Set {
	n := newSorted(r.list()...)
	for _, s := range o.list() {
		n = n.Sub(s)
	}
	return n
}

// Intersect returns the parts of r that overlap s.
func (r *Set) Intersect(s Slice) *Set {
	var out []Slice
	for _, q := range r.list() {
		if i, ok := q.Intersect(s).Get(); ok {
			out = append(out, i)
		}
	}
	return &Set{slices: out}
}

// IntersectSet returns the time covered by both r and o.
func (r *Set) IntersectSet(o *Set) *Set {
	var out []Slice
	for _, s := range o.list() {
		out = append(out, r.Intersect(s).slices...)
	}
	sortSlices(out)
	return &Set{slices: out}
}

// Contains reports whether t lies in one of the slices of r.
func (r *Set) Contains(t time.Time) bool {
	ss := r.list()
	// first slice starting after t; the candidate is the one before it
	i := sort.Search(len(ss), func(i int) bool { return ss[i].start.After(t) }) - 1
	return i >= 0 && ss[i].Contains(t)
}

// ContainsSlice reports whether s is entirely covered by r, that is nothing
// remains of s once r is removed from it. Zero-duration slices are never
// contained.
func (r *Set) ContainsSlice(s Slice) bool {
	if s.IsZero() {
		return false
	}
	return s.DifferenceSet(r).Duration() == 0
}

// ContainsSet reports whether every slice of o is covered by r.
func (r *Set) ContainsSet(o *Set) bool {
	for _, s := range o.list() {
		if !r.ContainsSlice(s) {
			return false
		}
	}
	return true
}

// Duration returns the total time covered by r.
func (r *Set) Duration() time.Duration {
	var d time.Duration
	for _, s := range r.list() {
		d += s.Duration()
	}
	return d
}

// Seconds returns the sum of the whole-second durations of the slices of r.
func (r *Set) Seconds() int64 {
	var n int64
	for _, s := range r.list() {
		n += s.Seconds()
	}
	return n
}

// Min returns the earliest start in r.
func (r *Set) Min() (time.Time, error) {
	ss := r.list()
	if len(ss) == 0 {
		return time.Time{}, newError(EmptySet, "min of an empty set")
	}
	return ss[0].start, nil
}

// Max returns the latest end in r.
func (r *Set) Max() (time.Time, error) {
	ss := r.list()
	if len(ss) == 0 {
		return time.Time{}, newError(EmptySet, "max of an empty set")
	}
	return ss[len(ss)-1].end, nil
}

// Extent returns the slice from the earliest start to the latest end of r.
func (r *Set) Extent() mo.Option[Slice] {
	ss := r.list()
	if len(ss) == 0 {
		return mo.None[Slice]()
	}
	return mo.Some(Slice{start: ss[0].start, end: ss[len(ss)-1].end})
}

// Gaps returns the time between the slices of r.
func (r *Set) Gaps() *Set {
	ss := r.list()
	var out []Slice
	for i := 1; i < len(ss); i++ {
		if ss[i-1].end.Before(ss[i].start) {
			out = append(out, Slice{start: ss[i-1].end, end: ss[i].start})
		}
	}
	return &Set{slices: out}
}

func (r *Set) Len() int { return len(r.list()) }

// At returns the i-th slice in start order. It panics if i is out of range.
func (r *Set) At(i int) Slice { return r.list()[i] }

// Slices returns a copy of the slices of r in start order.
func (r *Set) Slices() []Slice {
	return append([]Slice{}, r.list()...)
}

// All iterates over the slices of r in start order.
func (r *Set) All() iter.Seq2[int, Slice] {
	return func(yield func(int, Slice) bool) {
		for i, s := range r.list() {
			if !yield(i, s) {
				return
			}
		}
	}
}

func (r *Set) Iterate() *Iterator {
	return &Iterator{current: -1, slices: r.list()}
}

// Equal reports whether r and o hold the same slices.
func (r *Set) Equal(o *Set) bool {
	a, b := r.list(), o.list()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (r *Set) String() string {
	ss := r.list()
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		parts = append(parts, s.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (r *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Slices())
}

func (r *Set) UnmarshalJSON(b []byte) error {
	var ss []Slice
	if err := json.Unmarshal(b, &ss); err != nil {
		return err
	}
	*r = *NewSet(ss...)
	return nil
}

func (r *Set) MarshalYAML() (interface{}, error) {
	return r.Slices(), nil
}
