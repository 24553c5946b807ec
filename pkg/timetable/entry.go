package timetable

import (
	"github.com/henderiw/timeslice/pkg/timeslice"
	"k8s.io/apimachinery/pkg/labels"
)

type Entry interface {
	ID() string
	Slice() timeslice.Slice
	Labels() labels.Set
}

type entry struct {
	id     string
	slice  timeslice.Slice
	labels labels.Set
}

type Entries []Entry

func (r entry) ID() string             { return r.id }
func (r entry) Slice() timeslice.Slice { return r.slice }
func (r entry) Labels() labels.Set     { return r.labels }

func NewEntry(id string, s timeslice.Slice, l labels.Set) Entry {
	return entry{
		id:     id,
		slice:  s,
		labels: l,
	}
}

// Slices returns the claimed time of all entries as a set.
func (r Entries) Slices() *timeslice.Set {
	slices := make([]timeslice.Slice, 0, len(r))
	for _, e := range r {
		slices = append(slices, e.Slice())
	}
	return timeslice.NewSet(slices...)
}
