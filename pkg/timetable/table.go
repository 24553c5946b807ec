package timetable

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/henderiw/timeslice/pkg/timeslice"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	ErrNotFound    = errors.New("entry not found")
	ErrOutOfBounds = errors.New("slice outside of table bounds")
	ErrClaimed     = errors.New("slice overlaps a claimed entry")
	ErrNoFree      = errors.New("no free slice found")
)

// Table hands out non-overlapping claims on the time inside its bounds. Each
// claim carries a set of labels.
type Table interface {
	Get(id string) (Entry, error)
	Claim(s timeslice.Slice, l labels.Set) (Entry, error)
	ClaimFree(d time.Duration, l labels.Set) (Entry, error)
	Release(id string) error
	Update(id string, l labels.Set) error

	Iterate() *Iterator
	IterateFree() *timeslice.Iterator

	Count() int
	Has(id string) bool

	IsFree(s timeslice.Slice) bool
	FindFree(d time.Duration) (timeslice.Slice, error)
	Free() *timeslice.Set
	Claimed() *timeslice.Set

	Bounds() timeslice.Slice
	GetAll() Entries
	GetByLabel(selector labels.Selector) Entries
}

// ValidationFn is called for every claim made after the table is built.
type ValidationFn func(s timeslice.Slice) error

type Option func(*table)

func WithLogger(l logr.Logger) Option {
	return func(r *table) { r.log = l }
}

func WithValidation(v ValidationFn) Option {
	return func(r *table) { r.validateFn = v }
}

// WithReserved claims s when the table is built. Reserved claims bypass the
// validation function.
func WithReserved(s timeslice.Slice, l labels.Set) Option {
	return func(r *table) {
		r.reserved = append(r.reserved, entry{slice: s, labels: l})
	}
}

func New(bounds timeslice.Slice, opts ...Option) (Table, error) {
	if bounds.IsZero() {
		return nil, fmt.Errorf("table bounds %s: %w", bounds, timeslice.ErrInvalidBoundary)
	}
	r := &table{
		m:       new(sync.RWMutex),
		table:   map[string]entry{},
		bounds:  bounds,
		claimed: timeslice.NewSet(),
		log:     logr.Discard(),
	}
	for _, o := range opts {
		o(r)
	}

	var errm error
	for _, e := range r.reserved {
		if _, err := r.add(e.slice, e.labels, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	r.reserved = nil

	return r, errm
}

type table struct {
	m          *sync.RWMutex
	table      map[string]entry
	bounds     timeslice.Slice
	claimed    *timeslice.Set
	validateFn ValidationFn
	log        logr.Logger

	reserved []entry
}

func (r *table) validate(s timeslice.Slice, init bool) error {
	if s.IsZero() {
		return fmt.Errorf("cannot claim zero-duration slice %s: %w", s, timeslice.ErrInvalidBoundary)
	}
	if !r.bounds.ContainsSlice(s) {
		return fmt.Errorf("%s not in %s: %w", s, r.bounds, ErrOutOfBounds)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *table) Bounds() timeslice.Slice { return r.bounds }

func (r *table) Get(id string) (Entry, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.table[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return e, nil
}

func (r *table) Claim(s timeslice.Slice, l labels.Set) (Entry, error) {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(s, l, false)
}

// ClaimFree claims the first free slice of duration d.
func (r *table) ClaimFree(d time.Duration, l labels.Set) (Entry, error) {
	r.m.Lock()
	defer r.m.Unlock()

	s, err := r.findFree(d)
	if err != nil {
		return nil, err
	}
	return r.add(s, l, false)
}

func (r *table) Release(id string) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(id)
}

func (r *table) Update(id string, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(id, l)
}

func (r *table) Iterate() *Iterator {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table) iterate() *Iterator {
	keys := make([]string, 0, len(r.table))
	table := make(map[string]entry, len(r.table))
	for key, e := range r.table {
		keys = append(keys, key)
		table[key] = e
	}
	sort.Slice(keys, func(i int, j int) bool {
		return table[keys[i]].slice.Start().Before(table[keys[j]].slice.Start())
	})

	return &Iterator{current: -1, keys: keys, table: table}
}

// IterateFree walks the unclaimed slices of the table.
func (r *table) IterateFree() *timeslice.Iterator {
	return r.Free().Iterate()
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table) Has(id string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.table[id]
	return ok
}

func (r *table) IsFree(s timeslice.Slice) bool {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.isFree(s)
}

func (r *table) isFree(s timeslice.Slice) bool {
	return r.bounds.ContainsSlice(s) && r.claimed.Intersect(s).Len() == 0
}

func (r *table) FindFree(d time.Duration) (timeslice.Slice, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.findFree(d)
}

// findFree returns a slice of duration d at the start of the first free gap
// that is long enough.
func (r *table) findFree(d time.Duration) (timeslice.Slice, error) {
	if d <= 0 {
		return timeslice.Slice{}, fmt.Errorf("duration %s must be positive: %w", d, timeslice.ErrInvalidBoundary)
	}
	free := r.free().Iterate()
	for free.Next() {
		s := free.Slice()
		if s.Duration() >= d {
			return timeslice.New(s.Start(), s.Start().Add(d))
		}
	}
	return timeslice.Slice{}, fmt.Errorf("duration %s: %w", d, ErrNoFree)
}

func (r *table) Free() *timeslice.Set {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.free()
}

func (r *table) free() *timeslice.Set {
	return r.bounds.DifferenceSet(r.claimed)
}

func (r *table) Claimed() *timeslice.Set {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.claimed
}

func (r *table) add(s timeslice.Slice, l labels.Set, init bool) (Entry, error) {
	if err := r.validate(s, init); err != nil {
		r.log.V(2).Info("claim rejected", "slice", s.String(), "error", err.Error())
		return nil, err
	}
	if !r.isFree(s) {
		r.log.V(2).Info("claim rejected", "slice", s.String(), "claimed", r.claimed.String())
		return nil, fmt.Errorf("%s: %w", s, ErrClaimed)
	}
	e := entry{id: uuid.NewString(), slice: s, labels: l}
	r.table[e.id] = e
	r.claimed = r.claimed.Add(s)
	r.log.V(1).Info("claimed", "id", e.id, "slice", s.String(), "labels", l.String())
	return e, nil
}

func (r *table) update(id string, l labels.Set) error {
	e, ok := r.table[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	e.labels = l
	r.table[id] = e
	return nil
}

func (r *table) delete(id string) error {
	e, ok := r.table[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	delete(r.table, id)
	r.claimed = r.claimed.Sub(e.slice)
	r.log.V(1).Info("released", "id", id, "slice", e.slice.String())
	return nil
}

func (r *table) GetAll() Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(Entries, 0, len(r.table))

	iter := r.iterate()
	for iter.Next() {
		entries = append(entries, iter.Value())
	}
	return entries
}

func (r *table) GetByLabel(selector labels.Selector) Entries {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := Entries{}

	iter := r.iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels()) {
			entries = append(entries, iter.Value())
		}
	}
	return entries
}
