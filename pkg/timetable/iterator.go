package timetable

// Iterator walks the entries of a table ordered by the start of their slice.
type Iterator struct {
	current int
	keys    []string
	table   map[string]entry
}

func (r *Iterator) Value() Entry {
	return r.table[r.keys[r.current]]
}

func (r *Iterator) ID() string {
	return r.keys[r.current]
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.keys)
}

// IsConsecutive reports whether the current entry starts where the previous
// entry ends.
func (r *Iterator) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	prev := r.table[r.keys[r.current-1]]
	return prev.slice.End().Equal(r.table[r.keys[r.current]].slice.Start())
}
