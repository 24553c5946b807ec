package timeslice

// Iterator walks the slices of a Set in start order.
type Iterator struct {
	current int
	slices  []Slice
}

func (r *Iterator) Slice() Slice {
	return r.slices[r.current]
}

func (r *Iterator) Index() int {
	return r.current
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.slices)
}

// IsConsecutive reports whether the current slice starts where the previous
// one ends.
func (r *Iterator) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.slices[r.current-1].end.Equal(r.slices[r.current].start)
}
