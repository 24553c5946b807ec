package timeslice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperandFunctions(t *testing.T) {
	set := NewSet(hours(0, 2), hours(4, 6))

	cases := map[string]struct {
		fn          func(x, y Operand) (*Set, error)
		x, y        Operand
		duration    time.Duration
		expectedErr bool
	}{
		"UnionSlices":            {fn: Union, x: a, y: b, duration: 46*time.Hour + 33*time.Minute + 44*time.Second},
		"UnionSliceSet":          {fn: Union, x: hours(1, 5), y: set, duration: 6 * time.Hour},
		"UnionNil":               {fn: Union, x: a, y: nil, expectedErr: true},
		"UnionNilSet":            {fn: Union, x: (*Set)(nil), y: a, expectedErr: true},
		"DifferenceSlices":       {fn: Difference, x: a, y: b, duration: 22*time.Hour + 33*time.Minute + 44*time.Second},
		"DifferenceSetSlice":     {fn: Difference, x: set, y: hours(1, 5), duration: 2 * time.Hour},
		"DifferenceSliceSet":     {fn: Difference, x: hours(0, 6), y: set, duration: 2 * time.Hour},
		"DifferenceNil":          {fn: Difference, x: nil, y: set, expectedErr: true},
		"IntersectionSlices":     {fn: Intersection, x: a, y: b, duration: time.Hour + 26*time.Minute + 16*time.Second},
		"IntersectionSets":       {fn: Intersection, x: set, y: NewSet(hours(1, 5)), duration: 2 * time.Hour},
		"IntersectionDisjoint":   {fn: Intersection, x: hours(0, 1), y: hours(1, 2), duration: 0},
		"IntersectionNilOperand": {fn: Intersection, x: set, y: (*Set)(nil), expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.fn(tc.x, tc.y)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidOperand)
				return
			}
			require.NoError(t, err)
			checkSet(t, got)
			assert.Equal(t, tc.duration, got.Duration())
		})
	}
}

func TestOperandContains(t *testing.T) {
	set := NewSet(hours(0, 2), hours(2, 6))

	cases := map[string]struct {
		x, y        Operand
		expected    bool
		expectedErr bool
	}{
		"SliceSlice":   {x: hours(0, 6), y: hours(1, 2), expected: true},
		"SliceSet":     {x: hours(0, 6), y: set, expected: true},
		"SetSlice":     {x: set, y: hours(1, 3), expected: true},
		"SetSet":       {x: set, y: NewSet(hours(1, 3), hours(5, 6)), expected: true},
		"SetLarger":    {x: set, y: hours(5, 7), expected: false},
		"ZeroDuration": {x: set, y: hours(1, 1), expected: false},
		"NilX":         {x: nil, y: set, expectedErr: true},
		"NilY":         {x: set, y: nil, expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Contains(tc.x, tc.y)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidOperand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestOperandEqualCompare(t *testing.T) {
	assert.True(t, Equal(a, MustNew(a.Start(), a.End())))
	assert.False(t, Equal(a, NewSet(a)))
	assert.True(t, Equal(NewSet(hours(0, 1), hours(2, 3)), NewSet(hours(2, 3), hours(0, 1))))
	assert.False(t, Equal(nil, a))

	c, err := Compare(hours(0, 1), hours(5, 6))
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Compare(hours(0, 2), hours(5, 6))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	_, err = Compare(a, NewSet(a))
	assert.ErrorIs(t, err, ErrInvalidOperand)
}
