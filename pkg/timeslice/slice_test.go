package timeslice

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sliceComparer = cmp.Comparer(func(a, b Slice) bool { return a.Equal(b) })

func date(y int, m time.Month, d, h, mi, s int) time.Time {
	return time.Date(y, m, d, h, mi, s, 0, time.UTC)
}

// a and b are the two reference slices used throughout the tests.
var (
	a = MustNew(date(2009, 1, 1, 0, 0, 0), date(2009, 1, 2, 0, 0, 0))
	b = MustNew(date(2009, 1, 1, 22, 33, 44), date(2009, 1, 2, 22, 33, 44))
)

func hours(from, to int) Slice {
	base := date(2020, 1, 1, 0, 0, 0)
	return MustNew(base.Add(time.Duration(from)*time.Hour), base.Add(time.Duration(to)*time.Hour))
}

func TestNew(t *testing.T) {
	cases := map[string]struct {
		start       time.Time
		end         time.Time
		expectedErr bool
		duration    time.Duration
	}{
		"Normal": {
			start:    date(2009, 1, 1, 0, 0, 0),
			end:      date(2009, 1, 2, 0, 0, 0),
			duration: 24 * time.Hour,
		},
		"ZeroDuration": {
			start:    date(2009, 1, 1, 0, 0, 0),
			end:      date(2009, 1, 1, 0, 0, 0),
			duration: 0,
		},
		"StartAfterEnd": {
			start:       date(2009, 1, 2, 0, 0, 0),
			end:         date(2009, 1, 1, 0, 0, 0),
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := New(tc.start, tc.end)
			if tc.expectedErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidBoundary))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.duration, s.Duration())
		})
	}
}

func TestParseSlice(t *testing.T) {
	cases := map[string]struct {
		input       string
		layout      string
		expected    Slice
		expectedErr bool
	}{
		"RFC3339": {
			input:    "2009-01-01T00:00:00Z..2009-01-02T00:00:00Z",
			expected: a,
		},
		"Layout": {
			input:    "2009-01-01 22:33:44 .. 2009-01-02 22:33:44",
			layout:   time.DateTime,
			expected: b,
		},
		"NoSeparator": {
			input:       "2009-01-01T00:00:00Z",
			expectedErr: true,
		},
		"BadEnd": {
			input:       "2009-01-01T00:00:00Z..tomorrow",
			expectedErr: true,
		},
		"Reversed": {
			input:       "2009-01-02T00:00:00Z..2009-01-01T00:00:00Z",
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := ParseSlice(tc.input, tc.layout)
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrInvalidBoundary)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, s, sliceComparer); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, int64(86400), a.Seconds())
	s := MustNew(date(2009, 1, 1, 0, 0, 0), date(2009, 1, 1, 0, 0, 1).Add(900*time.Millisecond))
	assert.Equal(t, int64(1), s.Seconds())
}

func TestContains(t *testing.T) {
	assert.True(t, a.Contains(a.Start()))
	assert.False(t, a.Contains(a.End()))
	assert.True(t, a.Contains(date(2009, 1, 1, 12, 13, 14)))
	assert.False(t, a.Contains(date(2008, 12, 31, 23, 59, 59)))

	point := MustNew(a.Start(), a.Start())
	assert.False(t, point.Contains(a.Start()))
}

func TestContainsSlice(t *testing.T) {
	cases := map[string]struct {
		outer    Slice
		inner    Slice
		expected bool
	}{
		"Inside":         {outer: hours(0, 10), inner: hours(2, 5), expected: true},
		"Same":           {outer: hours(0, 10), inner: hours(0, 10), expected: true},
		"TouchingStart":  {outer: hours(0, 10), inner: hours(0, 5), expected: true},
		"Overlapping":    {outer: a, inner: b, expected: false},
		"Disjoint":       {outer: hours(0, 1), inner: hours(2, 3), expected: false},
		"Larger":         {outer: hours(2, 5), inner: hours(0, 10), expected: false},
		"ZeroInside":     {outer: hours(0, 10), inner: hours(5, 5), expected: false},
		"ZeroOutside":    {outer: hours(0, 10), inner: hours(20, 20), expected: false},
		"ReferenceCheck": {outer: a, inner: MustNew(date(2009, 1, 1, 9, 0, 0), date(2009, 1, 1, 15, 0, 0)), expected: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.outer.ContainsSlice(tc.inner))
		})
	}
}

func TestEqualAndOrdering(t *testing.T) {
	x := hours(0, 2)
	y := hours(5, 7)
	z := hours(0, 3)

	// same length, different position
	assert.False(t, x.Equal(y))
	assert.Equal(t, 0, x.Compare(y))
	assert.True(t, x.LessOrEqual(y))
	assert.True(t, x.GreaterOrEqual(y))
	assert.False(t, x.Less(y))

	assert.True(t, x.Less(z))
	assert.True(t, z.Greater(y))
	assert.True(t, x.Equal(hours(0, 2)))
}

func TestIntersect(t *testing.T) {
	cases := map[string]struct {
		x, y       Slice
		expected   Slice
		expectedOk bool
	}{
		"Reference": {
			x:          a,
			y:          b,
			expected:   MustNew(date(2009, 1, 1, 22, 33, 44), date(2009, 1, 2, 0, 0, 0)),
			expectedOk: true,
		},
		"Inside": {
			x:          hours(0, 10),
			y:          hours(2, 3),
			expected:   hours(2, 3),
			expectedOk: true,
		},
		"Touching": {
			x: hours(0, 2),
			y: hours(2, 4),
		},
		"Disjoint": {
			x: hours(0, 2),
			y: hours(3, 4),
		},
		"ZeroDuration": {
			x: hours(0, 2),
			y: hours(1, 1),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			xy, okxy := tc.x.Intersect(tc.y).Get()
			yx, okyx := tc.y.Intersect(tc.x).Get()
			assert.Equal(t, tc.expectedOk, okxy)
			assert.Equal(t, tc.expectedOk, okyx)
			if !tc.expectedOk {
				return
			}
			if diff := cmp.Diff(tc.expected, xy, sliceComparer); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
			assert.True(t, xy.Equal(yx))
		})
	}
}

func TestDifference(t *testing.T) {
	cases := map[string]struct {
		x, y     Slice
		expected []Slice
	}{
		"ReferenceAB": {
			x:        a,
			y:        b,
			expected: []Slice{MustNew(date(2009, 1, 1, 0, 0, 0), date(2009, 1, 1, 22, 33, 44))},
		},
		"ReferenceBA": {
			x:        b,
			y:        a,
			expected: []Slice{MustNew(date(2009, 1, 2, 0, 0, 0), date(2009, 1, 2, 22, 33, 44))},
		},
		"Covered": {
			x: hours(2, 4),
			y: hours(0, 10),
		},
		"Equal": {
			x: hours(2, 4),
			y: hours(2, 4),
		},
		"ZeroDurationSelf": {
			x: hours(5, 5),
			y: hours(10, 20),
		},
		"Interior": {
			x:        hours(0, 10),
			y:        hours(3, 5),
			expected: []Slice{hours(0, 3), hours(5, 10)},
		},
		"TouchesStart": {
			x:        hours(0, 10),
			y:        hours(0, 5),
			expected: []Slice{hours(5, 10)},
		},
		"TouchesEnd": {
			x:        hours(0, 10),
			y:        hours(5, 10),
			expected: []Slice{hours(0, 5)},
		},
		"Disjoint": {
			x:        hours(0, 2),
			y:        hours(4, 6),
			expected: []Slice{hours(0, 2)},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.x.Difference(tc.y)
			if diff := cmp.Diff(tc.expected, got.Slices(), sliceComparer, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestDifferenceAbsolute(t *testing.T) {
	// the fragment lies strictly inside the stored slice: the pieces are cut
	// from the stored slice's boundaries
	got := hours(3, 5).difference(hours(0, 10), true)
	assert.True(t, got.Equal(NewSet(hours(0, 3), hours(5, 10))), got.String())

	// without absolute the covered fragment simply disappears
	assert.Equal(t, 0, hours(3, 5).difference(hours(0, 10), false).Len())
}

func TestUnion(t *testing.T) {
	got := a.Union(b)
	require.Equal(t, 1, got.Len())
	assert.True(t, got.At(0).Equal(MustNew(date(2009, 1, 1, 0, 0, 0), date(2009, 1, 2, 22, 33, 44))))

	got = hours(5, 6).Union(hours(0, 1))
	require.Equal(t, 2, got.Len())
	assert.True(t, got.At(0).Equal(hours(0, 1)))
	assert.True(t, got.At(1).Equal(hours(5, 6)))

	// touching slices are not merged
	assert.Equal(t, 2, hours(0, 1).Union(hours(1, 2)).Len())

	// zero-duration slices are left out
	got = hours(5, 5).Union(hours(10, 20))
	require.Equal(t, 1, got.Len())
	assert.True(t, got.At(0).Equal(hours(10, 20)))
}

func TestSliceJSON(t *testing.T) {
	raw, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2009-01-01T00:00:00Z","end":"2009-01-02T00:00:00Z"}`, string(raw))

	var s Slice
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.True(t, s.Equal(a))

	err = json.Unmarshal([]byte(`{"start":"2009-01-02T00:00:00Z","end":"2009-01-01T00:00:00Z"}`), &s)
	assert.ErrorIs(t, err, ErrInvalidBoundary)
}

func TestString(t *testing.T) {
	assert.Equal(t, "<Slice 2009-01-01T00:00:00Z..2009-01-02T00:00:00Z>", a.String())
}
