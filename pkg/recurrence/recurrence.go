// Package recurrence expands RFC 5545 recurrence rules into timeslice sets.
package recurrence

import (
	"fmt"
	"time"

	"github.com/henderiw/timeslice/pkg/timeslice"
	"github.com/teambition/rrule-go"
)

// Parse parses an RRULE, with or without the "RRULE:" prefix. A DTSTART line
// or property in the rule wins over dtstart.
func Parse(rule string, dtstart time.Time) (*rrule.RRule, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("parse rule %q: %w", rule, err)
	}
	if opt.Dtstart.IsZero() {
		opt.Dtstart = dtstart
	}
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("build rule %q: %w", rule, err)
	}
	return r, nil
}

// Occurrences returns the set of slices [o, o+length) for every occurrence o
// of rule in [dtstart, until). Time covered by overlapping occurrences is
// counted once.
func Occurrences(rule string, dtstart time.Time, length time.Duration, until time.Time) (*timeslice.Set, error) {
	if length <= 0 {
		return nil, fmt.Errorf("occurrence length %s must be positive: %w", length, timeslice.ErrInvalidBoundary)
	}
	r, err := Parse(rule, dtstart)
	if err != nil {
		return nil, err
	}

	var b timeslice.SetBuilder
	next := r.Iterator()
	for {
		o, ok := next()
		if !ok || !o.Before(until) {
			break
		}
		b.AddRange(o, o.Add(length))
	}
	return b.Set()
}

// Periods returns the slices between consecutive occurrences of rule, that
// is [o1, o2), [o2, o3) and so on, up to the last occurrence at or before
// until.
func Periods(rule string, dtstart, until time.Time) (*timeslice.Set, error) {
	r, err := Parse(rule, dtstart)
	if err != nil {
		return nil, err
	}

	var b timeslice.SetBuilder
	next := r.Iterator()
	prev, ok := next()
	for ok && !prev.After(until) {
		o, more := next()
		if !more || o.After(until) {
			break
		}
		b.AddRange(prev, o)
		prev = o
	}
	return b.Set()
}

// FromCadence returns the periods of cadence c between start and end.
// Unlike timeslice.FromRange it supports yearly periods, includes a period
// that ends exactly at end, and skips months that do not have the day of
// month of start.
func FromCadence(c timeslice.Cadence, start, end time.Time) (*timeslice.Set, error) {
	var freq rrule.Frequency
	switch c {
	case timeslice.Daily:
		freq = rrule.DAILY
	case timeslice.Monthly:
		freq = rrule.MONTHLY
	case timeslice.Yearly:
		freq = rrule.YEARLY
	default:
		return nil, fmt.Errorf("cadence %s: %w", c, timeslice.ErrUnimplemented)
	}
	return Periods("FREQ="+freq.String(), start, end)
}
