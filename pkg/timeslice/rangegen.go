package timeslice

import (
	"fmt"
	"strings"
	"time"
)

// Cadence is the recurrence unit of FromRange.
type Cadence int

const (
	Daily Cadence = iota + 1
	Monthly
	Yearly
)

func (c Cadence) String() string {
	switch c {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("cadence(%d)", int(c))
	}
}

func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(s) {
	case "daily", "day":
		return Daily, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	}
	return 0, newError(InvalidOperand, "unknown cadence %q", s)
}

// FromRange returns the consecutive periods of cadence c that start at start
// and do not run past end.
//
// Daily periods last one calendar day and keep the time of day of start; a
// period ending exactly at end is not included. Monthly periods end on the
// day of month of start, or on the last day of shorter months, and may end
// exactly at end. Yearly periods are not implemented.
func FromRange(c Cadence, start, end time.Time) (*Set, error) {
	var slices []Slice
	switch c {
	case Daily:
		for s := start; ; {
			e := s.AddDate(0, 0, 1)
			if !e.Before(end) {
				break
			}
			slices = append(slices, Slice{start: s, end: e})
			s = e
		}
	case Monthly:
		for s := start; ; {
			e := nextMonth(s, start.Day())
			if e.After(end) {
				break
			}
			slices = append(slices, Slice{start: s, end: e})
			s = e
		}
	case Yearly:
		return nil, newError(Unimplemented, "yearly cadence")
	default:
		return nil, newError(Unimplemented, "%s", c)
	}
	return NewSet(slices...), nil
}

// nextMonth jumps from the first of the month of t into the following month
// and clamps day to the length of that month. The time of day of t is kept.
func nextMonth(t time.Time, day int) time.Time {
	d := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), 0, t.Location()).AddDate(0, 0, 35)
	if n := daysIn(d.Year(), d.Month(), t.Location()); day > n {
		day = n
	}
	return time.Date(d.Year(), d.Month(), day, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
