// Package freebusy converts timeslice sets to and from iCalendar VFREEBUSY
// components (RFC 5545 section 3.6.4).
package freebusy

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/henderiw/timeslice/pkg/timeslice"
)

const (
	DefaultProductID = "-//henderiw//timeslice//EN"

	paramFreeBusyType = "FBTYPE"
	typeBusy          = "BUSY"
	typeFree          = "FREE"

	utcLayout = "20060102T150405Z"
)

type Options struct {
	// ProductID defaults to DefaultProductID.
	ProductID string
	// UID defaults to a random UUID.
	UID string
	// Stamp defaults to the current time.
	Stamp time.Time
	// Organizer is an optional calendar user address, e.g. mailto:a@example.com.
	Organizer string
}

// Calendar returns a calendar holding a single VFREEBUSY component that marks
// every slice of set as busy. Times are written in UTC with second precision.
func Calendar(set *timeslice.Set, opts Options) *ical.Calendar {
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.UID == "" {
		opts.UID = uuid.NewString()
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, opts.ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	fb := ical.NewComponent(ical.CompFreeBusy)
	fb.Props.SetText(ical.PropUID, opts.UID)
	fb.Props.SetDateTime(ical.PropDateTimeStamp, opts.Stamp.UTC())
	if opts.Organizer != "" {
		org := ical.NewProp(ical.PropOrganizer)
		org.Value = opts.Organizer
		fb.Props.Set(org)
	}

	if ext, ok := set.Extent().Get(); ok {
		fb.Props.SetDateTime(ical.PropDateTimeStart, ext.Start().UTC())
		fb.Props.SetDateTime(ical.PropDateTimeEnd, ext.End().UTC())

		periods := make([]string, 0, set.Len())
		for _, s := range set.All() {
			periods = append(periods, formatPeriod(s))
		}
		prop := ical.NewProp(ical.PropFreeBusy)
		prop.Params.Set(paramFreeBusyType, typeBusy)
		prop.Value = strings.Join(periods, ",")
		fb.Props.Add(prop)
	}

	cal.Children = append(cal.Children, fb)
	return cal
}

// Encode writes set as a VCALENDAR to w.
func Encode(w io.Writer, set *timeslice.Set, opts Options) error {
	if err := ical.NewEncoder(w).Encode(Calendar(set, opts)); err != nil {
		return fmt.Errorf("encode freebusy: %w", err)
	}
	return nil
}

// Decode reads every calendar from r and returns the busy time of all their
// VFREEBUSY components. Periods may be given as start/end or start/duration;
// periods typed FREE are ignored.
func Decode(r io.Reader) (*timeslice.Set, error) {
	dec := ical.NewDecoder(r)

	var b timeslice.SetBuilder
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode freebusy: %w", err)
		}
		for _, child := range cal.Children {
			if child.Name != ical.CompFreeBusy {
				continue
			}
			for _, prop := range child.Props[ical.PropFreeBusy] {
				if strings.EqualFold(prop.Params.Get(paramFreeBusyType), typeFree) {
					continue
				}
				for _, p := range strings.Split(prop.Value, ",") {
					s, err := parsePeriod(strings.TrimSpace(p))
					if err != nil {
						return nil, err
					}
					b.AddSlice(s)
				}
			}
		}
	}
	return b.Set()
}

func formatPeriod(s timeslice.Slice) string {
	return s.Start().UTC().Format(utcLayout) + "/" + s.End().UTC().Format(utcLayout)
}

// parsePeriod parses an RFC 5545 period, either "start/end" or
// "start/duration".
func parsePeriod(str string) (timeslice.Slice, error) {
	from, to, ok := strings.Cut(str, "/")
	if !ok {
		return timeslice.Slice{}, fmt.Errorf("period %q: %w", str, timeslice.ErrInvalidBoundary)
	}
	start, err := parseDateTime(from)
	if err != nil {
		return timeslice.Slice{}, fmt.Errorf("period %q: %w", str, err)
	}
	if strings.HasPrefix(to, "P") || strings.HasPrefix(to, "+P") || strings.HasPrefix(to, "-P") {
		dur := ical.NewProp(ical.PropDuration)
		dur.Value = to
		d, err := dur.Duration()
		if err != nil {
			return timeslice.Slice{}, fmt.Errorf("period %q: %w", str, err)
		}
		return timeslice.New(start, start.Add(d))
	}
	end, err := parseDateTime(to)
	if err != nil {
		return timeslice.Slice{}, fmt.Errorf("period %q: %w", str, err)
	}
	return timeslice.New(start, end)
}

func parseDateTime(str string) (time.Time, error) {
	p := ical.NewProp(ical.PropDateTimeStart)
	p.Value = str
	return p.DateTime(time.UTC)
}
