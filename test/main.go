package main

import (
	"fmt"
	"os"
	"time"

	"github.com/henderiw/timeslice/pkg/freebusy"
	"github.com/henderiw/timeslice/pkg/recurrence"
	"github.com/henderiw/timeslice/pkg/timeslice"
	"github.com/henderiw/timeslice/pkg/timetable"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
	"k8s.io/klog/v2"
)

func date(y int, m time.Month, d, h, mi, s int) time.Time {
	return time.Date(y, m, d, h, mi, s, 0, time.UTC)
}

var (
	slice1 = timeslice.MustNew(date(2009, 1, 1, 0, 0, 0), date(2009, 1, 2, 0, 0, 0))
	slice2 = timeslice.MustNew(date(2009, 1, 1, 22, 33, 44), date(2009, 1, 2, 22, 33, 44))
)

func main() {
	fmt.Println("duration", slice1.Seconds())
	fmt.Println("sum", slice1.Union(slice2))
	fmt.Println("slice1 - slice2", slice1.Difference(slice2))
	fmt.Println("slice2 - slice1", slice2.Difference(slice1))
	if i, ok := slice1.Intersect(slice2).Get(); ok {
		fmt.Println("intersect", i)
	}
	fmt.Println("contains time", slice1.Contains(date(2009, 1, 1, 12, 13, 14)))
	fmt.Println("contains slice2", slice1.ContainsSlice(slice2))
	fmt.Println("contains 9-15h", slice1.ContainsSlice(timeslice.MustNew(date(2009, 1, 1, 9, 0, 0), date(2009, 1, 1, 15, 0, 0))))

	set2 := timeslice.NewSet(slice1, slice2)
	fmt.Println("set", set2, "duration", set2.Seconds())

	january, err := timeslice.FromRange(timeslice.Daily, date(2009, 1, 1, 0, 0, 0), date(2009, 2, 1, 0, 0, 0))
	if err != nil {
		panic(err)
	}
	fmt.Println("january days", january.Len(), "seconds", january.Seconds())
	fmt.Println("january - set", january.SubSet(set2).Seconds())
	fmt.Println("january & set", january.IntersectSet(set2).Seconds())

	if _, err := timeslice.FromRange(timeslice.Yearly, date(2009, 1, 1, 0, 0, 0), date(2012, 1, 1, 0, 0, 0)); err != nil {
		fmt.Println("yearly", err)
	}
	years, err := recurrence.FromCadence(timeslice.Yearly, date(2009, 1, 1, 0, 0, 0), date(2012, 1, 1, 0, 0, 0))
	if err != nil {
		panic(err)
	}
	fmt.Println("yearly periods", years)

	claimDay()
}

// claimDay books a working day in a timetable and prints it as free/busy.
func claimDay() {
	day := timeslice.MustNew(date(2024, 3, 1, 0, 0, 0), date(2024, 3, 2, 0, 0, 0))
	tt, err := timetable.New(day,
		timetable.WithLogger(klog.NewKlogr().WithName("timetable")),
		timetable.WithReserved(timeslice.MustNew(day.Start(), date(2024, 3, 1, 9, 0, 0)), map[string]string{"status": "reserved"}),
		timetable.WithReserved(timeslice.MustNew(date(2024, 3, 1, 17, 0, 0), day.End()), map[string]string{"status": "reserved"}),
	)
	if err != nil {
		panic(err)
	}

	standups, err := recurrence.Occurrences("FREQ=HOURLY;INTERVAL=4", date(2024, 3, 1, 9, 0, 0), 15*time.Minute, date(2024, 3, 1, 17, 0, 0))
	if err != nil {
		panic(err)
	}
	for _, s := range standups.All() {
		if _, err := tt.Claim(s, map[string]string{"type": "standup"}); err != nil {
			panic(err)
		}
	}
	if _, err := tt.ClaimFree(2*time.Hour, map[string]string{"type": "focus"}); err != nil {
		panic(err)
	}

	iter := tt.Iterate()
	for iter.Next() {
		fmt.Println("entry", iter.Value().Slice(), "labels", iter.Value().Labels(), "consecutive", iter.IsConsecutive())
	}

	ls, err := GetLabelSelector(map[string]string{"type": "standup"})
	if err != nil {
		panic(err)
	}
	fmt.Println("standups", tt.GetByLabel(ls).Slices())
	fmt.Println("free", tt.Free(), "free time", tt.Free().Duration())

	if err := freebusy.Encode(os.Stdout, tt.Claimed(), freebusy.Options{}); err != nil {
		panic(err)
	}
	klog.Flush()
}

func GetLabelSelector(l map[string]string) (labels.Selector, error) {
	fullselector := labels.NewSelector()
	for k, v := range l {
		req, err := labels.NewRequirement(k, selection.Equals, []string{v})
		if err != nil {
			return nil, err
		}
		fullselector = fullselector.Add(*req)
	}
	return fullselector, nil
}
