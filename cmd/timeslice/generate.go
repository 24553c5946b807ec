package main

import (
	"time"

	"github.com/henderiw/timeslice/pkg/recurrence"
	"github.com/henderiw/timeslice/pkg/timeslice"
	"github.com/spf13/cobra"
)

func (c *cli) rangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range CADENCE START END",
		Short: "Print the daily or monthly periods between START and END",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cadence, err := timeslice.ParseCadence(args[0])
			if err != nil {
				return err
			}
			start, end, err := c.times(args[1], args[2])
			if err != nil {
				return err
			}
			set, err := timeslice.FromRange(cadence, start, end)
			if err != nil {
				return err
			}
			return c.write(cmd.OutOrStdout(), set)
		},
	}
}

func (c *cli) ruleCmd() *cobra.Command {
	var length time.Duration
	cmd := &cobra.Command{
		Use:   "rule RRULE START UNTIL",
		Short: "Print the periods of an RFC 5545 recurrence rule",
		Long: `Print the periods of an RFC 5545 recurrence rule.

Without --length the periods run from one occurrence to the next. With
--length every occurrence starts a slice of that length.`,
		Example: `  timeslice rule "FREQ=WEEKLY;BYDAY=MO" 2024-01-01T00:00:00Z 2024-02-01T00:00:00Z
  timeslice rule "FREQ=DAILY" 2024-01-01T09:00:00Z 2024-01-08T00:00:00Z --length 15m`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, until, err := c.times(args[1], args[2])
			if err != nil {
				return err
			}
			var set *timeslice.Set
			if length > 0 {
				set, err = recurrence.Occurrences(args[0], start, length, until)
			} else {
				set, err = recurrence.Periods(args[0], start, until)
			}
			if err != nil {
				return err
			}
			return c.write(cmd.OutOrStdout(), set)
		},
	}
	cmd.Flags().DurationVar(&length, "length", 0, "length of the slice started by every occurrence")
	return cmd
}

func (c *cli) times(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse(c.layout(), from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(c.layout(), to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
