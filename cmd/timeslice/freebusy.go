package main

import (
	"io"
	"os"

	"github.com/henderiw/timeslice/pkg/freebusy"
	"github.com/spf13/cobra"
)

func (c *cli) freebusyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freebusy",
		Short: "Convert between slices and iCalendar VFREEBUSY",
	}

	var opts freebusy.Options
	encode := &cobra.Command{
		Use:   "encode SLICE...",
		Short: "Write the given slices as busy time in a VCALENDAR",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseSet(args, c.layout())
			if err != nil {
				return err
			}
			return freebusy.Encode(cmd.OutOrStdout(), set, opts)
		},
	}
	encode.Flags().StringVar(&opts.UID, "uid", "", "UID of the VFREEBUSY component (default random)")
	encode.Flags().StringVar(&opts.Organizer, "organizer", "", "calendar user address of the organizer")

	decode := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Print the busy time of a VCALENDAR read from FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			set, err := freebusy.Decode(r)
			if err != nil {
				return err
			}
			return c.write(cmd.OutOrStdout(), set)
		},
	}

	cmd.AddCommand(encode, decode)
	return cmd
}
