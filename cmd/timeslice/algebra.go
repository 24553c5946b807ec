package main

import (
	"github.com/henderiw/timeslice/pkg/timeslice"
	"github.com/spf13/cobra"
)

func (c *cli) durationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration SLICE...",
		Short: "Print the time covered by the union of the given slices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseSet(args, c.layout())
			if err != nil {
				return err
			}
			return c.write(cmd.OutOrStdout(), durationResult{
				Duration: set.Duration().String(),
				Seconds:  set.Seconds(),
				Slices:   set.Len(),
			})
		},
	}
}

// binaryCmd builds a command applying fn to two operands.
func (c *cli) binaryCmd(use, short string, fn func(a, b timeslice.Operand) (*timeslice.Set, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " A B",
		Short: short,
		Long:  short + ".\n\nAn operand is a slice \"start..end\" or a comma separated list of slices.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := c.operands(args)
			if err != nil {
				return err
			}
			set, err := fn(a, b)
			if err != nil {
				return err
			}
			c.log.V(1).Info(use, "a", a.String(), "b", b.String(), "result", set.String())
			return c.write(cmd.OutOrStdout(), set)
		},
	}
}

func (c *cli) operands(args []string) (timeslice.Operand, timeslice.Operand, error) {
	a, err := parseOperand(args[0], c.layout())
	if err != nil {
		return nil, nil, err
	}
	b, err := parseOperand(args[1], c.layout())
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (c *cli) unionCmd() *cobra.Command {
	return c.binaryCmd("union", "Print the time covered by A or B", timeslice.Union)
}

func (c *cli) diffCmd() *cobra.Command {
	return c.binaryCmd("diff", "Print the time covered by A but not by B", timeslice.Difference)
}

func (c *cli) intersectCmd() *cobra.Command {
	return c.binaryCmd("intersect", "Print the time covered by both A and B", timeslice.Intersection)
}

func (c *cli) containsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contains A B",
		Short: "Report whether B is entirely covered by A",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := c.operands(args)
			if err != nil {
				return err
			}
			ok, err := timeslice.Contains(a, b)
			if err != nil {
				return err
			}
			return c.write(cmd.OutOrStdout(), containsResult{Contains: ok})
		},
	}
}
