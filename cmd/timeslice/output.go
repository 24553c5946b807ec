package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/henderiw/timeslice/pkg/timeslice"
	"gopkg.in/yaml.v3"
)

type durationResult struct {
	Duration string `json:"duration" yaml:"duration"`
	Seconds  int64  `json:"seconds" yaml:"seconds"`
	Slices   int    `json:"slices" yaml:"slices"`
}

type containsResult struct {
	Contains bool `json:"contains" yaml:"contains"`
}

// parseOperand parses a single slice "a..b" or a comma separated list of
// slices, which is read as a set.
func parseOperand(str, layout string) (timeslice.Operand, error) {
	if !strings.Contains(str, ",") {
		return timeslice.ParseSlice(str, layout)
	}
	return parseSet(strings.Split(str, ","), layout)
}

func parseSet(args []string, layout string) (*timeslice.Set, error) {
	var b timeslice.SetBuilder
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			s, err := timeslice.ParseSlice(part, layout)
			if err != nil {
				return nil, err
			}
			b.AddSlice(s)
		}
	}
	return b.Set()
}

func formatSlice(s timeslice.Slice, layout string) string {
	return s.Start().Format(layout) + ".." + s.End().Format(layout)
}

// write prints v in the selected output format. In text mode sets are
// printed one slice per line in the input notation.
func (c *cli) write(w io.Writer, v any) error {
	switch c.output() {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}

	switch x := v.(type) {
	case *timeslice.Set:
		for _, s := range x.All() {
			if _, err := fmt.Fprintln(w, formatSlice(s, c.layout())); err != nil {
				return err
			}
		}
		return nil
	case durationResult:
		_, err := fmt.Fprintf(w, "%s (%d s, %d slices)\n", x.Duration, x.Seconds, x.Slices)
		return err
	case containsResult:
		_, err := fmt.Fprintln(w, x.Contains)
		return err
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}
