package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jward/tagalong"
)

var flagScale float64

var measureCmd = &cobra.Command{
	Use:   "measure <kind> <dims...>",
	Short: "Print area, perimeter and efficiency of a shape",
	Long: `Builds a shape from its kind and dimensions and prints its metrics.

  rectangle <width> <height>   (or a single side for a square)
  circle <radius>

Dimensions must be non-negative. Put -- before the dimensions if one
of them starts with a dash, so it is not read as a flag.`,
	Example: "  tagalong measure rectangle 12.7 10 --scale 0.03937\n  tagalong measure circle -- -1",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runMeasure,
}

var detectCmd = &cobra.Command{
	Use:   "detect <kind> <dims...>",
	Short: "Report whether a shape is a circle and its radius",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDetect,
}

func init() {
	measureCmd.Flags().Float64Var(&flagScale, "scale", 1, "scale every dimension by this factor before measuring")
}

func runMeasure(cmd *cobra.Command, args []string) error {
	s, err := parseShape(args)
	if err != nil {
		return outputError(cmd, "measure", err)
	}
	if flagScale != 1 {
		scale(s, flagScale)
		logger.Debug("scaled shape", "factor", flagScale, "shape", s)
	}
	m, err := tagalong.Measure(s)
	if err != nil {
		return outputError(cmd, "measure", err)
	}
	return outputResult(cmd, CLIResult{Command: "measure", Results: CLIMeasurement{Shape: s, Measurement: m}})
}

func runDetect(cmd *cobra.Command, args []string) error {
	s, err := parseShape(args)
	if err != nil {
		return outputError(cmd, "detect", err)
	}
	return outputResult(cmd, CLIResult{Command: "detect", Results: detection(s)})
}

// parseShape builds a shape from "<kind> <dims...>" arguments.
func parseShape(args []string) (tagalong.Shape, error) {
	kind, err := tagalong.ParseKind(args[0])
	if err != nil {
		return nil, err
	}
	dims := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		d, err := parseDimension(arg)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return tagalong.NewShape(kind, dims...)
}

// parseDimension parses a positional argument as a non-negative number.
func parseDimension(value string) (float64, error) {
	d, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q: must be a number", value)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid dimension %q: must be non-negative", value)
	}
	return d, nil
}

// scale resizes the pointer variants NewShape returns.
func scale(s tagalong.Shape, factor float64) {
	switch v := s.(type) {
	case *tagalong.Rectangle:
		v.Scale(factor)
	case *tagalong.Circle:
		v.Scale(factor)
	}
}
