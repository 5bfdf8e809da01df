package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// outputResult writes result to stdout in the selected format.
func outputResult(cmd *cobra.Command, result CLIResult) error {
	w := stdout(cmd)
	if flagFormat == "text" {
		return outputResultText(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to stdout as a
// CLIResult envelope. In text mode it goes to stderr.
func outputError(cmd *cobra.Command, command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(stdout(cmd))
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case CLIDemo:
		formatDemoText(w, v)
	case CLIDetection:
		formatDetectionText(w, v)
	case CLIMeasurement:
		formatMeasurementText(w, v)
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// formatDemoText prints efficiencies as "<label> efficiency: <value>" and
// detections as "<radius> <is_circle>", using fmt's default verbs.
func formatDemoText(w io.Writer, demo CLIDemo) {
	for _, e := range demo.Efficiencies {
		fmt.Fprintln(w, e.Label+" efficiency:", e.Efficiency)
	}
	for _, d := range demo.Detections {
		formatDetectionText(w, d)
	}
}

func formatDetectionText(w io.Writer, d CLIDetection) {
	fmt.Fprintln(w, d.Radius, d.IsCircle)
}

// formatMeasurementText formats a CLIMeasurement as aligned columns.
func formatMeasurementText(w io.Writer, m CLIMeasurement) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tAREA\tPERIMETER\tEFFICIENCY")
	fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", m.Kind, m.Area, m.Perimeter, m.Efficiency)
	tw.Flush()
}
