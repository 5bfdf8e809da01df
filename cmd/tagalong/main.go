package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/tagalong"
)

var (
	flagFormat  string
	flagVerbose bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

// logger writes diagnostics to stderr; stdout carries results only.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tagalong",
	Short:         "Shape capability dispatch demo",
	Long:          "Computes area-per-perimeter efficiency over rectangles and circles through a shared interface, and detects circles by matching on the shape variant.",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return validateFormat(flagFormat)
	},
	RunE: runDemo,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format: json|text")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging on stderr")

	rootCmd.AddCommand(measureCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(runCmd)
}

// demoShapes are the shapes reported by the root command, in output order.
var demoShapes = []struct {
	label string
	shape tagalong.Shape
}{
	{"1x4 rectangle", tagalong.Rectangle{Width: 1, Height: 4}},
	{"square", tagalong.Rectangle{Width: 4, Height: 4}},
	{"circle", tagalong.Circle{Radius: 4}},
}

func runDemo(cmd *cobra.Command, args []string) error {
	demo, err := buildDemo()
	if err != nil {
		return outputError(cmd, "demo", err)
	}
	return outputResult(cmd, CLIResult{Command: "demo", Results: demo})
}

// buildDemo computes the efficiency of every demo shape, then runs circle
// detection on the 1x4 rectangle and the circle.
func buildDemo() (CLIDemo, error) {
	var demo CLIDemo
	for _, d := range demoShapes {
		eff, err := tagalong.Efficiency(d.shape)
		if err != nil {
			return CLIDemo{}, fmt.Errorf("%s: %w", d.label, err)
		}
		logger.Debug("efficiency", "shape", d.label, "kind", d.shape.Kind(), "value", eff)
		demo.Efficiencies = append(demo.Efficiencies, CLIEfficiency{
			Label:      d.label,
			Kind:       d.shape.Kind(),
			Efficiency: eff,
		})
	}
	for _, d := range []tagalong.Shape{demoShapes[0].shape, demoShapes[2].shape} {
		demo.Detections = append(demo.Detections, detection(d))
	}
	return demo, nil
}

func detection(s tagalong.Shape) CLIDetection {
	radius, ok := tagalong.DetectCircle(s)
	return CLIDetection{Kind: s.Kind(), Radius: radius, IsCircle: ok}
}

// stdout returns the writer for command results.
func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
