package main

import "github.com/jward/tagalong"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIDemo is the output of the root command.
type CLIDemo struct {
	Efficiencies []CLIEfficiency `json:"efficiencies"`
	Detections   []CLIDetection  `json:"detections"`
}

// CLIEfficiency is one labelled efficiency value.
type CLIEfficiency struct {
	Label      string        `json:"label"`
	Kind       tagalong.Kind `json:"kind"`
	Efficiency float64       `json:"efficiency"`
}

// CLIDetection is the result of circle detection on one shape.
type CLIDetection struct {
	Kind     tagalong.Kind `json:"kind"`
	Radius   float64       `json:"radius"`
	IsCircle bool          `json:"is_circle"`
}

// CLIMeasurement pairs a shape's dimensions with its metrics.
type CLIMeasurement struct {
	Shape tagalong.Shape `json:"shape"`
	tagalong.Measurement
}
