package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jward/tagalong/internal/runtime"
	"github.com/jward/tagalong/scripts"
)

var flagScriptsDir string

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a Risor script with the shape host functions",
	Long:  "Runs a Risor script (default: the embedded demo.risor). Scripts get rectangle, circle, shape, area, perimeter, efficiency, detect_circle, scale and log as globals. Script output goes to stdout, log calls to stderr.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	runCmd.Flags().StringVar(&flagScriptsDir, "scripts-dir", "", "load scripts from disk path instead of embedded")
}

func runScript(cmd *cobra.Command, args []string) error {
	script := runtime.DemoScript
	if len(args) > 0 {
		script = args[0]
	}

	opts := []runtime.RuntimeOption{
		runtime.WithLogger(logger),
		runtime.WithStdout(cmd.OutOrStdout()),
	}
	if flagScriptsDir == "" {
		opts = append(opts, runtime.WithRuntimeFS(scripts.FS))
	}
	rt := runtime.NewRuntime(flagScriptsDir, opts...)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := rt.RunScript(ctx, script, nil); err != nil {
		return fmt.Errorf("running %s: %w", script, err)
	}
	return nil
}
