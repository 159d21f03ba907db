// Command gcolor is the CLI entry point: solve a single instance, or an
// entire directory of instances with --all, per SPEC_FULL.md §4.10.
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/arclen/vdcolor/coloring"
	"github.com/arclen/vdcolor/instance"
	"github.com/arclen/vdcolor/runner"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GCOLOR")
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "gcolor <instance-path>",
		Short: "Upper-bound the chromatic number of a segment intersection graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(v.GetBool("verbose"))
			ctx := cmd.Context()

			if v.GetBool("all") {
				return runner.SolveAll(ctx, args[0], runner.Options{
					Workers: workerCount(v.GetInt("workers")),
					Shuffle: v.GetBool("shuffle"),
					Save:    v.GetBool("save"),
					Logger:  &logger,
				})
			}
			return solveOne(args[0], v, logger)
		},
	}

	flags := cmd.Flags()
	flags.Bool("all", false, "treat the positional argument as a directory and solve every instance in it")
	flags.Bool("shuffle", false, "randomize segment processing order")
	flags.Bool("save", true, "write the solution file")
	flags.Int("workers", runtime.NumCPU(), "maximum concurrent instance solves in --all mode")
	flags.Bool("verbose", false, "emit debug-level structured logs")

	_ = v.BindPFlags(flags)

	return cmd
}

func solveOne(path string, v *viper.Viper, logger zerolog.Logger) error {
	inst, err := instance.ReadInstance(path)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if v.GetBool("shuffle") {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	bounds := coloring.BoundsFromSegments(inst.Segments)
	result := coloring.Color(inst.Segments, bounds, coloring.Options{
		Shuffle: v.GetBool("shuffle"),
		Rand:    rng,
		Logger:  &logger,
	})

	fmt.Printf("%s: %d colors\n", inst.Name, result.NumColors)

	if !v.GetBool("save") {
		return nil
	}

	solutionPath := solutionPathFor(path)
	return instance.WriteSolution(solutionPath, inst.Name, result)
}

func solutionPathFor(instancePath string) string {
	const suffix = ".instance.json"
	if len(instancePath) > len(suffix) && instancePath[len(instancePath)-len(suffix):] == suffix {
		return instancePath[:len(instancePath)-len(suffix)] + ".solution.json"
	}
	return instancePath + ".solution.json"
}

func workerCount(requested int) int {
	if requested <= 0 {
		return runtime.NumCPU()
	}
	return requested
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var writer io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
