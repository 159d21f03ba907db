// Package runner fans a coloring run out across every instance file in a
// directory, supplementing original_source/LineSegmentIntersection.py's
// multiprocessing.Pool(8).map(solve_instance, ...) with an idiomatic
// bounded-concurrency errgroup.
package runner

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/arclen/vdcolor/coloring"
	"github.com/arclen/vdcolor/instance"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options configures a SolveAll run.
type Options struct {
	// Workers bounds the number of instances solved concurrently. Values
	// <= 0 are treated as 1.
	Workers int

	// Shuffle is forwarded to coloring.Color for every instance.
	Shuffle bool

	// Save controls whether solutions are written via
	// instance.WriteSolution. When false, SolveAll only exercises the
	// solve path (useful for benchmarking).
	Save bool

	Logger *zerolog.Logger
}

const instanceSuffix = ".instance.json"

// SolveAll lists every "*.instance.json" file directly under dir, solves
// each independently with coloring.Color, and — when opts.Save is true —
// writes the result to a sibling "*.solution.json" path via
// instance.WriteSolution. Each instance is solved in its own goroutine,
// bounded by opts.Workers (spec.md §5: "embarrassingly parallel across
// input instances... no shared mutable state").
func SolveAll(ctx context.Context, dir string, opts Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("runner: read dir %s: %w", dir, err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), instanceSuffix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			return solveOne(ctx, path, opts)
		})
	}

	return g.Wait()
}

func solveOne(ctx context.Context, path string, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logEvent(opts.Logger, runID, path)

	inst, err := instance.ReadInstance(path)
	if err != nil {
		return fmt.Errorf("runner: %s: %w", path, err)
	}

	var rng *rand.Rand
	if opts.Shuffle {
		rng = rand.New(rand.NewSource(seedFor(runID)))
	}

	bounds := coloring.BoundsFromSegments(inst.Segments)
	result := coloring.Color(inst.Segments, bounds, coloring.Options{
		Shuffle: opts.Shuffle,
		Rand:    rng,
		Logger:  opts.Logger,
	})

	log.Int("num_colors", result.NumColors).Msg("solved instance")

	if !opts.Save {
		return nil
	}

	solutionPath := strings.TrimSuffix(path, instanceSuffix) + ".solution.json"
	if err := instance.WriteSolution(solutionPath, inst.Name, result); err != nil {
		return fmt.Errorf("runner: %s: %w", path, err)
	}
	return nil
}

func seedFor(runID string) int64 {
	var seed int64
	for _, b := range []byte(runID) {
		seed = seed*31 + int64(b)
	}
	return seed
}

func logEvent(logger *zerolog.Logger, runID, path string) *zerolog.Event {
	if logger == nil {
		return zerolog.Nop().Info()
	}
	return logger.Info().Str("run_id", runID).Str("instance", path)
}
