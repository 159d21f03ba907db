// Package coloring drives the incremental-vertical-decomposition coloring
// loop: each segment is tried against an ordered list of VDs, taking the
// first that accepts it as its color, opening a new VD on total rejection
// (spec.md §1, §5 "Ordering guarantee"; grounded on
// original_source/gcsolver.py's perform_decompositions).
package coloring

import (
	"math/rand"

	"github.com/arclen/vdcolor/geom"
	"github.com/arclen/vdcolor/vdecomp"
	"github.com/rs/zerolog"
)

// Result is the color assignment produced by Color, in the segments'
// original input order.
type Result struct {
	NumColors int
	Colors    []int
}

// Options configures a Color run.
type Options struct {
	// Shuffle randomizes processing order using Rand, which must be
	// supplied (never the global math/rand state) so a run is
	// reproducible under a caller-chosen seed.
	Shuffle bool
	Rand    *rand.Rand

	// Logger receives Info-level events (VD opened) and Warn-level
	// events (segment rejected by every open VD). Nil-safe.
	Logger *zerolog.Logger
}

// Color assigns each segment in segments a color such that no two
// same-colored segments cross, using the greedy VD-acceptance strategy of
// spec.md §1.
func Color(segments []*geom.Segment, bounds vdecomp.Bounds, opts Options) Result {
	order := make([]int, len(segments))
	for i := range order {
		order[i] = i
	}
	if opts.Shuffle && opts.Rand != nil {
		opts.Rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	colors := make([]int, len(segments))
	var decompositions []*vdecomp.VerticalDecomposition

	for _, i := range order {
		seg := *segments[i]
		placed := false
		for vdIndex, vd := range decompositions {
			ok, err := vd.AddSegment(seg)
			if err != nil {
				panic(err)
			}
			if ok {
				colors[i] = vdIndex
				placed = true
				break
			}
		}
		if !placed {
			if len(decompositions) > 0 && opts.Logger != nil {
				opts.Logger.Warn().Int("index", seg.Index).Int("open_vds", len(decompositions)).
					Msg("segment rejected by every open VD")
			}
			vd := vdecomp.New(bounds)
			ok, err := vd.AddSegment(seg)
			if err != nil {
				panic(err)
			}
			if !ok {
				panic("coloring: a fresh VerticalDecomposition rejected a single segment")
			}
			decompositions = append(decompositions, vd)
			colors[i] = len(decompositions) - 1
			logEvent(opts.Logger).Int("vd_index", colors[i]).Msg("opened new VD")
		}
	}

	return Result{NumColors: len(decompositions), Colors: colors}
}

func logEvent(logger *zerolog.Logger) *zerolog.Event {
	if logger == nil {
		return zerolog.Nop().Info()
	}
	return logger.Info()
}
