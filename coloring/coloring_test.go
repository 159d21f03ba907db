package coloring

import (
	"testing"

	"github.com/arclen/vdcolor/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(t *testing.T, ax, ay, bx, by int64, idx int) *geom.Segment {
	t.Helper()
	s, err := geom.NewSegment(geom.NewVertex(ax, ay), geom.NewVertex(bx, by), idx)
	require.NoError(t, err)
	return &s
}

// Property 1 & 2 of spec.md §8, exercised across the six end-to-end
// scenarios: no two same-colored segments cross, and every color in
// [0, num_colors) is used.
func assertValidColoring(t *testing.T, segments []*geom.Segment, result Result, expectedColors int) {
	t.Helper()
	require.Equal(t, expectedColors, result.NumColors)
	require.Len(t, result.Colors, len(segments))

	used := make([]bool, result.NumColors)
	for _, c := range result.Colors {
		require.GreaterOrEqual(t, c, 0)
		require.Less(t, c, result.NumColors)
		used[c] = true
	}
	for _, u := range used {
		assert.True(t, u)
	}

	for i := range segments {
		for j := i + 1; j < len(segments); j++ {
			if result.Colors[i] != result.Colors[j] {
				continue
			}
			assert.False(t, segments[i].Intersects(*segments[j]),
				"same-colored segments %s and %s must not cross", segments[i], segments[j])
		}
	}
}

func TestColorTriangle(t *testing.T) {
	segments := []*geom.Segment{
		seg(t, 0, 0, 10, 0, 0),
		seg(t, 10, 0, 5, 9, 1),
		seg(t, 5, 9, 0, 0, 2),
	}
	result := Color(segments, BoundsFromSegments(segments), Options{})
	assertValidColoring(t, segments, result, 1)
}

func TestColorCrossingDiagonals(t *testing.T) {
	segments := []*geom.Segment{
		seg(t, 0, 0, 10, 10, 0),
		seg(t, 0, 10, 10, 0, 1),
	}
	result := Color(segments, BoundsFromSegments(segments), Options{})
	assertValidColoring(t, segments, result, 2)
}

func TestColorBowtie(t *testing.T) {
	segments := []*geom.Segment{
		seg(t, 0, 0, 10, 0, 0),
		seg(t, 0, 10, 10, 10, 1),
		seg(t, 0, 0, 10, 10, 2),
		seg(t, 10, 0, 0, 10, 3),
	}
	result := Color(segments, BoundsFromSegments(segments), Options{})
	assertValidColoring(t, segments, result, 2)
}

func TestColorConcurrentSegments(t *testing.T) {
	segments := []*geom.Segment{
		seg(t, 0, 0, 10, 0, 0),
		seg(t, 0, 0, 5, 9, 1),
		seg(t, 0, 0, -5, 9, 2),
	}
	result := Color(segments, BoundsFromSegments(segments), Options{})
	assertValidColoring(t, segments, result, 1)
}

func TestColorVerticalHorizontalCross(t *testing.T) {
	segments := []*geom.Segment{
		seg(t, 0, 5, 10, 5, 0),
		seg(t, 5, 0, 5, 10, 1),
	}
	result := Color(segments, BoundsFromSegments(segments), Options{})
	assertValidColoring(t, segments, result, 2)
}

func TestColorDisjointCollinear(t *testing.T) {
	segments := []*geom.Segment{
		seg(t, 0, 0, 3, 0, 0),
		seg(t, 5, 0, 8, 0, 1),
	}
	result := Color(segments, BoundsFromSegments(segments), Options{})
	assertValidColoring(t, segments, result, 1)
}
