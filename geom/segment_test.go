package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(t *testing.T, ax, ay, bx, by Coordinate) Segment {
	t.Helper()
	s, err := NewSegment(NewVertex(ax, ay), NewVertex(bx, by), 0)
	require.NoError(t, err)
	return s
}

func TestNewSegmentCanonicalOrder(t *testing.T) {
	s := seg(t, 10, 0, 0, 0)
	assert.Equal(t, NewVertex(0, 0), s.Endpoint1)
	assert.Equal(t, NewVertex(10, 0), s.Endpoint2)

	// Equal x: smaller y becomes Endpoint1.
	s2 := seg(t, 5, 9, 5, 1)
	assert.Equal(t, NewVertex(5, 1), s2.Endpoint1)
	assert.Equal(t, NewVertex(5, 9), s2.Endpoint2)
}

func TestNewSegmentRejectsDegenerate(t *testing.T) {
	_, err := NewSegment(NewVertex(1, 1), NewVertex(1, 1), 0)
	assert.ErrorIs(t, err, ErrDegenerateSegment)
}

// Scenario E of spec.md §8: a vertical and horizontal segment cross properly.
func TestIntersectsProperCrossing(t *testing.T) {
	horiz := seg(t, 0, 5, 10, 5)
	vert := seg(t, 5, 0, 5, 10)
	assert.True(t, horiz.Intersects(vert))
	assert.True(t, vert.Intersects(horiz), "crossing symmetry")
}

// Property 5 of spec.md §8: segments sharing exactly one endpoint, with no
// collinear overlap, do not intersect.
func TestIntersectsSharedEndpointOnly(t *testing.T) {
	a := seg(t, 0, 0, 10, 0)
	b := seg(t, 0, 0, 5, 9)
	assert.False(t, a.Intersects(b))
	assert.False(t, b.Intersects(a))
}

// Scenario F of spec.md §8: disjoint collinear segments do not "intersect".
func TestIntersectsDisjointCollinear(t *testing.T) {
	a := seg(t, 0, 0, 3, 0)
	b := seg(t, 5, 0, 8, 0)
	assert.False(t, a.Intersects(b))
}

func TestIntersectsOverlappingCollinear(t *testing.T) {
	a := seg(t, 0, 0, 10, 0)
	b := seg(t, 5, 0, 15, 0)
	assert.True(t, a.Intersects(b))
}

func TestIntersectsEndpointInInterior(t *testing.T) {
	a := seg(t, 0, 0, 10, 0)
	b := seg(t, 5, 0, 5, 9)
	assert.True(t, a.Intersects(b))
}

func TestIntersectsVertical(t *testing.T) {
	a := seg(t, 0, 0, 0, 10)
	b := seg(t, 1, 5, 1, 15)
	assert.True(t, a.IntersectsVertical(b))

	c := seg(t, 1, 10, 1, 20)
	assert.False(t, a.IntersectsVertical(c), "touching at a single y does not count")
}

func TestIsEnteredBy(t *testing.T) {
	chord := seg(t, 5, 0, 5, 10) // left vertical chord of some trapezoid
	entering := seg(t, 0, 3, 10, 7)
	assert.True(t, chord.IsEnteredBy(entering))

	notEntering := seg(t, 6, 0, 10, 10)
	assert.False(t, chord.IsEnteredBy(notEntering))
}
