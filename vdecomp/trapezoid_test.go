package vdecomp

import (
	"testing"

	"github.com/arclen/vdcolor/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trapSeg(t *testing.T, ax, ay, bx, by int64) geom.Segment {
	t.Helper()
	s, err := geom.NewSegment(geom.NewVertex(ax, ay), geom.NewVertex(bx, by), geom.NoIndex)
	require.NoError(t, err)
	return s
}

func TestTrapezoidContains(t *testing.T) {
	top := trapSeg(t, 0, 10, 10, 10)
	bottom := trapSeg(t, 0, 0, 10, 0)
	tr := NewTrapezoid(top, []geom.Vertex{geom.NewVertex(0, 0), geom.NewVertex(0, 10)},
		[]geom.Vertex{geom.NewVertex(10, 0), geom.NewVertex(10, 10)}, bottom)

	assert.True(t, tr.Contains(geom.NewVertex(5, 5)))
	assert.False(t, tr.Contains(geom.NewVertex(5, 11)))
	assert.False(t, tr.Contains(geom.NewVertex(11, 5)))
}

func TestTrapezoidIsViolatedBySegment(t *testing.T) {
	top := trapSeg(t, 0, 10, 10, 10)
	bottom := trapSeg(t, 0, 0, 10, 0)
	tr := NewTrapezoid(top, []geom.Vertex{geom.NewVertex(0, 0), geom.NewVertex(0, 10)},
		[]geom.Vertex{geom.NewVertex(10, 0), geom.NewVertex(10, 10)}, bottom)

	crossing := trapSeg(t, 5, -1, 5, 11)
	assert.True(t, tr.IsViolatedBySegment(crossing))

	interior := trapSeg(t, 2, 2, 8, 8)
	assert.False(t, tr.IsViolatedBySegment(interior))
}

// A vertical top segment collapses to its lower endpoint (spec §4.3).
func TestTrapezoidVerticalTopCollapses(t *testing.T) {
	top := trapSeg(t, 5, 5, 5, 10)
	bottom := trapSeg(t, 0, 0, 10, 0)
	tr := NewTrapezoid(top, []geom.Vertex{geom.NewVertex(0, 0)}, []geom.Vertex{geom.NewVertex(10, 0)}, bottom)

	assert.True(t, tr.top.isPoint)
	assert.Equal(t, geom.NewVertex(5, 5), tr.top.point)
}

// AppendLeftPoint/AppendRightPoint mutate an existing neighbor's anchor set
// in place (spec §4.6.1's boundary sub-cases), distinct from UpdateLeftPoints
// which replaces the set wholesale during carry inheritance (spec §4.6.2).
func TestTrapezoidAppendPointsUpdateX(t *testing.T) {
	top := trapSeg(t, 0, 10, 10, 10)
	bottom := trapSeg(t, 0, 0, 10, 0)
	tr := NewTrapezoid(top, []geom.Vertex{geom.NewVertex(0, 0)}, []geom.Vertex{geom.NewVertex(10, 0)}, bottom)

	tr.AppendRightPoint(geom.NewVertex(10, 5))
	assert.ElementsMatch(t, []geom.Vertex{geom.NewVertex(10, 0), geom.NewVertex(10, 5)}, tr.RightPoints)
	assert.Equal(t, int64(10), tr.rightX)

	tr.AppendLeftPoint(geom.NewVertex(0, 5))
	assert.ElementsMatch(t, []geom.Vertex{geom.NewVertex(0, 0), geom.NewVertex(0, 5)}, tr.LeftPoints)
	assert.Equal(t, int64(0), tr.leftX)
}

func TestTrapezoidUpdateLeftPointsReplacesAnchorsWholesale(t *testing.T) {
	top := trapSeg(t, 0, 10, 20, 10)
	bottom := trapSeg(t, 0, 0, 20, 0)
	tr := NewTrapezoid(top, nil, []geom.Vertex{geom.NewVertex(20, 0)}, bottom)
	require.Equal(t, int64(0), tr.leftX, "empty LeftPoints falls back to the boundary segments' own x")

	tr.UpdateLeftPoints([]geom.Vertex{geom.NewVertex(7, 3)})
	assert.Equal(t, []geom.Vertex{geom.NewVertex(7, 3)}, tr.LeftPoints)
	assert.Equal(t, int64(7), tr.leftX)
}

func TestTrapezoidSegmentEnter(t *testing.T) {
	top := trapSeg(t, 0, 10, 10, 10)
	bottom := trapSeg(t, 0, 0, 10, 0)
	tr := NewTrapezoid(top, []geom.Vertex{geom.NewVertex(0, 0), geom.NewVertex(0, 10)},
		[]geom.Vertex{geom.NewVertex(10, 0), geom.NewVertex(10, 10)}, bottom)

	entering := trapSeg(t, -5, 3, 15, 7)
	assert.True(t, tr.SegmentEnter(entering))

	notEntering := trapSeg(t, 1, 1, 9, 9)
	assert.False(t, tr.SegmentEnter(notEntering))
}
