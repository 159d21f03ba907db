package vdecomp

import (
	"testing"

	"github.com/arclen/vdcolor/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseNextVertex(t *testing.T) {
	left := NewTrapezoidNode(nil)
	right := NewTrapezoidNode(nil)
	n := NewVertexNode(geom.NewVertex(5, 0), left, right)

	assert.Same(t, left, n.ChooseNext(geom.NewVertex(2, 0)))
	assert.Same(t, right, n.ChooseNext(geom.NewVertex(8, 0)))
}

func TestChooseNextSegmentOrientation(t *testing.T) {
	left := NewTrapezoidNode(nil)
	right := NewTrapezoidNode(nil)
	s, err := geom.NewSegment(geom.NewVertex(0, 0), geom.NewVertex(10, 10), 0)
	require.NoError(t, err)
	n := NewSegmentNode(s, left, right)

	above := geom.NewVertex(1, 9) // above the diagonal -> CCW -> right
	below := geom.NewVertex(9, 1) // below the diagonal -> CW -> left

	assert.Same(t, left, n.ChooseNext(below))
	assert.Same(t, right, n.ChooseNext(above))
}

// Coincident x: segment.endpoint1 (left endpoint) descends right, endpoint2
// descends left, per spec §4.4's tie-break.
func TestChooseNextSegmentedVertexTieBreak(t *testing.T) {
	left := NewTrapezoidNode(nil)
	right := NewTrapezoidNode(nil)
	splitter := geom.NewVertex(5, 0)
	n := NewVertexNode(splitter, left, right)

	s, err := geom.NewSegment(geom.NewVertex(5, 0), geom.NewVertex(5, 10), 0)
	require.NoError(t, err)

	assert.Same(t, right, n.ChooseNextSegmented(s, s.Endpoint1))
	assert.Same(t, left, n.ChooseNextSegmented(s, s.Endpoint2))
}

func TestReplaceChildRetargetsAllParents(t *testing.T) {
	old := NewTrapezoidNode(nil)
	p1 := NewVertexNode(geom.NewVertex(0, 0), old, NewTrapezoidNode(nil))
	p2 := NewVertexNode(geom.NewVertex(1, 0), NewTrapezoidNode(nil), old)
	require.Len(t, old.Parents, 2)

	replacement := NewTrapezoidNode(nil)
	ReplaceChild(old, replacement)

	assert.Same(t, replacement, p1.Left)
	assert.Same(t, replacement, p2.Right)
	assert.Empty(t, old.Parents)
	assert.Len(t, replacement.Parents, 2)
}
