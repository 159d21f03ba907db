package vdecomp

import (
	"fmt"
	"math/big"

	"github.com/arclen/vdcolor/geom"
)

// boundary is a trapezoid's top or bottom edge. A vertical input segment
// collapses to the single point described in spec §4.3, so a boundary is
// either a proper non-vertical Segment or a degenerate Vertex.
type boundary struct {
	seg     geom.Segment
	point   geom.Vertex
	isPoint bool
}

func topBoundary(s geom.Segment) boundary {
	if s.IsVertical() {
		lower := s.Endpoint1
		if s.Endpoint2.Y < lower.Y {
			lower = s.Endpoint2
		}
		return boundary{point: lower, isPoint: true}
	}
	return boundary{seg: s}
}

func bottomBoundary(s geom.Segment) boundary {
	if s.IsVertical() {
		upper := s.Endpoint1
		if s.Endpoint2.Y > upper.Y {
			upper = s.Endpoint2
		}
		return boundary{point: upper, isPoint: true}
	}
	return boundary{seg: s}
}

// violatedBy reports whether segment crosses this boundary, matching
// Segment.intersects semantics even in the degenerate point case (spec
// §4.3: a segment passing exactly through a collapsed boundary point,
// without that point as one of its own endpoints, counts as a violation).
func (b boundary) violatedBy(segment geom.Segment) bool {
	if b.isPoint {
		if b.point == segment.Endpoint1 || b.point == segment.Endpoint2 {
			return false
		}
		return geom.OrientationOf(segment.Endpoint1, segment.Endpoint2, b.point) == geom.Collinear &&
			geom.OnSegment(segment.Endpoint1, b.point, segment.Endpoint2)
	}
	return b.seg.Intersects(segment)
}

// weaklyAbove reports whether v lies above-or-on this boundary, used by
// Trapezoid.Contains (the bottom boundary) and its complement (the top
// boundary).
func (b boundary) weaklyAbove(v geom.Vertex) bool {
	if b.isPoint {
		return v == b.point || v.Y >= b.point.Y
	}
	return v.IsAbove(b.seg)
}

// Trapezoid is a single cell of the vertical decomposition: the region
// bounded above by top, below by bottom, and at the sides by the vertical
// lines through left/right anchoring points (spec §3).
type Trapezoid struct {
	TopSegment    geom.Segment
	BottomSegment geom.Segment
	LeftPoints    []geom.Vertex
	RightPoints   []geom.Vertex

	top    boundary
	bottom boundary
	leftX  int64
	rightX int64
}

// NewTrapezoid builds a Trapezoid from its boundary segments and the sets of
// vertices anchoring its left and right sides. Per spec §4.3, a vertical
// top/bottom segment collapses to a point rather than keeping its original
// (degenerate) endpoints.
func NewTrapezoid(top geom.Segment, leftPoints []geom.Vertex, rightPoints []geom.Vertex, bottom geom.Segment) *Trapezoid {
	t := &Trapezoid{
		TopSegment:    top,
		BottomSegment: bottom,
		LeftPoints:    dedupeVertices(leftPoints),
		RightPoints:   dedupeVertices(rightPoints),
		top:           topBoundary(top),
		bottom:        bottomBoundary(bottom),
	}
	t.recomputeX()
	return t
}

func dedupeVertices(vs []geom.Vertex) []geom.Vertex {
	seen := make(map[geom.Vertex]struct{}, len(vs))
	out := make([]geom.Vertex, 0, len(vs))
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (t *Trapezoid) recomputeX() {
	a, b := t.TopSegment.Endpoint1, t.TopSegment.Endpoint2
	d, c := t.BottomSegment.Endpoint1, t.BottomSegment.Endpoint2
	if len(t.LeftPoints) > 0 {
		t.leftX = t.LeftPoints[0].X
	} else {
		t.leftX = max64(a.X, d.X)
	}
	if len(t.RightPoints) > 0 {
		t.rightX = t.RightPoints[0].X
	} else {
		t.rightX = min64(b.X, c.X)
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func (t *Trapezoid) String() string {
	return fmt.Sprintf("trapezoid[x %d..%d, top %s, bottom %s]", t.leftX, t.rightX, t.TopSegment, t.BottomSegment)
}

// UpdateLeftPoints replaces the trapezoid's left-anchor set, as happens when
// a neighboring trapezoid is rewritten out from under it (spec §4.6).
func (t *Trapezoid) UpdateLeftPoints(points []geom.Vertex) {
	t.LeftPoints = dedupeVertices(points)
	a, d := t.TopSegment.Endpoint1, t.BottomSegment.Endpoint1
	if len(t.LeftPoints) > 0 {
		t.leftX = t.LeftPoints[0].X
	} else {
		t.leftX = max64(a.X, d.X)
	}
}

// AppendRightPoint adds v to the trapezoid's right-anchor set, used when a
// neighboring trapezoid's degenerate split needs a finer anchor on this
// trapezoid's matching side without rewriting it entirely (spec §4.6.1's
// boundary sub-cases: "append ep1/ep2 to adjacent neighbors' points").
func (t *Trapezoid) AppendRightPoint(v geom.Vertex) {
	t.RightPoints = dedupeVertices(append(t.RightPoints, v))
	if len(t.RightPoints) > 0 {
		t.rightX = t.RightPoints[0].X
	}
}

// AppendLeftPoint is the symmetric counterpart of AppendRightPoint.
func (t *Trapezoid) AppendLeftPoint(v geom.Vertex) {
	t.LeftPoints = dedupeVertices(append(t.LeftPoints, v))
	if len(t.LeftPoints) > 0 {
		t.leftX = t.LeftPoints[0].X
	}
}

// IsViolatedBySegment reports whether segment crosses this trapezoid's top
// or bottom boundary. AddSegment calls it on each trapezoid of the
// crossed-trapezoid path before any update is made.
func (t *Trapezoid) IsViolatedBySegment(segment geom.Segment) bool {
	return t.bottom.violatedBy(segment) || t.top.violatedBy(segment)
}

// Contains reports whether point lies weakly above the bottom boundary,
// strictly below the top boundary, and at an x within [leftX, rightX].
func (t *Trapezoid) Contains(point geom.Vertex) bool {
	return t.bottom.weaklyAbove(point) && !t.top.weaklyAbove(point) &&
		t.leftX <= point.X && point.X <= t.rightX
}

// SegmentEnter reports whether segment enters this trapezoid through its
// left vertical chord — the test used to pick the successor trapezoid while
// walking the path of cells a newly-inserted segment crosses (spec §4.5,
// "segment_enter" in the original solver).
//
// The chord runs from the point where BottomSegment crosses x = leftX to
// the point where TopSegment does; that crossing point is not generally at
// an integer y even though leftX itself always is (leftX is some existing
// vertex's x-coordinate), so the orientation test against it is evaluated
// with exact rationals rather than losing precision to floating point.
func (t *Trapezoid) SegmentEnter(segment geom.Segment) bool {
	return chordEnteredBy(t.bottom, t.top, t.leftX, segment)
}

// chordEnteredBy decides whether segment crosses the vertical chord at x,
// running from the point where bottom meets x up to where top meets x,
// using the same combinatorial cases as Segment.IsEnteredBy.
func chordEnteredBy(bottom, top boundary, x int64, segment geom.Segment) bool {
	e1, e2 := segment.Endpoint1, segment.Endpoint2

	// o1, o2: side of the vertical line x=px that each segment endpoint
	// falls on (Clockwise = right of the upward chord, CounterClockwise =
	// left of it — see predicates.go's sign convention).
	o1 := sideOfVertical(x, e1)
	o2 := sideOfVertical(x, e2)

	o3 := chordPointOrientation(bottom, x, e1, e2)
	o4 := chordPointOrientation(top, x, e1, e2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if chordPointEquals(bottom, x, e1) || chordPointEquals(top, x, e1) ||
		chordPointEquals(bottom, x, e2) || chordPointEquals(top, x, e2) {
		return true
	}

	// An endpoint landing exactly on the chord's x must also fall within
	// its y-extent to count as touching the chord (o1/o2 collinear alone
	// only means the endpoint shares the chord's x-coordinate).
	if o1 == geom.Collinear && vertexWithinChord(bottom, top, x, e1) {
		return true
	}
	if o2 == geom.Collinear && vertexWithinChord(bottom, top, x, e2) {
		return true
	}

	return false
}

// vertexWithinChord reports whether v (already known to share x with the
// chord) falls within [bottomY(x), topY(x)].
func vertexWithinChord(bottom, top boundary, x int64, v geom.Vertex) bool {
	aboveOrOnBottom := true
	if bottom.isPoint {
		aboveOrOnBottom = v.Y >= bottom.point.Y
	} else {
		aboveOrOnBottom = compareVertexToBoundaryAtX(bottom.seg, x, v) >= 0
	}
	belowOrOnTop := true
	if top.isPoint {
		belowOrOnTop = v.Y <= top.point.Y
	} else {
		belowOrOnTop = compareVertexToBoundaryAtX(top.seg, x, v) <= 0
	}
	return aboveOrOnBottom && belowOrOnTop
}

func sideOfVertical(x int64, v geom.Vertex) geom.Orientation {
	switch {
	case v.X > x:
		return geom.Clockwise
	case v.X < x:
		return geom.CounterClockwise
	default:
		return geom.Collinear
	}
}

// chordPointOrientation returns the orientation of a -> b -> p, where p is
// the (possibly non-integer) point at which b crosses the vertical line
// x = px.
func chordPointOrientation(b boundary, px int64, a, bPt geom.Vertex) geom.Orientation {
	if b.isPoint {
		return geom.OrientationOf(a, bPt, b.point)
	}
	return orientationAtVerticalCrossing(b.seg, px, a, bPt)
}

func chordPointEquals(b boundary, px int64, v geom.Vertex) bool {
	if b.isPoint {
		return b.point == v
	}
	if v.X != px {
		return false
	}
	return geom.OrientationOf(b.seg.Endpoint1, b.seg.Endpoint2, v) == geom.Collinear &&
		geom.OnSegment(b.seg.Endpoint1, v, b.seg.Endpoint2)
}

// compareVertexToBoundaryAtX compares v.Y against the exact y-value of
// boundary at x = px, returning -1, 0 or 1. boundary must be non-vertical.
func compareVertexToBoundaryAtX(boundarySeg geom.Segment, px int64, v geom.Vertex) int {
	y := yAtExact(boundarySeg, px)
	vy := new(big.Rat).SetInt64(v.Y)
	return vy.Cmp(y)
}

// yAtExact returns the exact y-coordinate of s at x = px as a rational,
// avoiding floating point entirely (spec §4.1's exactness requirement
// extended to this one derived quantity).
func yAtExact(s geom.Segment, px int64) *big.Rat {
	d, c := s.Endpoint1, s.Endpoint2
	dx := c.X - d.X
	if dx == 0 {
		return new(big.Rat).SetInt64(d.Y)
	}
	num := new(big.Rat).Mul(new(big.Rat).SetInt64(c.Y-d.Y), new(big.Rat).SetInt64(px-d.X))
	denom := new(big.Rat).SetInt64(dx)
	y := num.Quo(num, denom)
	return y.Add(y, new(big.Rat).SetInt64(d.Y))
}

// orientationAtVerticalCrossing returns the orientation of a -> b -> p,
// where p = (px, yAtExact(boundarySeg, px)), computed exactly via rational
// arithmetic.
func orientationAtVerticalCrossing(boundarySeg geom.Segment, px int64, a, b geom.Vertex) geom.Orientation {
	py := yAtExact(boundarySeg, px)
	pxR := new(big.Rat).SetInt64(px)

	byMinusAy := new(big.Rat).SetInt64(b.Y - a.Y)
	pxMinusBx := new(big.Rat).Sub(pxR, new(big.Rat).SetInt64(b.X))
	t1 := new(big.Rat).Mul(byMinusAy, pxMinusBx)

	bxMinusAx := new(big.Rat).SetInt64(b.X - a.X)
	pyMinusBy := new(big.Rat).Sub(py, new(big.Rat).SetInt64(b.Y))
	t2 := new(big.Rat).Mul(bxMinusAx, pyMinusBy)

	val := t1.Sub(t1, t2)
	switch val.Sign() {
	case 1:
		return geom.Clockwise
	case -1:
		return geom.CounterClockwise
	default:
		return geom.Collinear
	}
}
