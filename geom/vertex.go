package geom

import "fmt"

// Vertex is an integer-coordinate point. Values are immutable once
// constructed; they may be shared by many Segments, Trapezoids, and DAG
// nodes (spec §3, "Ownership / lifecycle").
type Vertex struct {
	X, Y Coordinate
}

// NewVertex constructs a Vertex from plain integers.
func NewVertex(x, y Coordinate) Vertex {
	return Vertex{X: x, Y: y}
}

func (v Vertex) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

// LeftOf reports whether v lies strictly to the left of other by x, with
// ties broken in other's favor (v.X == other.X is not "left of").
func (v Vertex) LeftOf(other Vertex) bool {
	return v.X < other.X
}

// RightOf is the strict converse of LeftOf.
func (v Vertex) RightOf(other Vertex) bool {
	return v.X > other.X
}

// IsAbove reports whether v is above-or-on segment s: the orientation of
// s.Endpoint1 -> s.Endpoint2 -> v is not clockwise. A point exactly on s is
// therefore "above" in this weak sense (spec §3).
func (v Vertex) IsAbove(s Segment) bool {
	return OrientationOf(s.Endpoint1, s.Endpoint2, v) != Clockwise
}

// IsBelow is the symmetric weak test: orientation is not counterclockwise.
func (v Vertex) IsBelow(s Segment) bool {
	return OrientationOf(s.Endpoint1, s.Endpoint2, v) != CounterClockwise
}
