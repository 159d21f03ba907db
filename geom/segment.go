package geom

import (
	"errors"
	"fmt"
)

// ErrDegenerateSegment is returned by NewSegment when the two endpoints
// coincide (spec §3: "Invariant: endpoints distinct").
var ErrDegenerateSegment = errors.New("geom: segment endpoints must be distinct")

// NoIndex marks a Segment with no meaningful external edge index (used for
// the synthetic segments that bound a trapezoid's top/bottom).
const NoIndex = -1

// Segment is an oriented pair of endpoints, canonically ordered so that
// Endpoint1.X <= Endpoint2.X, breaking x-ties by the smaller y (spec §3).
// Index identifies the originating input edge; it is opaque to the
// vertical-decomposition core.
type Segment struct {
	Endpoint1, Endpoint2 Vertex
	Index                int
}

// NewSegment canonicalizes endpoint order and validates distinctness.
func NewSegment(a, b Vertex, index int) (Segment, error) {
	if a == b {
		return Segment{}, fmt.Errorf("%w: %s", ErrDegenerateSegment, a)
	}
	if a.X < b.X || (a.X == b.X && a.Y < b.Y) {
		return Segment{Endpoint1: a, Endpoint2: b, Index: index}, nil
	}
	return Segment{Endpoint1: b, Endpoint2: a, Index: index}, nil
}

// MustNewSegment is NewSegment, panicking on error. Used where the caller
// has already validated distinctness (e.g. trapezoid construction from
// existing vertices).
func MustNewSegment(a, b Vertex, index int) Segment {
	s, err := NewSegment(a, b, index)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Segment) String() string {
	return fmt.Sprintf("(index: %d, %s -- %s)", s.Index, s.Endpoint1, s.Endpoint2)
}

// IsVertical reports whether both endpoints share an x-coordinate.
func (s Segment) IsVertical() bool {
	return s.Endpoint1.X == s.Endpoint2.X
}

// Intersects is the proper-or-improper crossing test of spec §4.2: true iff
// the two segments share a point other than a common endpoint.
func (s Segment) Intersects(other Segment) bool {
	a1, a2 := s.Endpoint1, s.Endpoint2
	b1, b2 := other.Endpoint1, other.Endpoint2

	o1 := OrientationOf(a1, a2, b1)
	o2 := OrientationOf(a1, a2, b2)
	o3 := OrientationOf(b1, b2, a1)
	o4 := OrientationOf(b1, b2, a2)

	// Collinear overlap.
	if o1 == Collinear && o2 == Collinear && o3 == Collinear && o4 == Collinear {
		if OnSegment(a1, b1, a2) || OnSegment(a1, b2, a2) ||
			OnSegment(b1, a1, b2) || OnSegment(b1, a2, b2) {
			return true
		}
	}

	// Shared endpoint never counts as a crossing.
	if a1 == b1 || a2 == b1 || a1 == b2 || a2 == b2 {
		return false
	}

	// Proper crossing: the endpoints of each segment straddle the other's line.
	if o1 != o2 && o3 != o4 {
		return true
	}

	// One endpoint lying in the interior of the other segment.
	if (o1 == Collinear && OnSegment(a1, b1, a2)) ||
		(o2 == Collinear && OnSegment(a1, b2, a2)) ||
		(o3 == Collinear && OnSegment(b1, a1, b2)) ||
		(o4 == Collinear && OnSegment(b1, a2, b2)) {
		return true
	}

	return false
}

// IntersectsVertical is the y-range overlap test of spec §4.2, used to
// decide whether two vertical chords are genuine (non-degenerate) trapezoid
// neighbors.
func (s Segment) IntersectsVertical(other Segment) bool {
	aLo, aHi := s.Endpoint1.Y, s.Endpoint2.Y
	if aLo > aHi {
		aLo, aHi = aHi, aLo
	}
	bLo, bHi := other.Endpoint1.Y, other.Endpoint2.Y
	if bLo > bHi {
		bLo, bHi = bHi, bLo
	}
	lo := aLo
	if bLo > lo {
		lo = bLo
	}
	hi := aHi
	if bHi < hi {
		hi = bHi
	}
	return lo < hi
}

// IsEnteredBy tests, with the receiver acting as a trapezoid's left
// vertical chord, whether segment enters the trapezoid from the left: a
// proper crossing, a shared endpoint, or an endpoint of segment lying on
// the chord all count as "entering" (spec §4.2).
func (s Segment) IsEnteredBy(segment Segment) bool {
	o1 := OrientationOf(s.Endpoint1, s.Endpoint2, segment.Endpoint1)
	o2 := OrientationOf(s.Endpoint1, s.Endpoint2, segment.Endpoint2)
	o3 := OrientationOf(segment.Endpoint1, segment.Endpoint2, s.Endpoint1)
	o4 := OrientationOf(segment.Endpoint1, segment.Endpoint2, s.Endpoint2)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if s.Endpoint1 == segment.Endpoint1 || s.Endpoint2 == segment.Endpoint1 ||
		s.Endpoint1 == segment.Endpoint2 || s.Endpoint2 == segment.Endpoint2 {
		return true
	}

	if (o1 == Collinear && OnSegment(s.Endpoint1, segment.Endpoint1, s.Endpoint2)) ||
		(o2 == Collinear && OnSegment(s.Endpoint1, segment.Endpoint2, s.Endpoint2)) {
		return true
	}

	return false
}

// OnVerticalLine reports whether v lies on this segment's x-coordinate,
// assuming the receiver is vertical (spec §4.2, the specialized on_segment
// used for trapezoid vertical chords).
func (s Segment) OnVerticalLine(v Vertex) bool {
	return s.Endpoint1.X == v.X
}

// ContainsYVertical reports whether v.Y lies within this vertical
// segment's y-range. Used together with OnVerticalLine.
func (s Segment) ContainsYVertical(v Vertex) bool {
	lo, hi := s.Endpoint1.Y, s.Endpoint2.Y
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo <= v.Y && v.Y <= hi
}

// Top returns the lexicographically-higher endpoint (greater y, x breaking
// ties), used for symmetry with the lexicographic rotation convention
// elsewhere in the package family.
func (s Segment) Top() Vertex {
	if s.Endpoint1.Y > s.Endpoint2.Y || (s.Endpoint1.Y == s.Endpoint2.Y && s.Endpoint1.X > s.Endpoint2.X) {
		return s.Endpoint1
	}
	return s.Endpoint2
}

// Bottom returns the endpoint opposite Top.
func (s Segment) Bottom() Vertex {
	top := s.Top()
	if top == s.Endpoint1 {
		return s.Endpoint2
	}
	return s.Endpoint1
}
