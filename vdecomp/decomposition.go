// Package vdecomp implements the vertical-decomposition core: trapezoid
// cells of a bounding rectangle, a Seidel-style point-location search DAG
// over them, and the incremental segment-insertion routine that keeps both
// in sync.
package vdecomp

import (
	"errors"
	"fmt"

	"github.com/arclen/vdcolor/geom"
	"github.com/rs/zerolog"
)

// ErrInvariantViolation marks a core bug: a precondition the update routine
// assumed (a non-empty path, non-crossing boundaries) did not hold. It is
// never expected in normal operation (spec §7, error class 3).
var ErrInvariantViolation = errors.New("vdecomp: invariant violation")

// Bounds is the bounding rectangle the decomposition covers before the
// 1-unit widening described in spec §3.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int64
}

// VerticalDecomposition owns one search DAG and the trapezoids it indexes.
// It is single-threaded and holds no shared mutable state across instances
// (spec §5): callers wanting parallelism run independent VDs in separate
// goroutines, never share one.
type VerticalDecomposition struct {
	root *Node

	// SelfCheck gates the O(n) consistency assertions of spec §7 item 3.
	// Left false by default; only tests turn it on (the CLI and runner
	// never set it).
	SelfCheck bool

	Logger *zerolog.Logger
}

// New builds a VerticalDecomposition whose single initial trapezoid covers
// bounds widened by one unit on every side, so no input vertex can ever
// land exactly on the outer boundary.
func New(bounds Bounds) *VerticalDecomposition {
	leftTop := geom.NewVertex(bounds.MinX-1, bounds.MaxY+1)
	rightTop := geom.NewVertex(bounds.MaxX+1, bounds.MaxY+1)
	leftBottom := geom.NewVertex(bounds.MinX-1, bounds.MinY-1)
	rightBottom := geom.NewVertex(bounds.MaxX+1, bounds.MinY-1)

	top := geom.MustNewSegment(leftTop, rightTop, geom.NoIndex)
	bottom := geom.MustNewSegment(leftBottom, rightBottom, geom.NoIndex)

	trapezoid := NewTrapezoid(top, []geom.Vertex{leftTop, leftBottom}, []geom.Vertex{rightTop, rightBottom}, bottom)
	return &VerticalDecomposition{root: NewTrapezoidNode(trapezoid)}
}

func (vd *VerticalDecomposition) logDebug() *zerolog.Event {
	if vd.Logger == nil {
		return zerolog.Nop().Debug()
	}
	return vd.Logger.Debug()
}

// PointLocationSegment descends the DAG once per endpoint of segment,
// applying the tie-breaking rules of spec §4.4 so that the two endpoints of
// a segment about to be inserted always land in distinct trapezoids when
// they share an x or lie on an existing segment.
func (vd *VerticalDecomposition) PointLocationSegment(segment geom.Segment) (left, right *Node) {
	left = vd.root
	for !left.IsLeaf() {
		left = left.ChooseNextSegmented(segment, segment.Endpoint1)
	}
	right = vd.root
	for !right.IsLeaf() {
		right = right.ChooseNextSegmented(segment, segment.Endpoint2)
	}
	return left, right
}

// FindPointLocation descends the DAG for an arbitrary query point, ignoring
// segment-aware tie-breaks. Used by tests, not by insertion itself, which
// goes through PointLocationSegment.
func (vd *VerticalDecomposition) FindPointLocation(p geom.Vertex) *Node {
	cur := vd.root
	for !cur.IsLeaf() {
		cur = cur.ChooseNext(p)
	}
	return cur
}

// onBoundary reports that v lies exactly on t's top or bottom boundary
// segment at a point other than one of that segment's endpoints — spec
// §4.5 step 2's is_valid check. Such a point is a collinear conflict the
// walk cannot resolve; a shared endpoint (including the collapsed point of
// a vertical boundary) is not a conflict.
func onBoundary(t *Trapezoid, v geom.Vertex) bool {
	onTop := false
	if !t.top.isPoint && v != t.TopSegment.Endpoint1 && v != t.TopSegment.Endpoint2 {
		onTop = geom.OrientationOf(t.TopSegment.Endpoint1, t.TopSegment.Endpoint2, v) == geom.Collinear &&
			geom.OnSegment(t.TopSegment.Endpoint1, v, t.TopSegment.Endpoint2)
	}
	onBottom := false
	if !t.bottom.isPoint && v != t.BottomSegment.Endpoint1 && v != t.BottomSegment.Endpoint2 {
		onBottom = geom.OrientationOf(t.BottomSegment.Endpoint1, t.BottomSegment.Endpoint2, v) == geom.Collinear &&
			geom.OnSegment(t.BottomSegment.Endpoint1, v, t.BottomSegment.Endpoint2)
	}
	return onTop || onBottom
}

// FindIntersectingTrapezoids walks the path of trapezoid leaves that
// segment would pass through, following right-neighbor links (spec §4.5).
// Returns nil if the segment cannot be inserted into this decomposition
// (an endpoint lies on an existing boundary segment other than at one of its
// endpoints, or no neighbor accepts the walk).
func (vd *VerticalDecomposition) FindIntersectingTrapezoids(segment geom.Segment) []*Node {
	start, end := vd.PointLocationSegment(segment)

	if onBoundary(start.Trapezoid, segment.Endpoint1) || onBoundary(end.Trapezoid, segment.Endpoint2) {
		return nil
	}

	path := []*Node{start}
	current := start
	for current != end {
		var next *Node
		for _, n := range current.RightNeighbours {
			if n.Trapezoid.SegmentEnter(segment) {
				next = n
				break
			}
		}
		if next == nil {
			return nil
		}
		path = append(path, next)
		current = next
	}
	return path
}

// AddSegment attempts to insert segment into this decomposition. It
// returns false (never an error) when the segment conflicts with an
// already-placed one or cannot be located — that is ordinary control flow,
// the coloring driver's signal to try the next VD (spec §7 item 1).
func (vd *VerticalDecomposition) AddSegment(segment geom.Segment) (bool, error) {
	path := vd.FindIntersectingTrapezoids(segment)
	if path == nil {
		return false, nil
	}

	for _, leaf := range path {
		if leaf.Trapezoid.IsViolatedBySegment(segment) {
			return false, nil
		}
	}

	if err := vd.update(path, segment); err != nil {
		return false, fmt.Errorf("add segment %s: %w", segment, err)
	}

	if vd.SelfCheck {
		if err := vd.runSelfChecks(); err != nil {
			panic(err)
		}
	}

	vd.logDebug().Int("index", segment.Index).Str("path", namesOf(path)).Msg("segment inserted")
	return true, nil
}

func (vd *VerticalDecomposition) update(path []*Node, segment geom.Segment) error {
	if len(path) == 1 {
		return vd.updateSingle(path[0], segment)
	}
	return vd.updateMulti(path, segment)
}

func partitionByAbove(points []geom.Vertex, s geom.Segment) (above, below []geom.Vertex) {
	for _, p := range points {
		if p.IsAbove(s) && geom.OrientationOf(s.Endpoint1, s.Endpoint2, p) != geom.Collinear {
			above = append(above, p)
		} else {
			below = append(below, p)
		}
	}
	return above, below
}

// updateSingle implements spec §4.6.1: the segment lies entirely within one
// trapezoid T. Which of the four sub-cases applies depends on whether each
// endpoint already coincides with one of T's existing vertical sides — an
// endpoint shared with an earlier segment (concurrent segments, scenario D)
// lands exactly on that side, and the degenerate sliver that side would
// otherwise need is elided rather than wired into the DAG as a zero-width
// sink.
func (vd *VerticalDecomposition) updateSingle(node *Node, segment geom.Segment) error {
	t := node.Trapezoid
	ep1, ep2 := segment.Endpoint1, segment.Endpoint2

	leftOnBoundary := ep1.X == t.leftX
	rightOnBoundary := ep2.X == t.rightX

	switch {
	case leftOnBoundary && rightOnBoundary:
		return vd.updateSingleBothBoundary(node, segment)
	case leftOnBoundary:
		return vd.updateSingleLeftBoundary(node, segment)
	case rightOnBoundary:
		return vd.updateSingleRightBoundary(node, segment)
	default:
		return vd.updateSingleInterior(node, segment)
	}
}

// updateSingleInterior is spec §4.6.1's interior-interior case: neither
// endpoint touches T's existing sides, so T is replaced by four cells (left
// sliver, above, below, right sliver).
func (vd *VerticalDecomposition) updateSingleInterior(node *Node, segment geom.Segment) error {
	t := node.Trapezoid
	ep1, ep2 := segment.Endpoint1, segment.Endpoint2

	t1 := NewTrapezoid(t.TopSegment, t.LeftPoints, []geom.Vertex{ep1}, t.BottomSegment)
	t2 := NewTrapezoid(t.TopSegment, []geom.Vertex{ep1}, []geom.Vertex{ep2}, segment)
	t3 := NewTrapezoid(segment, []geom.Vertex{ep1}, []geom.Vertex{ep2}, t.BottomSegment)
	t4 := NewTrapezoid(t.TopSegment, []geom.Vertex{ep2}, t.RightPoints, t.BottomSegment)

	n1, n2, n3, n4 := NewTrapezoidNode(t1), NewTrapezoidNode(t2), NewTrapezoidNode(t3), NewTrapezoidNode(t4)

	segNode := NewSegmentNode(segment, n3, n2)
	ep2Node := NewVertexNode(ep2, segNode, n4)
	ep1Node := NewVertexNode(ep1, n1, ep2Node)

	if len(node.Parents) == 0 {
		vd.root = ep1Node
	} else {
		ReplaceChild(node, ep1Node)
	}

	n1.LeftNeighbours = append([]*Node(nil), node.LeftNeighbours...)
	n1.RightNeighbours = []*Node{n2, n3}
	for _, ln := range n1.LeftNeighbours {
		retargetRightNeighbour(ln, node, n1)
	}

	n2.LeftNeighbours = []*Node{n1}
	n2.RightNeighbours = []*Node{n4}
	n3.LeftNeighbours = []*Node{n1}
	n3.RightNeighbours = []*Node{n4}

	n4.LeftNeighbours = []*Node{n2, n3}
	n4.RightNeighbours = append([]*Node(nil), node.RightNeighbours...)
	for _, rn := range n4.RightNeighbours {
		retargetLeftNeighbour(rn, node, n4)
	}

	return nil
}

// updateSingleLeftBoundary is spec §4.6.1's left-on-boundary case: ep1
// already anchors T's left side, so there is no left sliver — T splits
// directly into an above/below pair plus a right sliver.
func (vd *VerticalDecomposition) updateSingleLeftBoundary(node *Node, segment geom.Segment) error {
	t := node.Trapezoid
	ep1, ep2 := segment.Endpoint1, segment.Endpoint2

	aboveLP, belowLP := partitionByAbove(t.LeftPoints, segment)

	above := NewTrapezoid(t.TopSegment, aboveLP, []geom.Vertex{ep2}, segment)
	below := NewTrapezoid(segment, belowLP, []geom.Vertex{ep2}, t.BottomSegment)
	right := NewTrapezoid(t.TopSegment, []geom.Vertex{ep2}, t.RightPoints, t.BottomSegment)

	n1, n2, n3 := NewTrapezoidNode(above), NewTrapezoidNode(below), NewTrapezoidNode(right)

	segNode := NewSegmentNode(segment, n2, n1)
	ep2Node := NewVertexNode(ep2, segNode, n3)
	if len(node.Parents) == 0 {
		vd.root = ep2Node
	} else {
		ReplaceChild(node, ep2Node)
	}

	n1.LeftNeighbours = leftNeighboursAbove(node, segment)
	for _, ln := range n1.LeftNeighbours {
		retargetRightNeighbour(ln, node, n1)
		ln.Trapezoid.AppendRightPoint(ep1)
	}
	n1.RightNeighbours = []*Node{n3}

	n2.LeftNeighbours = leftNeighboursBelow(node, segment)
	for _, ln := range n2.LeftNeighbours {
		retargetRightNeighbour(ln, node, n2)
		ln.Trapezoid.AppendRightPoint(ep1)
	}
	n2.RightNeighbours = []*Node{n3}

	n3.LeftNeighbours = []*Node{n1, n2}
	n3.RightNeighbours = append([]*Node(nil), node.RightNeighbours...)
	for _, rn := range n3.RightNeighbours {
		retargetLeftNeighbour(rn, node, n3)
	}

	return nil
}

// updateSingleRightBoundary is the symmetric counterpart: ep2 already
// anchors T's right side, so T splits into a left sliver plus an
// above/below pair with no right sliver.
func (vd *VerticalDecomposition) updateSingleRightBoundary(node *Node, segment geom.Segment) error {
	t := node.Trapezoid
	ep1, ep2 := segment.Endpoint1, segment.Endpoint2

	aboveRP, belowRP := partitionByAbove(t.RightPoints, segment)

	left := NewTrapezoid(t.TopSegment, t.LeftPoints, []geom.Vertex{ep1}, t.BottomSegment)
	above := NewTrapezoid(t.TopSegment, []geom.Vertex{ep1}, aboveRP, segment)
	below := NewTrapezoid(segment, []geom.Vertex{ep1}, belowRP, t.BottomSegment)

	n1, n2, n3 := NewTrapezoidNode(left), NewTrapezoidNode(above), NewTrapezoidNode(below)

	segNode := NewSegmentNode(segment, n3, n2)
	ep1Node := NewVertexNode(ep1, n1, segNode)
	if len(node.Parents) == 0 {
		vd.root = ep1Node
	} else {
		ReplaceChild(node, ep1Node)
	}

	n1.LeftNeighbours = append([]*Node(nil), node.LeftNeighbours...)
	n1.RightNeighbours = []*Node{n2, n3}
	for _, ln := range n1.LeftNeighbours {
		retargetRightNeighbour(ln, node, n1)
	}

	n2.LeftNeighbours = []*Node{n1}
	n2.RightNeighbours = rightNeighboursAbove(node, segment)
	for _, rn := range n2.RightNeighbours {
		retargetLeftNeighbour(rn, node, n2)
		rn.Trapezoid.AppendLeftPoint(ep2)
	}

	n3.LeftNeighbours = []*Node{n1}
	n3.RightNeighbours = rightNeighboursBelow(node, segment)
	for _, rn := range n3.RightNeighbours {
		retargetLeftNeighbour(rn, node, n3)
		rn.Trapezoid.AppendLeftPoint(ep2)
	}

	return nil
}

// updateSingleBothBoundary is spec §4.6.1's both-on-boundary case: both
// endpoints already anchor T's sides, so T splits directly into an
// above/below pair with no sliver at all.
func (vd *VerticalDecomposition) updateSingleBothBoundary(node *Node, segment geom.Segment) error {
	t := node.Trapezoid
	ep1, ep2 := segment.Endpoint1, segment.Endpoint2

	aboveLP, belowLP := partitionByAbove(t.LeftPoints, segment)
	aboveRP, belowRP := partitionByAbove(t.RightPoints, segment)

	above := NewTrapezoid(t.TopSegment, aboveLP, aboveRP, segment)
	below := NewTrapezoid(segment, belowLP, belowRP, t.BottomSegment)

	n1, n2 := NewTrapezoidNode(above), NewTrapezoidNode(below)

	segNode := NewSegmentNode(segment, n2, n1)
	if len(node.Parents) == 0 {
		vd.root = segNode
	} else {
		ReplaceChild(node, segNode)
	}

	n1.LeftNeighbours = leftNeighboursAbove(node, segment)
	for _, ln := range n1.LeftNeighbours {
		retargetRightNeighbour(ln, node, n1)
		ln.Trapezoid.AppendRightPoint(ep1)
	}
	n1.RightNeighbours = rightNeighboursAbove(node, segment)
	for _, rn := range n1.RightNeighbours {
		retargetLeftNeighbour(rn, node, n1)
		rn.Trapezoid.AppendLeftPoint(ep2)
	}

	n2.LeftNeighbours = leftNeighboursBelow(node, segment)
	for _, ln := range n2.LeftNeighbours {
		retargetRightNeighbour(ln, node, n2)
		ln.Trapezoid.AppendRightPoint(ep1)
	}
	n2.RightNeighbours = rightNeighboursBelow(node, segment)
	for _, rn := range n2.RightNeighbours {
		retargetLeftNeighbour(rn, node, n2)
		rn.Trapezoid.AppendLeftPoint(ep2)
	}

	return nil
}

func retargetRightNeighbour(n, old, replacement *Node) {
	for i, rn := range n.RightNeighbours {
		if rn == old {
			n.RightNeighbours[i] = replacement
		}
	}
}

func retargetLeftNeighbour(n, old, replacement *Node) {
	for i, ln := range n.LeftNeighbours {
		if ln == old {
			n.LeftNeighbours[i] = replacement
		}
	}
}

// updateMulti implements spec §4.6.2: the segment crosses several
// trapezoids, walked left to right, splitting each into an above/below
// pair (plus slivers at the two ends) and threading the carry/
// carry_complement bookkeeping through degenerate straddling cells.
func (vd *VerticalDecomposition) updateMulti(path []*Node, segment geom.Segment) error {
	ep1, ep2 := segment.Endpoint1, segment.Endpoint2
	var carry, carryComplement *Node

	for i, node := range path {
		t := node.Trapezoid
		switch {
		case t.Contains(ep1):
			above, below := partitionByAbove(t.RightPoints, segment)

			t1 := NewTrapezoid(t.TopSegment, t.LeftPoints, []geom.Vertex{ep1}, t.BottomSegment)
			t2 := NewTrapezoid(t.TopSegment, []geom.Vertex{ep1}, above, segment)
			t3 := NewTrapezoid(segment, []geom.Vertex{ep1}, below, t.BottomSegment)

			n1, n2, n3 := NewTrapezoidNode(t1), NewTrapezoidNode(t2), NewTrapezoidNode(t3)

			if len(above) == 0 {
				carry = n2
			} else if len(below) == 0 {
				carry = n3
			}

			segNode := NewSegmentNode(segment, n3, n2)
			ep1Node := NewVertexNode(ep1, n1, segNode)
			if len(node.Parents) == 0 {
				vd.root = ep1Node
			} else {
				ReplaceChild(node, ep1Node)
			}

			n1.LeftNeighbours = append([]*Node(nil), node.LeftNeighbours...)
			n1.RightNeighbours = []*Node{n2, n3}
			for _, ln := range n1.LeftNeighbours {
				retargetRightNeighbour(ln, node, n1)
			}

			n2.LeftNeighbours = []*Node{n1}
			if carry == n2 {
				n2.RightNeighbours = nil
			} else {
				n2.RightNeighbours = rightNeighboursAbove(node, segment)
			}
			for _, rn := range n2.RightNeighbours {
				retargetLeftNeighbour(rn, node, n2)
			}

			n3.LeftNeighbours = []*Node{n1}
			if carry == n3 {
				n3.RightNeighbours = nil
			} else {
				n3.RightNeighbours = rightNeighboursBelow(node, segment)
			}
			for _, rn := range n3.RightNeighbours {
				retargetLeftNeighbour(rn, node, n3)
			}

		case t.Contains(ep2) && ep2.X == t.rightX:
			// Rightmost-on-boundary (spec §4.6.2): ep2 already anchors T's
			// right side, so there is no right sliver — T splits directly
			// into an above/below pair. This is the last node on the path,
			// so any pending carry must be resolved here, not left dangling.
			aboveLeft, belowLeft := partitionByAbove(t.LeftPoints, segment)

			t1 := NewTrapezoid(t.TopSegment, aboveLeft, t.RightPoints, segment)
			t2 := NewTrapezoid(segment, belowLeft, t.RightPoints, t.BottomSegment)

			n1, n2 := NewTrapezoidNode(t1), NewTrapezoidNode(t2)

			if carry != nil && len(aboveLeft) == 0 {
				n1.LeftNeighbours = append([]*Node(nil), carry.LeftNeighbours...)
				n1.Trapezoid.UpdateLeftPoints(carry.Trapezoid.LeftPoints)
				for _, ln := range n1.LeftNeighbours {
					retargetRightNeighbour(ln, carry, n1)
				}
			} else {
				n1.LeftNeighbours = leftNeighboursAbove(node, segment)
				for _, ln := range n1.LeftNeighbours {
					retargetRightNeighbour(ln, node, n1)
				}
			}

			if carry != nil && len(belowLeft) == 0 {
				n2.LeftNeighbours = append([]*Node(nil), carry.LeftNeighbours...)
				n2.Trapezoid.UpdateLeftPoints(carry.Trapezoid.LeftPoints)
				for _, ln := range n2.LeftNeighbours {
					retargetRightNeighbour(ln, carry, n2)
				}
			} else {
				n2.LeftNeighbours = leftNeighboursBelow(node, segment)
				for _, ln := range n2.LeftNeighbours {
					retargetRightNeighbour(ln, node, n2)
				}
			}

			n1.RightNeighbours = rightNeighboursAbove(node, segment)
			for _, rn := range n1.RightNeighbours {
				retargetLeftNeighbour(rn, node, n1)
				rn.Trapezoid.AppendLeftPoint(ep2)
			}
			n2.RightNeighbours = rightNeighboursBelow(node, segment)
			for _, rn := range n2.RightNeighbours {
				retargetLeftNeighbour(rn, node, n2)
				rn.Trapezoid.AppendLeftPoint(ep2)
			}

			segNode := NewSegmentNode(segment, n2, n1)
			if len(node.Parents) == 0 {
				vd.root = segNode
			} else {
				ReplaceChild(node, segNode)
			}

			if carry != nil {
				if len(aboveLeft) == 0 {
					carryComplement = n1
				}
				if len(belowLeft) == 0 {
					carryComplement = n2
				}
				ReplaceChild(carry, carryComplement)
				carry, carryComplement = nil, nil
			}

		case t.Contains(ep2):
			aboveLeft, belowLeft := partitionByAbove(t.LeftPoints, segment)

			t1 := NewTrapezoid(t.TopSegment, aboveLeft, []geom.Vertex{ep2}, segment)
			t2 := NewTrapezoid(segment, belowLeft, []geom.Vertex{ep2}, t.BottomSegment)
			t3 := NewTrapezoid(t.TopSegment, []geom.Vertex{ep2}, t.RightPoints, t.BottomSegment)

			n1, n2, n3 := NewTrapezoidNode(t1), NewTrapezoidNode(t2), NewTrapezoidNode(t3)

			if carry != nil && len(aboveLeft) == 0 {
				n1.LeftNeighbours = append([]*Node(nil), carry.LeftNeighbours...)
				n1.Trapezoid.UpdateLeftPoints(carry.Trapezoid.LeftPoints)
				for _, ln := range n1.LeftNeighbours {
					retargetRightNeighbour(ln, carry, n1)
				}
			} else {
				n1.LeftNeighbours = leftNeighboursAbove(node, segment)
				for _, ln := range n1.LeftNeighbours {
					retargetRightNeighbour(ln, node, n1)
				}
			}
			n1.RightNeighbours = []*Node{n3}

			if carry != nil && len(belowLeft) == 0 {
				n2.LeftNeighbours = append([]*Node(nil), carry.LeftNeighbours...)
				n2.Trapezoid.UpdateLeftPoints(carry.Trapezoid.LeftPoints)
				for _, ln := range n2.LeftNeighbours {
					retargetRightNeighbour(ln, carry, n2)
				}
			} else {
				n2.LeftNeighbours = leftNeighboursBelow(node, segment)
				for _, ln := range n2.LeftNeighbours {
					retargetRightNeighbour(ln, node, n2)
				}
			}
			n2.RightNeighbours = []*Node{n3}

			n3.LeftNeighbours = []*Node{n1, n2}
			n3.RightNeighbours = append([]*Node(nil), node.RightNeighbours...)
			for _, rn := range n3.RightNeighbours {
				retargetLeftNeighbour(rn, node, n3)
			}

			segNode := NewSegmentNode(segment, n2, n1)
			ep2Node := NewVertexNode(ep2, segNode, n3)
			if len(node.Parents) == 0 {
				vd.root = ep2Node
			} else {
				ReplaceChild(node, ep2Node)
			}

			if carry != nil {
				if len(aboveLeft) == 0 {
					carryComplement = n1
				}
				if len(belowLeft) == 0 {
					carryComplement = n2
				}
				ReplaceChild(carry, carryComplement)
				carry, carryComplement = nil, nil
			}

		default:
			aboveLeft, belowLeft := partitionByAbove(t.LeftPoints, segment)
			aboveRight, belowRight := partitionByAbove(t.RightPoints, segment)

			t1 := NewTrapezoid(t.TopSegment, aboveLeft, aboveRight, segment)
			t2 := NewTrapezoid(segment, belowLeft, belowRight, t.BottomSegment)

			n1, n2 := NewTrapezoidNode(t1), NewTrapezoidNode(t2)

			if carry != nil && len(aboveLeft) == 0 {
				n1.LeftNeighbours = append([]*Node(nil), carry.LeftNeighbours...)
				n1.Trapezoid.UpdateLeftPoints(carry.Trapezoid.LeftPoints)
				for _, ln := range n1.LeftNeighbours {
					retargetRightNeighbour(ln, carry, n1)
				}
			} else {
				n1.LeftNeighbours = leftNeighboursAbove(node, segment)
				for _, ln := range n1.LeftNeighbours {
					retargetRightNeighbour(ln, node, n1)
				}
			}

			if carry != nil && len(belowLeft) == 0 {
				n2.LeftNeighbours = append([]*Node(nil), carry.LeftNeighbours...)
				n2.Trapezoid.UpdateLeftPoints(carry.Trapezoid.LeftPoints)
				for _, ln := range n2.LeftNeighbours {
					retargetRightNeighbour(ln, carry, n2)
				}
			} else {
				n2.LeftNeighbours = leftNeighboursBelow(node, segment)
				for _, ln := range n2.LeftNeighbours {
					retargetRightNeighbour(ln, node, n2)
				}
			}

			if carry != nil {
				if len(aboveLeft) == 0 {
					carryComplement = n1
				}
				if len(belowLeft) == 0 {
					carryComplement = n2
				}
				ReplaceChild(carry, carryComplement)
				carry, carryComplement = nil, nil
			}

			if len(aboveRight) == 0 {
				carry = n1
				n1.RightNeighbours = nil
			} else {
				n1.RightNeighbours = rightNeighboursAbove(node, segment)
				for _, rn := range n1.RightNeighbours {
					retargetLeftNeighbour(rn, node, n1)
				}
			}
			if len(belowRight) == 0 {
				carry = n2
				n2.RightNeighbours = nil
			} else {
				n2.RightNeighbours = rightNeighboursBelow(node, segment)
				for _, rn := range n2.RightNeighbours {
					retargetLeftNeighbour(rn, node, n2)
				}
			}

			segNode := NewSegmentNode(segment, n2, n1)
			if len(node.Parents) == 0 {
				vd.root = segNode
			} else {
				ReplaceChild(node, segNode)
			}
		}

		if node != path[i] {
			return fmt.Errorf("%w: path iteration desynchronized", ErrInvariantViolation)
		}
	}

	return nil
}

// rightNeighboursAbove/-Below and leftNeighboursAbove/-Below select, from
// node's original neighbor set, those whose trapezoid has at least one
// anchor point on the corresponding side of segment — the "does this
// neighbor still touch the new cell" test of spec §4.6.2.
func rightNeighboursAbove(node *Node, segment geom.Segment) []*Node {
	return filterNeighbours(node.RightNeighbours, func(t *Trapezoid) bool {
		return anyAbove(t.LeftPoints, segment)
	})
}

func rightNeighboursBelow(node *Node, segment geom.Segment) []*Node {
	return filterNeighbours(node.RightNeighbours, func(t *Trapezoid) bool {
		return anyBelow(t.LeftPoints, segment)
	})
}

func leftNeighboursAbove(node *Node, segment geom.Segment) []*Node {
	return filterNeighbours(node.LeftNeighbours, func(t *Trapezoid) bool {
		return anyAbove(t.RightPoints, segment)
	})
}

func leftNeighboursBelow(node *Node, segment geom.Segment) []*Node {
	return filterNeighbours(node.LeftNeighbours, func(t *Trapezoid) bool {
		return anyBelow(t.RightPoints, segment)
	})
}

func filterNeighbours(ns []*Node, pred func(*Trapezoid) bool) []*Node {
	var out []*Node
	for _, n := range ns {
		if pred(n.Trapezoid) {
			out = append(out, n)
		}
	}
	return out
}

func anyAbove(points []geom.Vertex, s geom.Segment) bool {
	for _, p := range points {
		if p.IsAbove(s) && geom.OrientationOf(s.Endpoint1, s.Endpoint2, p) != geom.Collinear {
			return true
		}
	}
	return false
}

func anyBelow(points []geom.Vertex, s geom.Segment) bool {
	for _, p := range points {
		if !(p.IsAbove(s) && geom.OrientationOf(s.Endpoint1, s.Endpoint2, p) != geom.Collinear) {
			return true
		}
	}
	return false
}

// AllTrapezoids returns every trapezoid leaf currently in the DAG.
func (vd *VerticalDecomposition) AllTrapezoids() []*Node {
	return vd.root.FindAllTrapezoids()
}
