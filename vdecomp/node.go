package vdecomp

import (
	"fmt"

	"github.com/arclen/vdcolor/geom"
)

// kind tags which payload a Node carries, mirroring the teacher's
// QueryNodeInner dispatch but folded into a single struct with a discriminant
// instead of an interface, since every branch here needs direct field access
// during DAG rewrites.
type kind int

const (
	kindTrapezoid kind = iota
	kindVertex
	kindSegment
)

// Node is one element of the Seidel-style search DAG: either an internal
// decision node testing a point against a Vertex (x-order) or Segment
// (orientation), or a leaf holding a Trapezoid. Nodes form a DAG rather than
// a tree — a Node may have more than one parent (spec §3, "Ownership").
type Node struct {
	Kind kind

	Vertex    geom.Vertex
	Segment   geom.Segment
	Trapezoid *Trapezoid

	Left, Right *Node
	Parents     []*Node

	// LeftNeighbours and RightNeighbours are populated only on trapezoid
	// leaves: the adjacent leaves sharing this trapezoid's left/right
	// vertical chord (spec §3, "neighbour maintenance").
	LeftNeighbours  []*Node
	RightNeighbours []*Node
}

// NewTrapezoidNode wraps a Trapezoid as a leaf.
func NewTrapezoidNode(t *Trapezoid) *Node {
	return &Node{Kind: kindTrapezoid, Trapezoid: t}
}

// NewVertexNode builds an internal x-order test node.
func NewVertexNode(v geom.Vertex, left, right *Node) *Node {
	n := &Node{Kind: kindVertex, Vertex: v}
	n.SetLeft(left)
	n.SetRight(right)
	return n
}

// NewSegmentNode builds an internal orientation test node.
func NewSegmentNode(s geom.Segment, left, right *Node) *Node {
	n := &Node{Kind: kindSegment, Segment: s}
	n.SetLeft(left)
	n.SetRight(right)
	return n
}

func (n *Node) IsLeaf() bool { return n.Kind == kindTrapezoid }

// SetLeft wires a left child, registering this node as one of child's
// parents. Go DAG edges don't disappear on reassignment the way the
// original's single `parent` pointer implied; callers that replace a node
// wholesale use ReplaceChild instead.
func (n *Node) SetLeft(child *Node) {
	n.Left = child
	if child != nil {
		child.Parents = append(child.Parents, n)
	}
}

func (n *Node) SetRight(child *Node) {
	n.Right = child
	if child != nil {
		child.Parents = append(child.Parents, n)
	}
}

// ReplaceChild swaps every (parent -> old) edge for (parent -> replacement),
// across all of old's parents — the DAG analogue of reassigning a single
// `parent.child` pointer, needed because a trapezoid leaf produced by an
// earlier insertion may be referenced from more than one internal node
// (spec §4.6).
func ReplaceChild(old, replacement *Node) {
	for _, p := range old.Parents {
		if p.Left == old {
			p.Left = replacement
		}
		if p.Right == old {
			p.Right = replacement
		}
		replacement.Parents = append(replacement.Parents, p)
	}
	old.Parents = nil
}

// ChooseNext descends one level of the point-location search for point,
// following Vertex/Segment test nodes (spec §4.4). Trapezoid leaves return
// themselves.
func (n *Node) ChooseNext(point geom.Vertex) *Node {
	switch n.Kind {
	case kindTrapezoid:
		return n
	case kindVertex:
		if point.X < n.Vertex.X {
			return n.Left
		}
		return n.Right
	case kindSegment:
		if geom.OrientationOf(n.Segment.Endpoint1, n.Segment.Endpoint2, point) == geom.Clockwise {
			return n.Left
		}
		return n.Right
	default:
		panic(fmt.Sprintf("vdecomp: node of unknown kind %d", n.Kind))
	}
}

// ChooseNextSegmented descends the search for one endpoint of a segment
// being inserted, breaking x-tie and on-segment degeneracies in favor of
// the side the segment itself departs towards (spec §4.5's point-location
// tie-breaking rules, grounded on the teacher's choose_next_segmented).
func (n *Node) ChooseNextSegmented(segment geom.Segment, endpoint geom.Vertex) *Node {
	switch n.Kind {
	case kindTrapezoid:
		return n
	case kindVertex:
		switch {
		case endpoint.X < n.Vertex.X:
			return n.Left
		case endpoint.X > n.Vertex.X:
			return n.Right
		default:
			if segment.Endpoint2 == endpoint {
				return n.Left
			}
			return n.Right
		}
	case kindSegment:
		ori := geom.OrientationOf(n.Segment.Endpoint1, n.Segment.Endpoint2, endpoint)
		switch ori {
		case geom.Clockwise:
			return n.Left
		case geom.CounterClockwise:
			return n.Right
		default:
			other := segment.Endpoint1
			if endpoint == segment.Endpoint1 {
				other = segment.Endpoint2
			}
			if geom.OrientationOf(n.Segment.Endpoint1, n.Segment.Endpoint2, other) == geom.Clockwise {
				return n.Left
			}
			return n.Right
		}
	default:
		panic(fmt.Sprintf("vdecomp: node of unknown kind %d", n.Kind))
	}
}

// FindAllTrapezoids collects every trapezoid leaf reachable from n,
// deduplicated by node identity (a leaf may be reachable via multiple
// parents). Used by AllTrapezoids, and through it by the self-check suite
// and tests.
func (n *Node) FindAllTrapezoids() []*Node {
	seen := make(map[*Node]struct{})
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		if _, ok := seen[cur]; ok {
			return
		}
		seen[cur] = struct{}{}
		if cur.Kind == kindTrapezoid {
			out = append(out, cur)
			return
		}
		walk(cur.Left)
		walk(cur.Right)
	}
	walk(n)
	return out
}
