package vdecomp

import (
	"fmt"
	"strings"

	"github.com/arclen/vdcolor/dbg"
	"github.com/logrusorgru/aurora"
)

// DbgName gives n a short, colorized, human-distinguishable name for log
// output: trapezoid leaves in green (cyan if degenerate — a collapsed
// top/bottom boundary), internal nodes uncolored (spec §9 calls out these
// degeneracies as the ones worth flagging at a glance).
func (n *Node) DbgName() string {
	if n == nil {
		return "Ø"
	}
	name := dbg.Name(n)
	if n.Kind != kindTrapezoid {
		return name
	}
	if n.Trapezoid.top.isPoint || n.Trapezoid.bottom.isPoint {
		return aurora.Cyan(name).String()
	}
	return aurora.Green(name).String()
}

func (n *Node) String() string {
	if n == nil {
		return "Ø"
	}
	switch n.Kind {
	case kindTrapezoid:
		return fmt.Sprintf("%s %s", n.DbgName(), n.Trapezoid)
	case kindVertex:
		return fmt.Sprintf("vertex-splitter %s", n.Vertex)
	case kindSegment:
		return fmt.Sprintf("segment-splitter %s", n.Segment)
	default:
		return "unknown-node"
	}
}

func namesOf(nodes []*Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.DbgName())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
