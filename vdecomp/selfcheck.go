package vdecomp

import (
	"fmt"

	"github.com/arclen/vdcolor/geom"
)

// runSelfChecks runs the four consistency assertions spec §7 item 3 names:
// no_dupe, all_valid, trap_segs_valid and all_allowed_neighbours. They are
// O(n) over the current set of trapezoid leaves and are only invoked when
// SelfCheck is set, matching the "debug builds only" guidance.
func (vd *VerticalDecomposition) runSelfChecks() error {
	leaves := vd.AllTrapezoids()

	if err := checkNoDupe(leaves); err != nil {
		return err
	}
	if err := checkAllValid(leaves); err != nil {
		return err
	}
	if err := checkTrapSegsValid(leaves); err != nil {
		return err
	}
	if err := checkAllAllowedNeighbours(leaves); err != nil {
		return err
	}
	return nil
}

// checkNoDupe verifies no trapezoid leaf is reachable under two distinct
// node identities, and that no left/right anchor set carries a duplicate
// vertex.
func checkNoDupe(leaves []*Node) error {
	seen := make(map[*Trapezoid]*Node, len(leaves))
	for _, n := range leaves {
		if other, ok := seen[n.Trapezoid]; ok && other != n {
			return fmt.Errorf("%w: trapezoid %s reachable from two distinct leaves", ErrInvariantViolation, n.Trapezoid)
		}
		seen[n.Trapezoid] = n

		if hasDuplicateVertex(n.Trapezoid.LeftPoints) {
			return fmt.Errorf("%w: duplicate vertex in left_points of %s", ErrInvariantViolation, n.Trapezoid)
		}
		if hasDuplicateVertex(n.Trapezoid.RightPoints) {
			return fmt.Errorf("%w: duplicate vertex in right_points of %s", ErrInvariantViolation, n.Trapezoid)
		}
	}
	return nil
}

func hasDuplicateVertex(vs []geom.Vertex) bool {
	seen := make(map[geom.Vertex]struct{}, len(vs))
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// checkAllValid verifies every leaf's left x does not exceed its right x —
// the non-empty-cell invariant of spec §3 (transient equality is tolerated
// since this check only ever runs between insertions, never mid-update).
func checkAllValid(leaves []*Node) error {
	for _, n := range leaves {
		t := n.Trapezoid
		if t.leftX > t.rightX {
			return fmt.Errorf("%w: trapezoid %s has left x > right x", ErrInvariantViolation, t)
		}
	}
	return nil
}

// checkTrapSegsValid verifies every left/right anchor vertex actually sits
// at the trapezoid's declared left/right x.
func checkTrapSegsValid(leaves []*Node) error {
	for _, n := range leaves {
		t := n.Trapezoid
		for _, v := range t.LeftPoints {
			if v.X != t.leftX {
				return fmt.Errorf("%w: left point %s of %s does not sit at left x", ErrInvariantViolation, v, t)
			}
		}
		for _, v := range t.RightPoints {
			if v.X != t.rightX {
				return fmt.Errorf("%w: right point %s of %s does not sit at right x", ErrInvariantViolation, v, t)
			}
		}
	}
	return nil
}

// checkAllAllowedNeighbours verifies property 7: N is a right neighbor of T
// iff T is a left neighbor of N.
func checkAllAllowedNeighbours(leaves []*Node) error {
	for _, n := range leaves {
		for _, rn := range n.RightNeighbours {
			if !containsNode(rn.LeftNeighbours, n) {
				return fmt.Errorf("%w: %s has right neighbour %s that doesn't reciprocate", ErrInvariantViolation, n.Trapezoid, rn.Trapezoid)
			}
		}
		for _, ln := range n.LeftNeighbours {
			if !containsNode(ln.RightNeighbours, n) {
				return fmt.Errorf("%w: %s has left neighbour %s that doesn't reciprocate", ErrInvariantViolation, n.Trapezoid, ln.Trapezoid)
			}
		}
	}
	return nil
}

func containsNode(ns []*Node, target *Node) bool {
	for _, n := range ns {
		if n == target {
			return true
		}
	}
	return false
}
