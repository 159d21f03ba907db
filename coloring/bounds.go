package coloring

import (
	"github.com/arclen/vdcolor/geom"
	"github.com/arclen/vdcolor/vdecomp"
)

// BoundsFromSegments returns the tightest axis-aligned rectangle containing
// every endpoint of every segment — vdecomp.New widens it by one unit on
// each side itself (spec.md §3).
func BoundsFromSegments(segments []*geom.Segment) vdecomp.Bounds {
	if len(segments) == 0 {
		return vdecomp.Bounds{}
	}
	first := segments[0].Endpoint1
	b := vdecomp.Bounds{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for _, s := range segments {
		for _, v := range [2]geom.Vertex{s.Endpoint1, s.Endpoint2} {
			if v.X < b.MinX {
				b.MinX = v.X
			}
			if v.X > b.MaxX {
				b.MaxX = v.X
			}
			if v.Y < b.MinY {
				b.MinY = v.Y
			}
			if v.Y > b.MaxY {
				b.MaxY = v.Y
			}
		}
	}
	return b
}
