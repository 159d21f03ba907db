// Package instance reads CGSHOP2022-shaped problem instances and writes
// color-assignment solutions, grounded on original_source/gcsolver.py and
// original_source/solution_checker.py.
package instance

import (
	"errors"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/arclen/vdcolor/coloring"
	"github.com/arclen/vdcolor/geom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedInstance is returned by ReadInstance when the JSON is
// structurally invalid or references an out-of-range node index.
var ErrMalformedInstance = errors.New("instance: malformed instance")

// ErrDuplicateEndpoint is returned when an edge's two node indices are
// equal — a degenerate edge with no geometric segment (spec.md §7 item 2).
var ErrDuplicateEndpoint = errors.New("instance: edge has duplicate endpoint")

// Instance is a parsed CGSHOP2022 problem instance: a point set and a list
// of edges connecting them by index.
type Instance struct {
	Name     string
	Segments []*geom.Segment
}

type rawInstance struct {
	ID    string    `json:"id"`
	Nodes [][2]int64 `json:"nodes"`
	Edges [][2]int   `json:"edges"`
}

// ReadInstance parses the instance JSON at path into Segments, one per
// edge, with Segment.Index set to the edge's position in the input array
// (spec.md §6).
func ReadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: read %s: %w", path, err)
	}

	var raw rawInstance
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInstance, path, err)
	}

	segments := make([]*geom.Segment, 0, len(raw.Edges))
	for i, edge := range raw.Edges {
		a, b := edge[0], edge[1]
		if a == b {
			return nil, fmt.Errorf("%w: edge %d", ErrDuplicateEndpoint, i)
		}
		if a < 0 || a >= len(raw.Nodes) || b < 0 || b >= len(raw.Nodes) {
			return nil, fmt.Errorf("%w: edge %d references out-of-range node", ErrMalformedInstance, i)
		}
		na, nb := raw.Nodes[a], raw.Nodes[b]
		s, err := geom.NewSegment(geom.NewVertex(na[0], na[1]), geom.NewVertex(nb[0], nb[1]), i)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d: %v", ErrMalformedInstance, i, err)
		}
		segments = append(segments, &s)
	}

	name := raw.ID
	if name == "" {
		name = path
	}
	return &Instance{Name: name, Segments: segments}, nil
}

type rawSolution struct {
	Type      string `json:"type"`
	Instance  string `json:"instance"`
	NumColors int    `json:"num_colors"`
	Colors    []int  `json:"colors"`
}

// WriteSolution writes result as a Solution_CGSHOP2022 JSON document at
// path, unless a solution already exists there with a num_colors that is
// not strictly greater than result's (spec.md §6: "Writing is
// conditional").
func WriteSolution(path, instanceName string, result coloring.Result) error {
	if existing, err := readSolution(path); err == nil && existing.NumColors <= result.NumColors {
		return nil
	}

	out := rawSolution{
		Type:      "Solution_CGSHOP2022",
		Instance:  instanceName,
		NumColors: result.NumColors,
		Colors:    result.Colors,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("instance: marshal solution for %s: %w", instanceName, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("instance: write %s: %w", path, err)
	}
	return nil
}

func readSolution(path string) (rawSolution, error) {
	var sol rawSolution
	data, err := os.ReadFile(path)
	if err != nil {
		return sol, err
	}
	if err := json.Unmarshal(data, &sol); err != nil {
		return sol, err
	}
	return sol, nil
}

// Conflict describes two segments assigned the same color that cross.
type Conflict struct {
	IndexA, IndexB int
}

// VerifyColoring returns every pair of segments sharing a color whose
// geometry crosses — a violation of spec.md §8 property 1 — grounded on
// original_source/solution_checker.py's SolutionCheck.
func VerifyColoring(segments []*geom.Segment, colors []int) []Conflict {
	byColor := make(map[int][]int)
	for i, c := range colors {
		byColor[c] = append(byColor[c], i)
	}

	var conflicts []Conflict
	for _, members := range byColor {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i], members[j]
				if segments[a].Intersects(*segments[b]) {
					conflicts = append(conflicts, Conflict{IndexA: a, IndexB: b})
				}
			}
		}
	}
	return conflicts
}
