package instance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arclen/vdcolor/coloring"
	"github.com/arclen/vdcolor/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadInstanceTriangle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "triangle.instance.json", `{
		"id": "triangle",
		"nodes": [[0,0],[10,0],[5,9]],
		"edges": [[0,1],[1,2],[2,0]]
	}`)

	inst, err := ReadInstance(path)
	require.NoError(t, err)
	assert.Equal(t, "triangle", inst.Name)
	require.Len(t, inst.Segments, 3)
	assert.Equal(t, 0, inst.Segments[0].Index)
	assert.Equal(t, 2, inst.Segments[2].Index)
}

func TestReadInstanceRejectsOutOfRangeNode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.instance.json", `{
		"nodes": [[0,0],[10,0]],
		"edges": [[0,5]]
	}`)

	_, err := ReadInstance(path)
	require.ErrorIs(t, err, ErrMalformedInstance)
}

func TestReadInstanceRejectsDuplicateEndpoint(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.instance.json", `{
		"nodes": [[0,0],[10,0]],
		"edges": [[0,0]]
	}`)

	_, err := ReadInstance(path)
	require.ErrorIs(t, err, ErrDuplicateEndpoint)
}

func TestReadInstanceRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.instance.json", `not json at all`)

	_, err := ReadInstance(path)
	require.ErrorIs(t, err, ErrMalformedInstance)
}

func TestWriteSolutionOverwritesOnlyWhenStrictlyBetter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.solution.json")

	require.NoError(t, WriteSolution(path, "triangle", coloring.Result{NumColors: 3, Colors: []int{0, 1, 2}}))
	first, err := readSolution(path)
	require.NoError(t, err)
	assert.Equal(t, 3, first.NumColors)

	// Worse result (more colors): existing solution must be kept.
	require.NoError(t, WriteSolution(path, "triangle", coloring.Result{NumColors: 4, Colors: []int{0, 1, 2, 3}}))
	second, err := readSolution(path)
	require.NoError(t, err)
	assert.Equal(t, 3, second.NumColors)

	// Equal result: not strictly better, existing solution must be kept.
	require.NoError(t, WriteSolution(path, "triangle", coloring.Result{NumColors: 3, Colors: []int{1, 0, 2}}))
	third, err := readSolution(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, third.Colors)

	// Strictly better result: must overwrite.
	require.NoError(t, WriteSolution(path, "triangle", coloring.Result{NumColors: 2, Colors: []int{0, 1, 0}}))
	fourth, err := readSolution(path)
	require.NoError(t, err)
	assert.Equal(t, 2, fourth.NumColors)
}

func TestWriteSolutionCreatesFileWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.solution.json")

	require.NoError(t, WriteSolution(path, "fresh", coloring.Result{NumColors: 1, Colors: []int{0}}))
	sol, err := readSolution(path)
	require.NoError(t, err)
	assert.Equal(t, "Solution_CGSHOP2022", sol.Type)
	assert.Equal(t, 1, sol.NumColors)
}

func TestVerifyColoringFindsCrossingConflict(t *testing.T) {
	a, err := geom.NewSegment(geom.NewVertex(0, 0), geom.NewVertex(10, 10), 0)
	require.NoError(t, err)
	b, err := geom.NewSegment(geom.NewVertex(0, 10), geom.NewVertex(10, 0), 1)
	require.NoError(t, err)
	segments := []*geom.Segment{&a, &b}

	conflicts := VerifyColoring(segments, []int{0, 0})
	require.Len(t, conflicts, 1)
	assert.Equal(t, Conflict{IndexA: 0, IndexB: 1}, conflicts[0])

	assert.Empty(t, VerifyColoring(segments, []int{0, 1}))
}
