package runner

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInstance(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

type solutionFile struct {
	NumColors int   `json:"num_colors"`
	Colors    []int `json:"colors"`
}

func TestSolveAllWritesSolutionPerInstance(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "triangle.instance.json", `{
		"id": "triangle",
		"nodes": [[0,0],[10,0],[5,9]],
		"edges": [[0,1],[1,2],[2,0]]
	}`)
	writeInstance(t, dir, "cross.instance.json", `{
		"id": "cross",
		"nodes": [[0,0],[10,10],[0,10],[10,0]],
		"edges": [[0,1],[2,3]]
	}`)

	err := SolveAll(context.Background(), dir, Options{Workers: 2, Save: true})
	require.NoError(t, err)

	for name, wantColors := range map[string]int{
		"triangle.solution.json": 1,
		"cross.solution.json":    2,
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		var sol solutionFile
		require.NoError(t, json.Unmarshal(data, &sol))
		assert.Equal(t, wantColors, sol.NumColors)
	}
}

func TestSolveAllSkipsNonInstanceFiles(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "triangle.instance.json", `{
		"nodes": [[0,0],[10,0],[5,9]],
		"edges": [[0,1],[1,2],[2,0]]
	}`)
	writeInstance(t, dir, "README.md", "not an instance")

	err := SolveAll(context.Background(), dir, Options{Workers: 1, Save: true})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "triangle.solution.json"))
	assert.NoError(t, err)
}

func TestSolveAllPropagatesReadErrors(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "broken.instance.json", `not json`)

	err := SolveAll(context.Background(), dir, Options{Workers: 1, Save: true})
	assert.Error(t, err)
}

func TestSolveAllWithoutSaveDoesNotWriteFiles(t *testing.T) {
	dir := t.TempDir()
	writeInstance(t, dir, "triangle.instance.json", `{
		"nodes": [[0,0],[10,0],[5,9]],
		"edges": [[0,1],[1,2],[2,0]]
	}`)

	err := SolveAll(context.Background(), dir, Options{Workers: 1, Save: false})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "triangle.solution.json"))
	assert.True(t, os.IsNotExist(err))
}
