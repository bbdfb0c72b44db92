package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dem-mesh/internal/config"
	"github.com/Faultbox/dem-mesh/pkg/terrain"
)

func TestSynthSurface(t *testing.T) {
	x, y, z := synthSurface(4, 6, 10, 50)
	require.Len(t, x, 6)
	require.Len(t, y, 4)

	rows, cols := z.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 6, cols)
	assert.Equal(t, 50.0, x[5])
	assert.Equal(t, 0.0, z.At(0, 0))
}

func TestSynthSurface_Degenerate(t *testing.T) {
	x, y, z := synthSurface(0, 3, 10, 50)
	_, err := terrain.Triangulate(x, y, z)
	assert.ErrorIs(t, err, terrain.ErrShapeMismatch)
}

func TestBuildMesh_Strategy(t *testing.T) {
	x, y, z := synthSurface(8, 8, 1, 1)

	tests := []struct {
		name string
		mesh config.MeshConfig
		want bool
	}{
		{"sequential", config.MeshConfig{Parallel: false}, false},
		{"parallel", config.MeshConfig{Parallel: true, ParallelThreshold: 64}, true},
		{"below threshold", config.MeshConfig{Parallel: true, ParallelThreshold: 65}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Mesh = tt.mesh

			var usedParallel bool
			mesh, err := buildMesh(cfg, func(parallel bool) (*terrain.Mesh, error) {
				usedParallel = parallel
				return terrain.Triangulate(x, y, z)
			}, 8, 8)
			require.NoError(t, err)

			assert.Equal(t, tt.want, usedParallel)
			assert.Equal(t, 2*7*7, mesh.TriangleCount())
		})
	}
}

func TestBuildMesh_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := buildMesh(config.Default(), func(bool) (*terrain.Mesh, error) {
		return nil, boom
	}, 2, 2)
	assert.ErrorIs(t, err, boom)
}

func TestCmdInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.asc")
	grid := "ncols 3\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\nnodata_value -1\n1 2 3\n4 -1 6\n7 8 9\n"
	require.NoError(t, os.WriteFile(path, []byte(grid), 0644))

	require.NoError(t, cmdInfo(config.Default(), []string{path}))
	assert.Error(t, cmdInfo(config.Default(), nil))
	assert.Error(t, cmdInfo(config.Default(), []string{filepath.Join(t.TempDir(), "missing.asc")}))
}

func TestCmdSynth(t *testing.T) {
	require.NoError(t, cmdSynth(config.Default(), []string{"-rows", "5", "-cols", "3"}))
	assert.ErrorIs(t, cmdSynth(config.Default(), []string{"-rows", "1"}), terrain.ErrShapeMismatch)
}
