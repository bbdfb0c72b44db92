package formats

import (
	"bytes"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const centerGrid = `NCOLS 2
NROWS 3
XLLCENTER 0
YLLCENTER 0
DX 2
DY 5
0.5 1.5
2.5 3.5
4.5 5.5
`

func TestParseASCIIGridFile(t *testing.T) {
	dem, err := ParseASCIIGridFile(filepath.Join("testdata", "small.asc"))
	require.NoError(t, err)

	rows, cols := dem.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	assert.Equal(t, []float64{105, 115, 125}, dem.X)
	assert.Equal(t, []float64{215, 205}, dem.Y)
	assert.Equal(t, 1.0, dem.Z.At(0, 0))
	assert.Equal(t, -9999.0, dem.Z.At(1, 1))
	assert.Equal(t, 6.0, dem.Z.At(1, 2))
	assert.True(t, dem.HasNoData)
	assert.Equal(t, -9999.0, dem.NoData)
}

func TestParseASCIIGrid_CenterOrigin(t *testing.T) {
	dem, err := ParseASCIIGrid(strings.NewReader(centerGrid))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 2}, dem.X)
	assert.Equal(t, []float64{10, 5, 0}, dem.Y)
	assert.Equal(t, 5.5, dem.Z.At(2, 1))
	assert.False(t, dem.HasNoData)
}

func TestParseASCIIGridFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(centerGrid))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "grid.asc.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	dem, err := ParseASCIIGridFile(path)
	require.NoError(t, err)
	rows, cols := dem.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
}

func TestParseASCIIGridFile_Missing(t *testing.T) {
	_, err := ParseASCIIGridFile("/nonexistent/grid.asc")
	assert.Error(t, err)
}

func TestParseASCIIGrid_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "empty",
			data: "",
			want: ErrTruncatedASCIIData,
		},
		{
			name: "missing nrows",
			data: "ncols 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
			want: ErrInvalidASCIIHeader,
		},
		{
			name: "unknown key",
			data: "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\nprojection utm\n1\n",
			want: ErrInvalidASCIIHeader,
		},
		{
			name: "bad cell size",
			data: "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 0\n1\n",
			want: ErrInvalidASCIIHeader,
		},
		{
			name: "mixed origin",
			data: "ncols 1\nnrows 1\nxllcorner 0\nyllcenter 0\ncellsize 1\n1\n",
			want: ErrInvalidASCIIHeader,
		},
		{
			name: "truncated samples",
			data: "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3\n",
			want: ErrTruncatedASCIIData,
		},
		{
			name: "trailing samples",
			data: "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n",
			want: ErrTrailingASCIIData,
		},
		{
			name: "bad sample",
			data: "ncols 2\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 x\n",
			want: ErrInvalidASCIIElement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dem, err := ParseASCIIGrid(strings.NewReader(tt.data))
			assert.Nil(t, dem)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDEM_MaskNoData(t *testing.T) {
	dem, err := ParseASCIIGridFile(filepath.Join("testdata", "small.asc"))
	require.NoError(t, err)

	assert.Equal(t, 1, dem.MaskNoData())
	assert.True(t, math.IsNaN(dem.Z.At(1, 1)))
	assert.Equal(t, 4.0, dem.Z.At(1, 0))

	// Already masked.
	assert.Equal(t, 0, dem.MaskNoData())
}

func TestDEM_Mesh(t *testing.T) {
	dem, err := ParseASCIIGrid(strings.NewReader(centerGrid))
	require.NoError(t, err)

	for _, parallel := range []bool{false, true} {
		mesh, err := dem.Mesh(parallel)
		require.NoError(t, err)

		assert.Equal(t, 4, mesh.TriangleCount())
		assert.Equal(t, 6, mesh.VertexCount())
		assert.Equal(t, [3]float64{2, 5, 3.5}, mesh.Vertices[3])
		assert.Equal(t, [3]uint32{0, 1, 2}, mesh.Triangles[0])
	}
}

func TestDEM_MeshSingleColumn(t *testing.T) {
	dem, err := ParseASCIIGrid(strings.NewReader("ncols 1\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n2\n3\n"))
	require.NoError(t, err)

	_, err = dem.Mesh(false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "x axis")
}
