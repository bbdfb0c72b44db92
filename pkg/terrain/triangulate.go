package terrain

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MinAxisLength is the smallest axis that still yields one grid cell.
const MinAxisLength = 2

// VertexIndex returns the row-major linear index of grid sample (i, j)
// in a grid with nc columns.
func VertexIndex(i, j, nc int) uint32 {
	return uint32(i*nc + j)
}

// Triangulate builds the surface mesh of the elevation grid z sampled at
// columns x and rows y. z must have dimensions (len(y), len(x)) and both axes
// need at least two samples. Axes may be irregularly spaced. Values, including
// NaN and Inf, are copied into the mesh unchanged.
func Triangulate(x, y []float64, z mat.Matrix) (*Mesh, error) {
	nr, nc, err := checkShape(x, y, z)
	if err != nil {
		return nil, err
	}

	mesh := newMesh(x, y, z, nr, nc)
	fillTriangles(mesh.Triangles, nc, 0, nr-1)
	fillVertices(mesh.Vertices, x, y, z, 0, nr)
	return mesh, nil
}

// TriangulateRows is Triangulate over elevation rows, z[i][j] being the sample
// at (x[j], y[i]). Every row must have len(x) samples.
func TriangulateRows(x, y []float64, z [][]float64) (*Mesh, error) {
	if err := checkAxes(x, y); err != nil {
		return nil, err
	}
	if len(z) != len(y) {
		return nil, &ShapeMismatchError{Field: "elevation rows", Got: len(z), Want: len(y)}
	}
	for i, row := range z {
		if len(row) != len(x) {
			return nil, &ShapeMismatchError{Field: fmt.Sprintf("elevation row %d", i), Got: len(row), Want: len(x)}
		}
	}
	return Triangulate(x, y, rowGrid(z))
}

// TriangulateParallel produces the same mesh as Triangulate, splitting the
// index and vertex construction into row bands built on separate goroutines.
// z is read concurrently, so its At method must be safe for concurrent use
// (gonum's dense types are).
func TriangulateParallel(x, y []float64, z mat.Matrix) (*Mesh, error) {
	nr, nc, err := checkShape(x, y, z)
	if err != nil {
		return nil, err
	}

	mesh := newMesh(x, y, z, nr, nc)
	bands := runtime.GOMAXPROCS(0)

	var g errgroup.Group
	for _, b := range splitRows(nr-1, bands) {
		g.Go(func() error {
			fillTriangles(mesh.Triangles, nc, b[0], b[1])
			return nil
		})
	}
	for _, b := range splitRows(nr, bands) {
		g.Go(func() error {
			fillVertices(mesh.Vertices, x, y, z, b[0], b[1])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// checkShape validates the grid before anything is allocated.
func checkShape(x, y []float64, z mat.Matrix) (nr, nc int, err error) {
	if err := checkAxes(x, y); err != nil {
		return 0, 0, err
	}
	nr, nc = len(y), len(x)

	var zr, zc int
	if z != nil {
		zr, zc = z.Dims()
	}
	if zr != nr {
		return 0, 0, &ShapeMismatchError{Field: "elevation rows", Got: zr, Want: nr}
	}
	if zc != nc {
		return 0, 0, &ShapeMismatchError{Field: "elevation columns", Got: zc, Want: nc}
	}
	return nr, nc, nil
}

func checkAxes(x, y []float64) error {
	if len(x) < MinAxisLength {
		return &ShapeMismatchError{Field: "x axis", Got: len(x), Want: MinAxisLength, AtLeast: true}
	}
	if len(y) < MinAxisLength {
		return &ShapeMismatchError{Field: "y axis", Got: len(y), Want: MinAxisLength, AtLeast: true}
	}
	if uint64(len(x))*uint64(len(y)) > math.MaxUint32+1 {
		return fmt.Errorf("%w: %dx%d samples", ErrGridTooLarge, len(y), len(x))
	}
	return nil
}

func newMesh(x, y []float64, z mat.Matrix, nr, nc int) *Mesh {
	return &Mesh{
		Triangles: make([][3]uint32, 2*(nr-1)*(nc-1)),
		Vertices:  make([][3]float64, nr*nc),
		Rows:      nr,
		Cols:      nc,
		Bounds: Bounds{
			Min: [3]float64{floats.Min(x), floats.Min(y), mat.Min(z)},
			Max: [3]float64{floats.Max(x), floats.Max(y), mat.Max(z)},
		},
	}
}

// fillTriangles writes the two triangles of every cell in rows [rowStart, rowEnd).
func fillTriangles(tris [][3]uint32, nc, rowStart, rowEnd int) {
	k := 2 * rowStart * (nc - 1)
	for i := rowStart; i < rowEnd; i++ {
		for j := 0; j < nc-1; j++ {
			ul := VertexIndex(i, j, nc)
			ur := VertexIndex(i, j+1, nc)
			ll := VertexIndex(i+1, j, nc)
			lr := VertexIndex(i+1, j+1, nc)

			tris[k] = [3]uint32{ul, ur, ll}
			tris[k+1] = [3]uint32{ur, lr, ll}
			k += 2
		}
	}
}

// fillVertices writes the vertices of grid rows [rowStart, rowEnd).
func fillVertices(verts [][3]float64, x, y []float64, z mat.Matrix, rowStart, rowEnd int) {
	nc := len(x)
	for i := rowStart; i < rowEnd; i++ {
		for j := 0; j < nc; j++ {
			verts[VertexIndex(i, j, nc)] = [3]float64{x[j], y[i], z.At(i, j)}
		}
	}
}

// splitRows divides n rows into at most parts contiguous [start, end) bands.
func splitRows(n, parts int) [][2]int {
	if parts > n {
		parts = n
	}
	if parts < 1 {
		return nil
	}
	bands := make([][2]int, 0, parts)
	size, rem := n/parts, n%parts
	start := 0
	for p := 0; p < parts; p++ {
		end := start + size
		if p < rem {
			end++
		}
		bands = append(bands, [2]int{start, end})
		start = end
	}
	return bands
}

// rowGrid adapts a slice of equal-length rows to mat.Matrix without copying.
type rowGrid [][]float64

func (g rowGrid) Dims() (r, c int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

func (g rowGrid) At(i, j int) float64 { return g[i][j] }

func (g rowGrid) T() mat.Matrix { return mat.Transpose{Matrix: g} }
