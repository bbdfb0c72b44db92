// Package terrain triangulates regularly gridded elevation rasters into surface meshes.
//
// A grid of nr rows and nc columns becomes nr*nc vertices and 2*(nr-1)*(nc-1)
// triangles. Vertex (i, j) has linear index i*nc+j and position
// (x[j], y[i], z[i][j]). Each grid cell is split along the diagonal from
// (i+1, j) to (i, j+1):
//
//	(i,j) ---- (i,j+1)
//	  |  A   /   |
//	  |    /  B  |
//	(i+1,j) -- (i+1,j+1)
//
// Triangle A is (i,j), (i,j+1), (i+1,j) and triangle B is (i,j+1), (i+1,j+1), (i+1,j).
// Cells are emitted row-major with A before B.
package terrain

// Bounds holds the axis-aligned bounding box of the mesh vertices.
type Bounds struct {
	Min [3]float64
	Max [3]float64
}

// Mesh holds triangle indices and vertex positions for a gridded surface.
// The caller owns both slices.
type Mesh struct {
	Triangles [][3]uint32
	Vertices  [][3]float64
	Rows      int // grid rows (len of the y axis)
	Cols      int // grid columns (len of the x axis)
	Bounds    Bounds
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// IndexBuffer returns the triangle indices flattened to a single slice of
// length 3*TriangleCount, in the order a widget or GPU index buffer expects.
func (m *Mesh) IndexBuffer() []uint32 {
	buf := make([]uint32, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		buf = append(buf, t[0], t[1], t[2])
	}
	return buf
}

// VertexBuffer returns the vertex positions flattened as x0, y0, z0, x1, ...
func (m *Mesh) VertexBuffer() []float64 {
	buf := make([]float64, 0, 3*len(m.Vertices))
	for _, v := range m.Vertices {
		buf = append(buf, v[0], v[1], v[2])
	}
	return buf
}
