package terrain

import (
	"github.com/Faultbox/dem-mesh/pkg/math"
)

// FaceNormal returns the unit normal of triangle t following its winding.
// For increasing x and y axes the normal of a flat grid points along +Z.
func (m *Mesh) FaceNormal(t int) math.Vec3 {
	return m.faceCross(t).Normalize()
}

// VertexNormals returns smooth per-vertex normals. Each vertex averages the
// normals of the triangles that use it, weighted by triangle area.
func (m *Mesh) VertexNormals() []math.Vec3 {
	sums := make([]math.Vec3, len(m.Vertices))
	for t, tri := range m.Triangles {
		// Unnormalized cross product: its length is twice the triangle area.
		n := m.faceCross(t)
		for _, idx := range tri {
			sums[idx] = sums[idx].Add(n)
		}
	}
	for i := range sums {
		sums[i] = sums[i].Normalize()
	}
	return sums
}

func (m *Mesh) faceCross(t int) math.Vec3 {
	tri := m.Triangles[t]
	a := math.FromArray(m.Vertices[tri[0]])
	b := math.FromArray(m.Vertices[tri[1]])
	c := math.FromArray(m.Vertices[tri[2]])
	return b.Sub(a).Cross(c.Sub(a))
}
