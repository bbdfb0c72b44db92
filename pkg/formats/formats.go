// Package formats provides readers for elevation raster formats.
package formats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Faultbox/dem-mesh/pkg/terrain"
)

// DEM is an elevation grid with its coordinate axes.
// Z has dimensions (len(Y), len(X)); row 0 is the first row of the source raster.
type DEM struct {
	X         []float64
	Y         []float64
	Z         *mat.Dense
	NoData    float64
	HasNoData bool
}

// Dims returns the number of rows and columns of the grid.
func (d *DEM) Dims() (rows, cols int) {
	return len(d.Y), len(d.X)
}

// MaskNoData replaces samples equal to the NODATA value with NaN and
// returns how many were replaced.
func (d *DEM) MaskNoData() int {
	if !d.HasNoData {
		return 0
	}
	masked := 0
	rows, cols := d.Z.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if d.Z.At(i, j) == d.NoData {
				d.Z.Set(i, j, math.NaN())
				masked++
			}
		}
	}
	return masked
}

// Mesh triangulates the grid.
func (d *DEM) Mesh(parallel bool) (*terrain.Mesh, error) {
	var (
		mesh *terrain.Mesh
		err  error
	)
	if parallel {
		mesh, err = terrain.TriangulateParallel(d.X, d.Y, d.Z)
	} else {
		mesh, err = terrain.Triangulate(d.X, d.Y, d.Z)
	}
	if err != nil {
		return nil, fmt.Errorf("triangulating DEM: %w", err)
	}
	return mesh, nil
}
