package preview

import "math"

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// viewport projects scene space onto a grid of terminal cells.
type viewport struct {
	width, height int
	// spread is the scene radius that fills the shorter screen axis.
	spread float64
}

// project rotates (x, y, z) about the Y axis by rotY and maps it to a cell.
// depth is 1 at the near edge of the scene and 0 at the far edge.
func (v viewport) project(x, y, z, rotY float64) (col, row int, depth float64, ok bool) {
	if v.width <= 0 || v.height <= 0 || v.spread <= 0 {
		return 0, 0, 0, false
	}
	sin, cos := math.Sincos(rotY)
	rx := x*cos - z*sin
	rz := x*sin + z*cos

	scale := float64(v.height) / 2 / v.spread
	col = int(math.Round(float64(v.width)/2 + rx*scale*cellAspect))
	row = int(math.Round(float64(v.height)/2 - y*scale))
	if col < 0 || col >= v.width || row < 0 || row >= v.height {
		return 0, 0, 0, false
	}
	depth = math.Max(0, math.Min(1, (rz+v.spread)/(2*v.spread)))
	return col, row, depth, true
}
