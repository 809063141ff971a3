package gamestate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// epsilon is the tolerance below which a direction component or a step length
// counts as zero.
const epsilon = 1e-9

// maxCellIndex bounds cell coordinates computed from positions far outside
// any grid.
const maxCellIndex = 1 << 40

// cell is an unbounded cell coordinate. Positions left of or above the grid
// produce negative components.
type cell struct {
	col, row int
}

// cellAt maps a world position to the cell containing it. It is the only
// place positions are rounded to cells: a cell spans [i*blockSize,
// (i+1)*blockSize) on each axis, with the edges computed exactly as
// cellEdge computes them.
func cellAt(x, y, blockSize float64) cell {
	return cell{
		col: axisCell(x, blockSize),
		row: axisCell(y, blockSize),
	}
}

func axisCell(v, blockSize float64) int {
	q := math.Floor(v / blockSize)
	// Far-away coordinates only need to stay on the right side of the grid;
	// clamping keeps the conversion to int defined. NaN lands low.
	if !(q > -maxCellIndex) {
		return -maxCellIndex
	}
	if q > maxCellIndex {
		return maxCellIndex
	}
	i := int(q)
	// The quotient may round across an integer; settle against the edges.
	if cellEdge(i+1, blockSize) <= v {
		i++
	} else if cellEdge(i, blockSize) > v {
		i--
	}
	return i
}

// cellEdge returns the world coordinate of the near edge of cell i.
func cellEdge(i int, blockSize float64) float64 {
	return float64(i) * blockSize
}

// below returns the largest float64 smaller than v. A position at
// below(cellEdge(i+1)) still belongs to cell i.
func below(v float64) float64 {
	return math.Nextafter(v, math.Inf(-1))
}

// normalizeHeading reduces an angle in degrees into [0, 360).
func normalizeHeading(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		// -1e-17 + 360 rounds up to 360.
		deg = 0
	}
	return deg
}

// direction returns the unit vector for an angle in degrees.
func direction(deg float64) mgl64.Vec2 {
	s, c := math.Sincos(mgl64.DegToRad(deg))
	return mgl64.Vec2{c, s}
}

// clampStep clamps a cell delta into {-1, 0, 1}.
func clampStep(delta int) int {
	if delta > 0 {
		return 1
	}
	if delta < 0 {
		return -1
	}
	return 0
}

// nearZero reports whether v is within epsilon of zero.
func nearZero(v float64) bool {
	return math.Abs(v) < epsilon
}
