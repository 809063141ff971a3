package gamestate

import "fmt"

// Grid is an immutable rectangular occupancy map. Cells are numbered
// row-major, index = row*width + col.
type Grid struct {
	width, height int

	walls    []uint32
	occupied []bool
}

// NewGrid builds a Grid from a boolean matrix where true marks a wall. The
// matrix must have at least one row, and every row must be as long as the
// first one.
func NewGrid(matrix [][]bool) (*Grid, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	height, width := len(matrix), len(matrix[0])
	g := &Grid{
		width:    width,
		height:   height,
		occupied: make([]bool, width*height),
	}
	for row, cells := range matrix {
		if len(cells) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", row, len(cells), width, ErrJaggedGrid)
		}
		for col, wall := range cells {
			if !wall {
				continue
			}
			idx := row*width + col
			g.occupied[idx] = true
			g.walls = append(g.walls, uint32(idx))
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Walls returns the indices of all wall cells in ascending order.
func (g *Grid) Walls() []uint32 {
	walls := make([]uint32, len(g.walls))
	copy(walls, g.walls)
	return walls
}

// IsWall reports whether the cell with the given index is a wall. Indices
// outside the grid are not walls.
func (g *Grid) IsWall(cell uint32) bool {
	if int64(cell) >= int64(len(g.occupied)) {
		return false
	}
	return g.occupied[cell]
}

// Occupied reports whether the cell at col, row blocks movement. Cells
// outside the grid are treated as solid.
func (g *Grid) Occupied(col, row int) bool {
	if !g.Contains(col, row) {
		return true
	}
	return g.occupied[row*g.width+col]
}

// Contains reports whether col, row addresses a cell of the grid.
func (g *Grid) Contains(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

// Index returns the row-major index of an in-grid cell.
func (g *Grid) Index(col, row int) uint32 {
	return uint32(row*g.width + col)
}
