package gamestate

import (
	"errors"
	"math"
	"testing"
)

// parseMatrix turns rows of '#' (wall) and '.' (free) into a wall matrix.
func parseMatrix(rows ...string) [][]bool {
	matrix := make([][]bool, len(rows))
	for i, row := range rows {
		matrix[i] = make([]bool, len(row))
		for j, c := range row {
			matrix[i][j] = c == '#'
		}
	}
	return matrix
}

// scenarioMatrix is a 4x4 level with walls in column 0 and in column 2 of the
// second and third rows.
func scenarioMatrix() [][]bool {
	return parseMatrix(
		"#...",
		"#.#.",
		"#.#.",
		"#...",
	)
}

func TestNewValidatesArguments(t *testing.T) {
	tests := []struct {
		name      string
		matrix    [][]bool
		x, y      float64
		blockSize float64
		rays      int
		want      error
	}{
		{"empty grid", nil, 0, 0, 100, 10, ErrEmptyGrid},
		{"jagged grid", [][]bool{{false, false}, {false}}, 50, 50, 100, 10, ErrJaggedGrid},
		{"zero block size", scenarioMatrix(), 150, 150, 0, 10, ErrBlockSize},
		{"negative block size", scenarioMatrix(), 150, 150, -5, 10, ErrBlockSize},
		{"no rays", scenarioMatrix(), 150, 150, 100, 0, ErrRayCount},
		{"start in wall", scenarioMatrix(), 50, 50, 100, 10, ErrInvalidStart},
		{"start outside", scenarioMatrix(), 150, 450, 100, 10, ErrInvalidStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.matrix, tt.x, tt.y, tt.blockSize, tt.rays)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if s != nil {
				t.Fatalf("expected no gamestate on error")
			}
		})
	}
}

func TestQueries(t *testing.T) {
	s, err := New(scenarioMatrix(), 150, 150, 100, 5, WithHeading(-90), WithViewDistance(300), WithFieldOfView(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width() != 4 || s.Height() != 4 || s.BlockSize() != 100 {
		t.Fatalf("unexpected dimensions %dx%d block %v", s.Width(), s.Height(), s.BlockSize())
	}
	if p := s.PlayerPosition(); p.X() != 150 || p.Y() != 150 {
		t.Fatalf("unexpected position %v", p)
	}
	if s.PlayerHeading() != 270 {
		t.Fatalf("expected heading normalised to 270, got %v", s.PlayerHeading())
	}
	if s.ViewDistance() != 300 || s.FieldOfView() != 60 {
		t.Fatalf("unexpected view cone %v/%v", s.FieldOfView(), s.ViewDistance())
	}
	if got := len(s.Walls()); got != 6 {
		t.Fatalf("expected 6 walls, got %d", got)
	}
	if id := s.CellID(250, 150); id != 6 || !s.Grid().IsWall(id) {
		t.Fatalf("expected wall cell 6, got %d", id)
	}
	// The far edge of the grid belongs to the last cell.
	if id := s.CellID(400, 400); id != 15 {
		t.Fatalf("expected cell 15 on the far corner, got %d", id)
	}
}

func TestFanAngles(t *testing.T) {
	angles := fanAngles(120, 3)
	want := []float64{-30, 0, 30}
	for i := range want {
		if !approxEq(angles[i], want[i], 1e-9) {
			t.Fatalf("expected %v, got %v", want, angles)
		}
	}
	// The boundaries of the view cone are never cast.
	angles = fanAngles(90, 1)
	if len(angles) != 1 || angles[0] != 0 {
		t.Fatalf("expected a single centre ray, got %v", angles)
	}
}

func TestCellAtMatchesEdges(t *testing.T) {
	for _, bs := range []float64{1, 0.1, 0.3, 7, 64, 100} {
		for i := -3; i < 50; i++ {
			edge := cellEdge(i, bs)
			if got := axisCell(edge, bs); got != i {
				t.Fatalf("block %v: edge of cell %d maps to %d", bs, i, got)
			}
			if got := axisCell(below(cellEdge(i+1, bs)), bs); got != i {
				t.Fatalf("block %v: just below edge of cell %d maps to %d", bs, i+1, got)
			}
		}
	}
}

func TestAxisCellClampsFarCoordinates(t *testing.T) {
	tests := []struct {
		v    float64
		want int
	}{
		{1e300, maxCellIndex},
		{math.Inf(1), maxCellIndex},
		{-1e300, -maxCellIndex},
		{math.Inf(-1), -maxCellIndex},
		{math.NaN(), -maxCellIndex},
		{250, 2},
	}
	for _, tt := range tests {
		if got := axisCell(tt.v, 100); got != tt.want {
			t.Fatalf("axisCell(%v): expected %d, got %d", tt.v, tt.want, got)
		}
	}
}
