package gamestate

import (
	"errors"
	"slices"
	"testing"
)

func TestNewGridRowMajorWalls(t *testing.T) {
	g, err := NewGrid([][]bool{
		{true, false, false},
		{false, true, false},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", g.Width(), g.Height())
	}
	if walls := g.Walls(); !slices.Equal(walls, []uint32{0, 4}) {
		t.Fatalf("expected walls [0 4], got %v", walls)
	}
	for idx := uint32(0); idx < 6; idx++ {
		want := idx == 0 || idx == 4
		if got := g.IsWall(idx); got != want {
			t.Fatalf("IsWall(%d) = %v, want %v", idx, got, want)
		}
	}
	if g.IsWall(6) {
		t.Fatalf("index past the grid must not be a wall")
	}
}

func TestNewGridRejectsMalformedMatrix(t *testing.T) {
	tests := []struct {
		name   string
		matrix [][]bool
		want   error
	}{
		{"nil", nil, ErrEmptyGrid},
		{"no columns", [][]bool{{}}, ErrEmptyGrid},
		{"jagged", [][]bool{{true, false}, {true}}, ErrJaggedGrid},
		{"jagged longer", [][]bool{{true}, {false}, {true, true}}, ErrJaggedGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.matrix)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if g != nil {
				t.Fatalf("expected no grid on error")
			}
		})
	}
}

func TestGridWallsIsACopy(t *testing.T) {
	g, err := NewGrid([][]bool{{true, true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	walls := g.Walls()
	walls[0] = 99
	if g.Walls()[0] != 0 {
		t.Fatalf("grid walls mutated through returned slice")
	}
}

func TestGridOccupiedOutsideIsSolid(t *testing.T) {
	g, err := NewGrid([][]bool{{false, false}, {false, true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Occupied(0, 0) {
		t.Fatalf("free cell reported occupied")
	}
	if !g.Occupied(1, 1) {
		t.Fatalf("wall cell reported free")
	}
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if !g.Occupied(c[0], c[1]) {
			t.Fatalf("cell %v outside the grid must be solid", c)
		}
	}
}
