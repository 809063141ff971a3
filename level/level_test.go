package level

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"raycaster/gamestate"
)

const sampleLevel = `
block_size = 32.0
ray_count = 90
fov = 60.0
view_distance = 500.0

[player]
x = 48.0
y = 48.0
heading = 90.0

[map]
rows = [
  "#####",
  "#...#",
  "#.#.#",
  "#...#",
  "#####",
]
`

func TestDecode(t *testing.T) {
	l, err := Decode([]byte(sampleLevel))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.BlockSize != 32 || l.RayCount != 90 || l.FieldOfView != 60 || l.ViewDistance != 500 {
		t.Fatalf("unexpected settings: %+v", l)
	}
	if l.StartX != 48 || l.StartY != 48 || l.Heading != 90 {
		t.Fatalf("unexpected start: %v, %v, %v", l.StartX, l.StartY, l.Heading)
	}
	if len(l.Matrix) != 5 || len(l.Matrix[0]) != 5 {
		t.Fatalf("unexpected map size %dx%d", len(l.Matrix[0]), len(l.Matrix))
	}
	if !l.Matrix[2][2] || l.Matrix[1][1] {
		t.Fatalf("map cells decoded incorrectly")
	}

	s, err := gamestate.New(l.Matrix, l.StartX, l.StartY, l.BlockSize, l.RayCount, l.Options()...)
	if err != nil {
		t.Fatalf("level does not build a gamestate: %v", err)
	}
	if s.PlayerHeading() != 90 || s.FieldOfView() != 60 {
		t.Fatalf("level options not applied")
	}
}

func TestDecodeDefaults(t *testing.T) {
	l, err := Decode([]byte(`
[map]
rows = ["###", "#.#", "###"]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.BlockSize != DefaultBlockSize || l.RayCount != DefaultRayCount ||
		l.FieldOfView != DefaultFieldOfView || l.ViewDistance != DefaultViewDistance {
		t.Fatalf("defaults not applied: %+v", l)
	}
	want := 1.5 * DefaultBlockSize
	if l.StartX != want || l.StartY != want {
		t.Fatalf("expected start in the free cell centre, got %v, %v", l.StartX, l.StartY)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"no map", `block_size = 10.0`, ErrNoMap},
		{"bad cell", "[map]\nrows = [\"#x#\"]", ErrBadCell},
		{"jagged", "[map]\nrows = [\"###\", \"#.\"]", gamestate.ErrJaggedGrid},
		{"no free cell", "[map]\nrows = [\"##\", \"##\"]", ErrNoFreeCell},
	}
	for _, tt := range tests {
		if _, err := Decode([]byte(tt.data)); !errors.Is(err, tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	l := Generate(rand.New(rand.NewSource(3)), DefaultGenerateConfig())
	l.Heading = 45
	path := filepath.Join(t.TempDir(), "level.toml")
	if err := l.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.StartX != l.StartX || loaded.StartY != l.StartY || loaded.Heading != 45 {
		t.Fatalf("start not preserved: %+v", loaded)
	}
	for y := range l.Matrix {
		for x := range l.Matrix[y] {
			if l.Matrix[y][x] != loaded.Matrix[y][x] {
				t.Fatalf("cell %d,%d not preserved", x, y)
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	cfg := DefaultGenerateConfig()
	a := Generate(rand.New(rand.NewSource(11)), cfg)
	b := Generate(rand.New(rand.NewSource(11)), cfg)
	for y := range a.Matrix {
		for x := range a.Matrix[y] {
			if a.Matrix[y][x] != b.Matrix[y][x] {
				t.Fatalf("same seed produced different cell %d,%d", x, y)
			}
			border := x == 0 || y == 0 || x == cfg.Width-1 || y == cfg.Height-1
			if border && !a.Matrix[y][x] {
				t.Fatalf("border cell %d,%d is open", x, y)
			}
		}
	}
	if a.Matrix[cfg.Height/2][cfg.Width/2] {
		t.Fatalf("start cell is a wall")
	}
	if _, err := gamestate.New(a.Matrix, a.StartX, a.StartY, a.BlockSize, a.RayCount, a.Options()...); err != nil {
		t.Fatalf("generated level does not build a gamestate: %v", err)
	}
}

func TestGenerateTinyLevel(t *testing.T) {
	l := Generate(rand.New(rand.NewSource(1)), GenerateConfig{Width: 1, Height: 1, Segments: 5})
	if len(l.Matrix) != 3 || len(l.Matrix[0]) != 3 || l.Matrix[1][1] {
		t.Fatalf("expected a 3x3 ring, got %v", l.Matrix)
	}
}
