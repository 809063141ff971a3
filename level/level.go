// Package level loads, saves and generates the maps the raycaster runs on.
package level

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml"

	"raycaster/gamestate"
)

const (
	DefaultBlockSize    = 64.0
	DefaultRayCount     = 160
	DefaultFieldOfView  = 66.0
	DefaultViewDistance = 1024.0
)

var (
	// ErrNoMap is returned for level files without any map rows.
	ErrNoMap = errors.New("level has no map rows")
	// ErrBadCell is returned for map characters that are neither wall nor floor.
	ErrBadCell = errors.New("unknown map cell")
	// ErrNoFreeCell is returned when a level without a player start has no
	// floor cell to place the player in.
	ErrNoFreeCell = errors.New("level has no free cell")
)

// Level is a decoded map together with the view settings and the player start.
type Level struct {
	Matrix       [][]bool
	BlockSize    float64
	RayCount     int
	FieldOfView  float64
	ViewDistance float64

	StartX, StartY float64
	Heading        float64
}

type file struct {
	BlockSize    float64     `toml:"block_size"`
	RayCount     int         `toml:"ray_count"`
	FieldOfView  float64     `toml:"fov"`
	ViewDistance float64     `toml:"view_distance"`
	Player       *filePlayer `toml:"player"`
	Map          fileMap     `toml:"map"`
}

type filePlayer struct {
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Heading float64 `toml:"heading"`
}

type fileMap struct {
	Rows []string `toml:"rows"`
}

// Load reads and decodes the level file at path.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading level: %w", err)
	}
	l, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding level %s: %w", path, err)
	}
	return l, nil
}

// Decode parses a TOML level. Map rows use '#' for walls and '.' for floor.
// Missing settings fall back to the package defaults, and a missing player
// table starts the player in the centre of the first free cell.
func Decode(data []byte) (*Level, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Map.Rows) == 0 {
		return nil, ErrNoMap
	}

	matrix := make([][]bool, len(f.Map.Rows))
	for y, row := range f.Map.Rows {
		matrix[y] = make([]bool, len(row))
		for x, c := range row {
			switch c {
			case '#':
				matrix[y][x] = true
			case '.', ' ':
			default:
				return nil, fmt.Errorf("row %d column %d %q: %w", y, x, c, ErrBadCell)
			}
		}
	}
	if _, err := gamestate.NewGrid(matrix); err != nil {
		return nil, err
	}

	l := &Level{
		Matrix:       matrix,
		BlockSize:    orDefault(f.BlockSize, DefaultBlockSize),
		RayCount:     f.RayCount,
		FieldOfView:  orDefault(f.FieldOfView, DefaultFieldOfView),
		ViewDistance: orDefault(f.ViewDistance, DefaultViewDistance),
	}
	if l.RayCount <= 0 {
		l.RayCount = DefaultRayCount
	}

	if f.Player != nil {
		l.StartX, l.StartY, l.Heading = f.Player.X, f.Player.Y, f.Player.Heading
		return l, nil
	}
	col, row, ok := firstFreeCell(matrix)
	if !ok {
		return nil, ErrNoFreeCell
	}
	l.StartX = (float64(col) + 0.5) * l.BlockSize
	l.StartY = (float64(row) + 0.5) * l.BlockSize
	return l, nil
}

// Encode renders the level back into its TOML form.
func (l *Level) Encode() ([]byte, error) {
	rows := make([]string, len(l.Matrix))
	var sb strings.Builder
	for y, cells := range l.Matrix {
		sb.Reset()
		for _, wall := range cells {
			if wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return toml.Marshal(file{
		BlockSize:    l.BlockSize,
		RayCount:     l.RayCount,
		FieldOfView:  l.FieldOfView,
		ViewDistance: l.ViewDistance,
		Player:       &filePlayer{X: l.StartX, Y: l.StartY, Heading: l.Heading},
		Map:          fileMap{Rows: rows},
	})
}

// Save writes the level to path, replacing any existing file.
func (l *Level) Save(path string) error {
	data, err := l.Encode()
	if err != nil {
		return fmt.Errorf("failed encoding level: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed writing level: %w", err)
	}
	return nil
}

// Options returns the gamestate options carried by the level.
func (l *Level) Options() []gamestate.Option {
	return []gamestate.Option{
		gamestate.WithFieldOfView(l.FieldOfView),
		gamestate.WithViewDistance(l.ViewDistance),
		gamestate.WithHeading(l.Heading),
	}
}

func firstFreeCell(matrix [][]bool) (col, row int, ok bool) {
	for y, cells := range matrix {
		for x, wall := range cells {
			if !wall {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
