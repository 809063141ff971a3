package level

import "math/rand"

// GenerateConfig shapes a procedurally generated level.
type GenerateConfig struct {
	Width, Height int

	// Segments is the number of straight wall runs scattered inside the
	// border; each is between MinLength and MaxLength cells long.
	Segments             int
	MinLength, MaxLength int
	// ThicknessVariance widens a run by up to this many cells on each side.
	ThicknessVariance int
	// ExclusionRadius keeps walls at least this many cells from the start.
	ExclusionRadius int
}

// DefaultGenerateConfig returns the layout used when no level file is given.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Width:             24,
		Height:            24,
		Segments:          14,
		MinLength:         3,
		MaxLength:         9,
		ThicknessVariance: 1,
		ExclusionRadius:   2,
	}
}

// Generate builds a walled level with random interior segments. The player
// starts in the centre cell facing along the positive x axis. The same rand
// state always produces the same level.
func Generate(r *rand.Rand, cfg GenerateConfig) *Level {
	width, height := max(cfg.Width, 3), max(cfg.Height, 3)
	matrix := make([][]bool, height)
	for y := range matrix {
		matrix[y] = make([]bool, width)
		for x := range matrix[y] {
			matrix[y][x] = x == 0 || y == 0 || x == width-1 || y == height-1
		}
	}

	g := generator{
		matrix: matrix,
		width:  width,
		height: height,
		sx:     width / 2,
		sy:     height / 2,
		exclR:  cfg.ExclusionRadius,
	}
	if width > 4 && height > 4 {
		for s := 0; s < cfg.Segments; s++ {
			g.segment(r, cfg)
		}
	}

	return &Level{
		Matrix:       matrix,
		BlockSize:    DefaultBlockSize,
		RayCount:     DefaultRayCount,
		FieldOfView:  DefaultFieldOfView,
		ViewDistance: DefaultViewDistance,
		StartX:       (float64(g.sx) + 0.5) * DefaultBlockSize,
		StartY:       (float64(g.sy) + 0.5) * DefaultBlockSize,
	}
}

type generator struct {
	matrix        [][]bool
	width, height int
	sx, sy, exclR int
}

func (g *generator) segment(r *rand.Rand, cfg GenerateConfig) {
	lengthRange := cfg.MaxLength - cfg.MinLength + 1
	if lengthRange <= 0 {
		lengthRange = 1
	}
	length := cfg.MinLength + r.Intn(lengthRange)
	thickness := 0
	if cfg.ThicknessVariance > 0 {
		thickness = r.Intn(cfg.ThicknessVariance + 1)
	}
	horizontal := r.Intn(2) == 0
	x := r.Intn(g.width-4) + 2
	y := r.Intn(g.height-4) + 2
	dx, dy := 0, 1
	if horizontal {
		dx, dy = 1, 0
	}
	perpX, perpY := dy, dx
	for l := 0; l < length; l++ {
		if x <= 0 || x >= g.width-1 || y <= 0 || y >= g.height-1 {
			break
		}
		for t := -thickness; t <= thickness; t++ {
			g.trySetWall(x+perpX*t, y+perpY*t)
		}
		x += dx
		y += dy
	}
}

// trySetWall marks an interior cell as a wall unless it lies within the
// exclusion radius of the start cell.
func (g *generator) trySetWall(x, y int) {
	if x <= 0 || x >= g.width-1 || y <= 0 || y >= g.height-1 {
		return
	}
	dx, dy := x-g.sx, y-g.sy
	if dx*dx+dy*dy <= g.exclR*g.exclR {
		return
	}
	g.matrix[y][x] = true
}
