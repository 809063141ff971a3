// Package gamestate implements the simulation core of a grid raycaster: an
// immutable occupancy grid, a player actor, movement with wall-collision
// resolution, and ray casting from the player's eye to the nearest wall.
//
// A Gamestate is owned by a single caller. Move and Rotate mutate it, CastRays
// reads it; none of them block or perform I/O.
package gamestate

import (
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultFieldOfView is the width of the view cone in degrees.
	DefaultFieldOfView = 120.0
	// DefaultViewDistance is the maximum ray length in world units.
	DefaultViewDistance = 150.0
)

// TurnDirection selects the sign of a rotation.
type TurnDirection uint8

const (
	TurnLeft TurnDirection = iota
	TurnRight
)

// MoveDirection selects the sign of a move.
type MoveDirection uint8

const (
	Forward MoveDirection = iota
	Backward
)

// Options configure a Gamestate beyond the grid, start position, block size
// and ray count.
type Options struct {
	FieldOfView  float64
	ViewDistance float64
	TurnRate     float64
	MoveRate     float64
	Heading      float64

	// Workers above 1 spread each ray batch over that many goroutines.
	Workers int

	// Log receives a debug event for every collision resolution.
	Log logrus.FieldLogger
}

// Option mutates Options during New.
type Option func(*Options)

// WithFieldOfView sets the view cone width in degrees.
func WithFieldOfView(deg float64) Option { return func(o *Options) { o.FieldOfView = deg } }

// WithViewDistance sets the maximum ray length in world units.
func WithViewDistance(d float64) Option { return func(o *Options) { o.ViewDistance = d } }

// WithTurnRate sets the rotation speed in degrees per second.
func WithTurnRate(r float64) Option { return func(o *Options) { o.TurnRate = r } }

// WithMoveRate sets the walking speed in world units per second.
func WithMoveRate(r float64) Option { return func(o *Options) { o.MoveRate = r } }

// WithHeading sets the initial heading in degrees.
func WithHeading(deg float64) Option { return func(o *Options) { o.Heading = deg } }

// WithWorkers sets the number of goroutines used per ray batch.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithLogger sets the diagnostics logger.
func WithLogger(log logrus.FieldLogger) Option { return func(o *Options) { o.Log = log } }

// Gamestate orchestrates an Actor inside a Grid.
type Gamestate struct {
	grid      *Grid
	player    *Actor
	blockSize float64
	rayAngles []float64
	workers   int
	log       logrus.FieldLogger
}

// New constructs a Gamestate from a wall matrix, the player's start position
// in world units, the world size of one cell and the number of rays per batch.
func New(matrix [][]bool, startX, startY, blockSize float64, rayCount int, opts ...Option) (*Gamestate, error) {
	grid, err := NewGrid(matrix)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	if !(blockSize > 0) {
		return nil, fmt.Errorf("block size %v: %w", blockSize, ErrBlockSize)
	}
	if rayCount < 1 {
		return nil, fmt.Errorf("ray count %d: %w", rayCount, ErrRayCount)
	}

	o := Options{
		FieldOfView:  DefaultFieldOfView,
		ViewDistance: DefaultViewDistance,
		TurnRate:     DefaultTurnRate,
		MoveRate:     DefaultMoveRate,
		Workers:      1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Log = l
	}

	player := NewActor(startX, startY, o.FieldOfView, o.ViewDistance)
	player.SetRates(o.TurnRate, o.MoveRate)
	player.SetHeading(o.Heading)

	s := &Gamestate{
		grid:      grid,
		player:    player,
		blockSize: blockSize,
		rayAngles: fanAngles(o.FieldOfView, rayCount),
		workers:   o.Workers,
		log:       o.Log,
	}
	if !s.validPosition(player.Position()) {
		return nil, fmt.Errorf("start (%v, %v): %w", startX, startY, ErrInvalidStart)
	}
	return s, nil
}

// fanAngles divides fov into count+1 equal slices and returns the count
// interior boundaries as offsets from the centre of the view.
func fanAngles(fov float64, count int) []float64 {
	angles := make([]float64, count)
	slice := fov / float64(count+1)
	for i := range angles {
		angles[i] = -fov/2 + slice*float64(i+1)
	}
	return angles
}

// Grid returns the occupancy grid.
func (s *Gamestate) Grid() *Grid { return s.grid }

// Walls returns the indices of all wall cells.
func (s *Gamestate) Walls() []uint32 { return s.grid.Walls() }

// Width returns the grid width in cells.
func (s *Gamestate) Width() int { return s.grid.Width() }

// Height returns the grid height in cells.
func (s *Gamestate) Height() int { return s.grid.Height() }

// BlockSize returns the world size of one cell.
func (s *Gamestate) BlockSize() float64 { return s.blockSize }

// PlayerPosition returns the player's position in world units.
func (s *Gamestate) PlayerPosition() mgl64.Vec2 { return s.player.Position() }

// PlayerHeading returns the player's heading in degrees, in [0, 360).
func (s *Gamestate) PlayerHeading() float64 { return s.player.Heading() }

// ViewDistance returns the maximum ray length.
func (s *Gamestate) ViewDistance() float64 { return s.player.ViewDistance() }

// FieldOfView returns the view cone width in degrees.
func (s *Gamestate) FieldOfView() float64 { return s.player.FieldOfView() }

// RayAngles returns the ray offsets from the view centre, in degrees.
func (s *Gamestate) RayAngles() []float64 {
	angles := make([]float64, len(s.rayAngles))
	copy(angles, s.rayAngles)
	return angles
}

// CellID returns the row-major index of the cell containing x, y. The result
// is only meaningful for positions inside the grid.
func (s *Gamestate) CellID(x, y float64) uint32 {
	c := s.cellOf(mgl64.Vec2{x, y})
	return s.grid.Index(c.col, c.row)
}

// Rotate turns the player for dt.
func (s *Gamestate) Rotate(dir TurnDirection, dt time.Duration) {
	switch dir {
	case TurnLeft:
		s.player.Rotate(-1, dt)
	case TurnRight:
		s.player.Rotate(1, dt)
	}
}

// cellOf maps p to its cell. Positions exactly on the far edge of the grid,
// which are inside the bounds, map to the last column or row.
func (s *Gamestate) cellOf(p mgl64.Vec2) cell {
	c := cellAt(p.X(), p.Y(), s.blockSize)
	if c.col == s.grid.Width() && p.X() == cellEdge(c.col, s.blockSize) {
		c.col--
	}
	if c.row == s.grid.Height() && p.Y() == cellEdge(c.row, s.blockSize) {
		c.row--
	}
	return c
}

// validPosition reports whether p lies inside the grid bounds and outside any
// wall cell.
func (s *Gamestate) validPosition(p mgl64.Vec2) bool {
	w := cellEdge(s.grid.Width(), s.blockSize)
	h := cellEdge(s.grid.Height(), s.blockSize)
	// Written to reject NaN as well.
	if !(p.X() >= 0 && p.Y() >= 0 && p.X() <= w && p.Y() <= h) {
		return false
	}
	c := s.cellOf(p)
	return !s.grid.Occupied(c.col, c.row)
}
