package gamestate

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// MoveOutcome describes which path a move request took.
type MoveOutcome uint8

const (
	// MoveFree means the requested position was valid and kept.
	MoveFree MoveOutcome = iota
	// MoveResolved means the move hit a wall or the grid edge and the player
	// was placed on the boundary of the cell it started in.
	MoveResolved
	// MoveRejected means no boundary position was found and the player stayed
	// where it was.
	MoveRejected
)

func (o MoveOutcome) String() string {
	switch o {
	case MoveFree:
		return "free"
	case MoveResolved:
		return "resolved"
	case MoveRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// MoveResult captures the outcome of a single move request.
type MoveResult struct {
	Previous  mgl64.Vec2
	Requested mgl64.Vec2
	Position  mgl64.Vec2
	Outcome   MoveOutcome
}

// Move walks the player for dt and resolves collisions with walls and the
// grid edge. The player never ends inside a wall cell or outside the grid.
func (s *Gamestate) Move(dir MoveDirection, dt time.Duration) MoveResult {
	past := s.player.Position()
	switch dir {
	case Forward:
		s.player.Move(1, dt)
	case Backward:
		s.player.Move(-1, dt)
	}
	curr := s.player.Position()

	result := MoveResult{Previous: past, Requested: curr, Position: curr, Outcome: MoveFree}
	if s.validMove(past, curr) {
		return result
	}

	resolved, ok := s.resolveCollision(past, curr)
	result.Position, result.Outcome = resolved, MoveResolved
	if !ok {
		result.Position, result.Outcome = past, MoveRejected
	}
	s.player.SetPosition(result.Position.X(), result.Position.Y())

	s.log.WithFields(logrus.Fields{
		"from":     past,
		"to":       curr,
		"resolved": result.Position,
		"outcome":  result.Outcome,
	}).Debug("movement collision")
	return result
}

// validMove reports whether curr is a valid position and the straight path
// from past to curr crosses no wall cell.
func (s *Gamestate) validMove(past, curr mgl64.Vec2) bool {
	if !s.validPosition(curr) {
		return false
	}
	delta := curr.Sub(past)
	length := delta.Len()
	if length < epsilon {
		return true
	}
	return !s.march(past, delta.Mul(1/length), length, true).Hit
}

// resolveCollision finds the point where the line from past to curr leaves
// the cell containing past. When the move crossed a cell boundary on both
// axes, the crossing that still lies in the source cell wins, the vertical
// edge first. The boolean is false when no such point exists.
func (s *Gamestate) resolveCollision(past, curr mgl64.Vec2) (mgl64.Vec2, bool) {
	src := s.cellOf(past)
	dst := s.cellOf(curr)

	stepX := clampStep(dst.col - src.col)
	if curr.X() < 0 {
		stepX = -1
	}
	stepY := clampStep(dst.row - src.row)
	if curr.Y() < 0 {
		stepY = -1
	}

	left, right := cellEdge(src.col, s.blockSize), below(cellEdge(src.col+1, s.blockSize))
	top, bottom := cellEdge(src.row, s.blockSize), below(cellEdge(src.row+1, s.blockSize))

	// The line y = m*x + b through past and curr, evaluated parametrically so
	// axis-aligned moves never divide by a zero component.
	d := curr.Sub(past)

	var candX, candY mgl64.Vec2
	okX, okY := false, false
	if stepX != 0 && !nearZero(d.X()) {
		edge := left
		if stepX > 0 {
			edge = right
		}
		t := (edge - past.X()) / d.X()
		candX, okX = mgl64.Vec2{edge, past.Y() + t*d.Y()}, true
	}
	if stepY != 0 && !nearZero(d.Y()) {
		edge := top
		if stepY > 0 {
			edge = bottom
		}
		t := (edge - past.Y()) / d.Y()
		candY, okY = mgl64.Vec2{past.X() + t*d.X(), edge}, true
	}

	switch {
	case okX && okY:
		if s.cellOf(candX) == src {
			return candX, true
		}
		if s.cellOf(candY) == src {
			return candY, true
		}
		return past, false
	case okX:
		return candX, s.validPosition(candX)
	case okY:
		return candY, s.validPosition(candY)
	default:
		return past, false
	}
}
