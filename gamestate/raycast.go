package gamestate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// chunksPerWorker is how many pieces a parallel batch is split into per
// worker.
const chunksPerWorker = 4

// Ray is the result of casting a single ray.
type Ray struct {
	// Point is where the ray stopped: on the face of the wall it struck, or at
	// the view distance when it struck nothing.
	Point mgl64.Vec2
	// Hit is false when the ray reached the view distance without striking a
	// wall.
	Hit bool
	// Distance is the length of the ray from the player to Point.
	Distance float64
	// Angle is the absolute angle of the ray in degrees.
	Angle float64
	// Vertical is true when the struck face lies on a vertical grid line.
	Vertical bool
}

// CastRays casts one ray per configured fan angle from the player's position
// and returns them ordered from heading+fov/2 toward heading-fov/2. Calling it
// repeatedly without moving or rotating yields identical results.
func (s *Gamestate) CastRays() []Ray {
	origin := s.player.Position()
	maxDist := s.player.ViewDistance()
	angles := s.ViewAngles()

	rays := make([]Ray, len(angles))
	castRange := func(from, to int) {
		for i := from; i < to; i++ {
			rays[i] = s.cast(origin, angles[i], maxDist)
		}
	}

	if s.workers <= 1 || len(rays) < 2*s.workers {
		castRange(0, len(rays))
		return rays
	}
	// Several chunks per worker keep the goroutines evenly loaded when some
	// rays travel much further than others.
	var g errgroup.Group
	g.SetLimit(s.workers)
	chunk := max(1, len(rays)/(s.workers*chunksPerWorker))
	for from := 0; from < len(rays); from += chunk {
		to := min(from+chunk, len(rays))
		g.Go(func() error {
			castRange(from, to)
			return nil
		})
	}
	// Chunks never fail; Wait only joins them.
	_ = g.Wait()
	return rays
}

// ViewAngles returns the absolute angle of every ray in the next batch, in
// the order CastRays returns them.
func (s *Gamestate) ViewAngles() []float64 {
	heading := s.player.Heading()
	angles := make([]float64, len(s.rayAngles))
	for i, offset := range s.rayAngles {
		angles[i] = normalizeHeading(heading - offset)
	}
	return angles
}

// CastRay casts a single ray from the player's position at an absolute angle
// in degrees.
func (s *Gamestate) CastRay(angle float64) Ray {
	return s.cast(s.player.Position(), normalizeHeading(angle), s.player.ViewDistance())
}

func (s *Gamestate) cast(origin mgl64.Vec2, angle, maxDist float64) Ray {
	r := s.march(origin, direction(angle), maxDist, false)
	r.Angle = angle
	return r
}

// march walks from origin along the unit vector dir, one grid line at a time,
// until it enters a wall cell or travels maxDist. With solidEdge set, leaving
// the grid counts as a hit on the grid edge; otherwise a ray that leaves the
// grid can never strike anything and ends as a miss at maxDist.
func (s *Gamestate) march(origin, dir mgl64.Vec2, maxDist float64, solidEdge bool) Ray {
	c := s.cellOf(origin)
	if s.grid.Occupied(c.col, c.row) {
		return Ray{Point: origin, Hit: true}
	}
	if !(maxDist > 0) {
		return Ray{Point: origin}
	}

	stepX, tMaxX, tDeltaX := s.axisStep(origin.X(), dir.X(), c.col)
	stepY, tMaxY, tDeltaY := s.axisStep(origin.Y(), dir.Y(), c.row)
	if stepX == 0 && stepY == 0 {
		return Ray{Point: origin, Hit: true}
	}

	// A ray leaves the grid after at most width+height+2 crossings, so
	// running past the limit means it stopped making progress.
	limit := s.grid.Width() + s.grid.Height() + 4
	last, stalls := 0.0, 0
	point := origin
	for range limit {
		var t float64
		vertical := tMaxX < tMaxY
		if vertical {
			t = tMaxX
			c.col += stepX
			tMaxX += tDeltaX
		} else {
			t = tMaxY
			c.row += stepY
			tMaxY += tDeltaY
		}

		if t >= maxDist {
			return Ray{Point: origin.Add(dir.Mul(maxDist)), Distance: maxDist}
		}

		// A ray through a grid corner crosses both lines at the same distance,
		// so one zero-length step is legitimate.
		if t-last < epsilon {
			stalls++
			if stalls > 2 {
				return Ray{Point: point, Hit: true, Distance: last, Vertical: vertical}
			}
		} else {
			stalls = 0
		}
		last = t

		point = origin.Add(dir.Mul(t))
		if vertical {
			point[0] = s.sharedEdge(c.col, stepX)
		} else {
			point[1] = s.sharedEdge(c.row, stepY)
		}

		if !s.grid.Contains(c.col, c.row) {
			if solidEdge {
				return Ray{Point: point, Hit: true, Distance: t, Vertical: vertical}
			}
			return Ray{Point: origin.Add(dir.Mul(maxDist)), Distance: maxDist}
		}
		if s.grid.Occupied(c.col, c.row) {
			return Ray{Point: point, Hit: true, Distance: t, Vertical: vertical}
		}
	}
	return Ray{Point: point, Hit: true, Distance: last}
}

// axisStep returns, for one axis, the cell step direction, the distance along
// the ray to the first grid line crossed, and the distance between
// successive grid lines.
func (s *Gamestate) axisStep(pos, dir float64, idx int) (step int, tMax, tDelta float64) {
	switch {
	case nearZero(dir):
		return 0, math.Inf(1), math.Inf(1)
	case dir > 0:
		return 1, (cellEdge(idx+1, s.blockSize) - pos) / dir, s.blockSize / dir
	default:
		return -1, (pos - cellEdge(idx, s.blockSize)) / -dir, s.blockSize / -dir
	}
}

// sharedEdge returns the grid line between the cell just entered, idx, and
// the cell it was entered from.
func (s *Gamestate) sharedEdge(idx, step int) float64 {
	if step > 0 {
		return cellEdge(idx, s.blockSize)
	}
	return cellEdge(idx+1, s.blockSize)
}
