package main

import (
	"github.com/go-gl/mathgl/mgl64"

	"raycaster/gamestate"
)

// minimap maps world coordinates into the minimap square in the corner of the
// screen.
type minimap struct {
	x, y          float32
	width, height float32
	scale         float64
}

// newMinimap fits the whole grid into minimapSize pixels, keeping its aspect.
func newMinimap(s *gamestate.Gamestate) minimap {
	worldW := float64(s.Width()) * s.BlockSize()
	worldH := float64(s.Height()) * s.BlockSize()
	scale := minimapSize / max(worldW, worldH)
	return minimap{
		x:      minimapMargin,
		y:      minimapMargin,
		width:  float32(worldW * scale),
		height: float32(worldH * scale),
		scale:  scale,
	}
}

// point converts a world position into screen pixels.
func (m minimap) point(p mgl64.Vec2) (float32, float32) {
	return m.x + float32(p.X()*m.scale), m.y + float32(p.Y()*m.scale)
}

// cellRect returns the screen rectangle of the cell with row-major index idx.
func (m minimap) cellRect(idx uint32, width int, blockSize float64) (x, y, w, h float32) {
	col, row := int(idx)%width, int(idx)/width
	x, y = m.point(mgl64.Vec2{float64(col) * blockSize, float64(row) * blockSize})
	side := float32(blockSize * m.scale)
	return x, y, side, side
}
