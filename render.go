package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"raycaster/gamestate"
)

// Draw renders the projected wall columns, the minimap and the debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	vector.DrawFilledRect(screen, 0, 0, screenWidth, screenHeight/2, ceilingColor, false)
	vector.DrawFilledRect(screen, 0, screenHeight/2, screenWidth, screenHeight/2, floorColor, false)

	g.drawColumns(screen)
	if *showMinimapFlag {
		g.drawMinimap(screen)
	}

	if *debugFlag {
		p := g.state.PlayerPosition()
		solver := "cpu"
		if g.gpuSolver != nil {
			solver = "opencl"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nPos: %.1f, %.1f (cell %d)\nHeading: %.1f\nRays: %d on %s in %.2f ms\nLast move: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			p.X(), p.Y(), g.state.CellID(p.X(), p.Y()),
			g.state.PlayerHeading(),
			len(g.rays), solver, g.lastRayDuration.Seconds()*1000,
			g.lastMove.Outcome)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return screenWidth, screenHeight }

// drawColumns draws one vertical strip per ray. Rays run from the right edge
// of the view to the left one, so the first ray lands in the last column.
func (g *Game) drawColumns(screen *ebiten.Image) {
	n := len(g.rays)
	if n == 0 {
		return
	}
	colWidth := float32(screenWidth) / float32(n)
	heading := g.state.PlayerHeading()
	projection := (screenWidth / 2) / math.Tan(mgl64.DegToRad(g.state.FieldOfView()/2))

	for i, r := range g.rays {
		if !r.Hit {
			continue
		}
		h := float32(wallHeight(r, heading, g.state.BlockSize(), projection))
		x := float32(n-1-i) * colWidth
		top := float32(screenHeight)/2 - h/2
		vector.DrawFilledRect(screen, x, top, colWidth+0.5, h, shadeWall(r), false)
	}
}

// wallHeight projects a hit onto the screen using the distance perpendicular
// to the view plane, which keeps straight walls straight.
func wallHeight(r gamestate.Ray, heading, blockSize, projection float64) float64 {
	perp := r.Distance * math.Cos(mgl64.DegToRad(r.Angle-heading))
	if perp < 1 {
		perp = 1
	}
	return math.Min(blockSize*projection/perp, 4*screenHeight)
}

// shadeWall darkens walls with distance and faces on vertical grid lines a
// little more.
func shadeWall(r gamestate.Ray) color.RGBA {
	f := mgl64.Clamp(1-r.Distance/wallShadeDistance, minWallShade, 1)
	if r.Vertical {
		f *= verticalFaceShade
	}
	return color.RGBA{
		R: uint8(float64(wallColor.R) * f),
		G: uint8(float64(wallColor.G) * f),
		B: uint8(float64(wallColor.B) * f),
		A: 255,
	}
}

// drawMinimap draws the grid, the ray fan and the player in the top-left
// corner.
func (g *Game) drawMinimap(screen *ebiten.Image) {
	m := g.minimap
	vector.DrawFilledRect(screen, m.x, m.y, m.width, m.height, minimapBackground, false)
	for _, idx := range g.walls {
		x, y, w, h := m.cellRect(idx, g.state.Width(), g.state.BlockSize())
		vector.DrawFilledRect(screen, x, y, w, h, minimapWallColor, false)
	}

	px, py := m.point(g.state.PlayerPosition())
	for _, r := range g.rays {
		clr := rayMissColor
		if r.Hit {
			clr = rayHitColor
		}
		rx, ry := m.point(r.Point)
		vector.StrokeLine(screen, px, py, rx, ry, 1, clr, true)
	}
	vector.DrawFilledCircle(screen, px, py, 3, playerColor, true)
}
