package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"raycaster/gamestate"
)

// intent is the movement requested for one frame. Each field is -1, 0 or 1.
type intent struct {
	turn int
	move int
}

// enableAutoWalk schedules scripted movement for a limited duration and calls
// done when it ends.
func (g *Game) enableAutoWalk(duration time.Duration, done func()) {
	g.autoWalk = true
	g.autoWalkDeadline = time.Now().Add(duration)
	g.autoWalkDone = done
	g.autoWalkTurnFrames = 0
}

// input selects either manual or scripted movement.
func (g *Game) input() intent {
	if g.autoWalk {
		return g.autoWalkIntent()
	}
	return manualIntent()
}

// manualIntent reads W/S or the up/down arrows for walking and A/D or the
// left/right arrows for turning.
func manualIntent() intent {
	var in intent
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.move++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.move--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.turn++
	}
	return in
}

// apply forwards an intent to the Gamestate.
func (g *Game) apply(in intent, dt time.Duration) {
	switch {
	case in.turn < 0:
		g.state.Rotate(gamestate.TurnLeft, dt)
	case in.turn > 0:
		g.state.Rotate(gamestate.TurnRight, dt)
	}
	switch {
	case in.move > 0:
		g.lastMove = g.state.Move(gamestate.Forward, dt)
	case in.move < 0:
		g.lastMove = g.state.Move(gamestate.Backward, dt)
	}
}

// autoWalkIntent walks forward and, whenever the last step collided, turns
// in a random direction for a random number of frames.
func (g *Game) autoWalkIntent() intent {
	if g.autoWalkTurnFrames > 0 {
		g.autoWalkTurnFrames--
		return intent{turn: g.autoWalkTurn}
	}
	if g.lastMove.Outcome != gamestate.MoveFree {
		g.lastMove.Outcome = gamestate.MoveFree
		g.autoWalkTurn = 1
		if g.autoWalkRand.Intn(2) == 0 {
			g.autoWalkTurn = -1
		}
		g.autoWalkTurnFrames = autoWalkMinTurnFrames + g.autoWalkRand.Intn(autoWalkMaxTurnFrames-autoWalkMinTurnFrames+1)
		return intent{turn: g.autoWalkTurn}
	}
	return intent{move: 1}
}
