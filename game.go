package main

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"raycaster/gamestate"
	"raycaster/level"
)

// Game drives a Gamestate from keyboard input and keeps the latest ray batch
// for rendering.
type Game struct {
	state *gamestate.Gamestate
	level *level.Level
	log   *logrus.Logger

	walls   []uint32
	minimap minimap

	rays            []gamestate.Ray
	lastUpdate      time.Time
	lastRayDuration time.Duration
	lastMove        gamestate.MoveResult

	autoWalk           bool
	autoWalkDeadline   time.Time
	autoWalkDone       func()
	autoWalkRand       *rand.Rand
	autoWalkTurn       int
	autoWalkTurnFrames int

	gpuSolver *openCLRaySolver
}

// newGame builds the Gamestate for lvl and casts the first ray batch.
func newGame(lvl *level.Level, log *logrus.Logger) (*Game, error) {
	opts := append(lvl.Options(),
		gamestate.WithWorkers(*workersFlag),
		gamestate.WithLogger(log),
	)
	state, err := gamestate.New(lvl.Matrix, lvl.StartX, lvl.StartY, lvl.BlockSize, lvl.RayCount, opts...)
	if err != nil {
		return nil, err
	}
	g := &Game{
		state:        state,
		level:        lvl,
		log:          log,
		walls:        state.Walls(),
		minimap:      newMinimap(state),
		lastUpdate:   time.Now(),
		autoWalkRand: rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
	}
	if *gpuRaysFlag {
		if solver, err := newOpenCLRaySolver(state); err != nil {
			log.Warnf("OpenCL ray solver unavailable, casting on the CPU: %v", err)
		} else {
			log.Infof("OpenCL ray solver enabled (device: %s)", solver.DeviceName())
			g.gpuSolver = solver
		}
	}
	g.rays = g.castRays()
	return g, nil
}

// Update applies one frame of input and recasts the rays.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	dt := min(now.Sub(g.lastUpdate), maxFrameDelta)
	g.lastUpdate = now

	if g.autoWalk && now.After(g.autoWalkDeadline) {
		g.autoWalk = false
		if g.autoWalkDone != nil {
			g.autoWalkDone()
			return ebiten.Termination
		}
	}

	g.apply(g.input(), dt)

	start := time.Now()
	g.rays = g.castRays()
	g.lastRayDuration = time.Since(start)
	return nil
}

// castRays runs the batch on the GPU when available and falls back to the
// CPU for good after the first GPU failure.
func (g *Game) castRays() []gamestate.Ray {
	if g.gpuSolver != nil {
		rays, err := g.gpuSolver.Cast(g.state)
		if err == nil {
			return rays
		}
		g.log.Errorf("OpenCL ray batch failed, falling back to the CPU: %v", err)
		g.gpuSolver.Close()
		g.gpuSolver = nil
	}
	return g.state.CastRays()
}

// Close releases GPU resources.
func (g *Game) Close() {
	if g.gpuSolver != nil {
		g.gpuSolver.Close()
		g.gpuSolver = nil
	}
}
