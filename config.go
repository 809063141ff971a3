package main

import (
	"image/color"
	"time"
)

// Window, timing and rendering constants for the raycaster front-end.
const (
	screenWidth, screenHeight = 640, 400
	windowScale               = 2
	defaultTPS                = 60

	// maxFrameDelta caps the simulated time of one Update so a stalled window
	// does not teleport the player across the map.
	maxFrameDelta = 100 * time.Millisecond

	minimapSize   = 160
	minimapMargin = 8

	// wallShadeDistance is the distance at which walls fade to their darkest.
	wallShadeDistance = 900.0
	minWallShade      = 0.25
	verticalFaceShade = 0.7

	autoWalkMinTurnFrames = 10
	autoWalkMaxTurnFrames = 40
	pgoRecordDuration     = 15 * time.Second
	defaultPGOPath        = "default.pgo"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	ceilingColor    = color.RGBA{R: 40, G: 44, B: 60, A: 255}
	floorColor      = color.RGBA{R: 70, G: 62, B: 54, A: 255}
	wallColor       = color.RGBA{R: 170, G: 160, B: 140, A: 255}

	minimapBackground = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	minimapWallColor  = color.RGBA{R: 30, G: 40, B: 80, A: 255}
	playerColor       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	rayHitColor       = color.RGBA{R: 0, G: 255, B: 200, A: 120}
	rayMissColor      = color.RGBA{R: 0, G: 200, B: 255, A: 60}
)
