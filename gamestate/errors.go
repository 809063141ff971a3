package gamestate

import "errors"

var (
	// ErrEmptyGrid is returned when the level matrix has no rows or no columns.
	ErrEmptyGrid = errors.New("grid has no cells")
	// ErrJaggedGrid is returned when a row of the level matrix differs in length from the first row.
	ErrJaggedGrid = errors.New("grid rows differ in length")
	// ErrBlockSize is returned for a non-positive block size.
	ErrBlockSize = errors.New("block size must be positive")
	// ErrRayCount is returned when fewer than one ray is requested.
	ErrRayCount = errors.New("ray count must be at least 1")
	// ErrInvalidStart is returned when the start position is outside the grid or inside a wall.
	ErrInvalidStart = errors.New("start position is not a free cell")
)
