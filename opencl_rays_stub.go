//go:build !opencl

package main

import (
	"errors"

	"raycaster/gamestate"
)

type openCLRaySolver struct{}

func newOpenCLRaySolver(*gamestate.Gamestate) (*openCLRaySolver, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *openCLRaySolver) Cast(*gamestate.Gamestate) ([]gamestate.Ray, error) {
	return nil, errors.New("OpenCL solver unavailable")
}

func (s *openCLRaySolver) Close() {}

func (s *openCLRaySolver) DeviceName() string { return "" }
