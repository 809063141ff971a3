package main

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"raycaster/level"
)

// loadEnvironment returns the level named by -level, or a generated one, with
// the view flags applied on top.
func loadEnvironment(log *logrus.Logger) (*level.Level, error) {
	var lvl *level.Level
	if *levelFlag != "" {
		l, err := level.Load(*levelFlag)
		if err != nil {
			return nil, err
		}
		log.WithField("path", *levelFlag).Info("loaded level")
		lvl = l
	} else {
		seed := *seedFlag
		if seed == 0 {
			seed = time.Now().UnixNano() + 1
		}
		lvl = level.Generate(rand.New(rand.NewSource(seed)), level.DefaultGenerateConfig())
		log.WithField("seed", seed).Info("generated level")
	}

	if *fovFlag > 0 {
		lvl.FieldOfView = *fovFlag
	}
	if *rayCountFlag > 0 {
		lvl.RayCount = *rayCountFlag
	}
	if *viewDistanceFlag > 0 {
		lvl.ViewDistance = *viewDistanceFlag
	}

	if *writeLevelFlag != "" {
		if err := lvl.Save(*writeLevelFlag); err != nil {
			return nil, err
		}
		log.WithField("path", *writeLevelFlag).Info("wrote level")
	}
	return lvl, nil
}
