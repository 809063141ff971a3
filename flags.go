package main

import (
	"flag"
	"runtime"
)

// Command-line flags that control level selection, rendering and runtime
// behavior.
var (
	// levelFlag names a TOML level file; without it a level is generated.
	levelFlag = flag.String("level", "", "path to a TOML level file (generated when empty)")

	// seedFlag fixes the procedural level; zero picks a time-based seed.
	seedFlag = flag.Int64("seed", 0, "seed for the generated level (0 = time based)")

	writeLevelFlag = flag.String("write-level", "", "write the active level to this TOML file and continue")

	// fovFlag and rayCountFlag override the level's view settings when set.
	fovFlag          = flag.Float64("fov", 0, "field of view in degrees (0 = level setting)")
	rayCountFlag     = flag.Int("ray-count", 0, "rays per frame (0 = level setting)")
	viewDistanceFlag = flag.Float64("view-distance", 0, "maximum ray length in world units (0 = level setting)")

	// workersFlag spreads each ray batch over several goroutines.
	workersFlag = flag.Int("workers", runtime.GOMAXPROCS(0), "goroutines per ray batch")

	// gpuRaysFlag casts the ray batch with OpenCL; needs a build with -tags opencl.
	gpuRaysFlag = flag.Bool("gpu-rays", false, "cast rays on the GPU via OpenCL (build with -tags opencl)")

	showMinimapFlag = flag.Bool("minimap", true, "draw the minimap with the ray fan")

	// debugFlag enables the overlay and debug logging.
	debugFlag = flag.Bool("debug", false, "show FPS and ray timing overlay and log at debug level")

	// recordDefaultPGO triggers a scripted walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "walk randomly for 15s while capturing default.pgo")

	statsviewFlag = flag.String("statsview", "", "serve the runtime stats dashboard on this address (e.g. localhost:18066)")

	sentryDSNFlag = flag.String("sentry-dsn", "", "report crashes to this Sentry DSN")
)
