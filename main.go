package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"raycaster/profiling"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	if *debugFlag {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// run sets up and runs the game. Every deferred cleanup has finished by the
// time it returns, so main may exit afterwards.
func run(log *logrus.Logger) (err error) {
	if *sentryDSNFlag != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: *sentryDSNFlag}); err != nil {
			log.Errorf("Sentry initialization failed: %v", err)
		} else {
			defer sentry.Flush(sentryFlushTimeout)
			defer func() {
				if err != nil {
					sentry.CaptureException(err)
				}
			}()
		}
	}
	defer reportPanic()

	if *statsviewFlag != "" {
		profiling.ServeStats(*statsviewFlag)
		log.Infof("Runtime stats served on http://%s/debug/statsview", *statsviewFlag)
	}

	lvl, err := loadEnvironment(log)
	if err != nil {
		return fmt.Errorf("level setup failed: %w", err)
	}
	g, err := newGame(lvl, log)
	if err != nil {
		return fmt.Errorf("game setup failed: %w", err)
	}
	defer g.Close()

	if *recordDefaultPGO {
		prof, err := profiling.StartCPU(defaultPGOPath)
		if err != nil {
			return fmt.Errorf("recording %s failed: %w", defaultPGOPath, err)
		}
		var stopOnce sync.Once
		stop := func() {
			stopOnce.Do(func() {
				if err := prof.Stop(); err != nil {
					log.Errorf("Writing %s failed: %v", prof.Path(), err)
					return
				}
				log.Infof("Wrote %s", prof.Path())
			})
		}
		defer stop()
		log.Infof("Recording %s for %s", prof.Path(), pgoRecordDuration)
		g.enableAutoWalk(pgoRecordDuration, stop)
	}

	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("Raycaster")
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// reportPanic forwards a panic to Sentry before letting it continue.
func reportPanic() {
	if err := recover(); err != nil {
		hub := sentry.CurrentHub().Clone()
		hub.Recover(err)
		hub.Flush(sentryFlushTimeout)
		panic(err)
	}
}
