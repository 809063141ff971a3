// Package profiling records CPU profiles for profile-guided builds and serves
// the live runtime dashboard.
package profiling

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// CPUProfile is an in-progress CPU profile written to a file.
type CPUProfile struct {
	path string
	f    *os.File

	once sync.Once
	err  error
}

// StartCPU begins writing a CPU profile to path. Only one profile can be
// recorded at a time; a failed start leaves no file behind.
func StartCPU(path string) (*CPUProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	return &CPUProfile{path: path, f: f}, nil
}

// Path returns the file the profile is written to.
func (p *CPUProfile) Path() string { return p.path }

// Stop ends the recording and closes the file. Every call returns the result
// of the first one.
func (p *CPUProfile) Stop() error {
	p.once.Do(func() {
		pprof.StopCPUProfile()
		p.err = p.f.Close()
	})
	return p.err
}

// ServeStats serves the runtime dashboard on addr in the background.
func ServeStats(addr string) {
	// set configurations before calling `statsview.New()` method
	viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()
}
