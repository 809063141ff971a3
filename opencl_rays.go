//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jgillich/go-opencl/cl"

	"raycaster/gamestate"
)

// openCLRaySolver casts a whole ray batch in one kernel launch. The grid is
// uploaded once; every frame only the ray angles travel to the device.
type openCLRaySolver struct {
	context     *cl.Context
	queue       *cl.CommandQueue
	program     *cl.Program
	kernel      *cl.Kernel
	occupiedBuf *cl.MemObject
	anglesBuf   *cl.MemObject
	outBuf      *cl.MemObject
	width       int
	height      int
	blockSize   float32
	rayCount    int
	angles      []float32
	out         []float32
	deviceName  string
}

// Each ray writes rayStride floats: impact x, impact y, distance and flags.
const (
	rayStride    = 4
	rayFlagHit   = 1
	rayFlagVert  = 2
	rayKernelSrc = `__kernel void cast_rays(
    const int width,
    const int height,
    const float block_size,
    const float origin_x,
    const float origin_y,
    const float max_dist,
    const int ray_count,
    __global const int* occupied,
    __global const float* angles,
    __global float* out)
{
    int i = get_global_id(0);
    if (i >= ray_count) {
        return;
    }
    float dx = cos(angles[i]);
    float dy = sin(angles[i]);
    int col = (int)floor(origin_x / block_size);
    int row = (int)floor(origin_y / block_size);
    if (col == width) {
        col = width - 1;
    }
    if (row == height) {
        row = height - 1;
    }

    float px = origin_x;
    float py = origin_y;
    float dist = 0.0f;
    int flags = 0;

    if (col < 0 || col >= width || row < 0 || row >= height || occupied[row * width + col]) {
        flags = 1;
    } else if (max_dist > 0.0f) {
        int step_x = 0;
        int step_y = 0;
        float t_max_x = INFINITY;
        float t_max_y = INFINITY;
        float t_delta_x = INFINITY;
        float t_delta_y = INFINITY;
        if (fabs(dx) > 1e-6f) {
            step_x = dx > 0.0f ? 1 : -1;
            float edge = (col + (dx > 0.0f ? 1 : 0)) * block_size;
            t_max_x = (edge - origin_x) / dx;
            t_delta_x = block_size / fabs(dx);
        }
        if (fabs(dy) > 1e-6f) {
            step_y = dy > 0.0f ? 1 : -1;
            float edge = (row + (dy > 0.0f ? 1 : 0)) * block_size;
            t_max_y = (edge - origin_y) / dy;
            t_delta_y = block_size / fabs(dy);
        }

        int limit = width + height + 4;
        dist = max_dist;
        px = origin_x + dx * max_dist;
        py = origin_y + dy * max_dist;
        for (int n = 0; n < limit; n++) {
            float t;
            int vertical = t_max_x < t_max_y;
            if (vertical) {
                t = t_max_x;
                col += step_x;
                t_max_x += t_delta_x;
            } else {
                t = t_max_y;
                row += step_y;
                t_max_y += t_delta_y;
            }
            if (t >= max_dist) {
                break;
            }
            if (col < 0 || col >= width || row < 0 || row >= height) {
                break;
            }
            if (occupied[row * width + col]) {
                dist = t;
                px = origin_x + dx * t;
                py = origin_y + dy * t;
                if (vertical) {
                    px = (col + (step_x > 0 ? 0 : 1)) * block_size;
                } else {
                    py = (row + (step_y > 0 ? 0 : 1)) * block_size;
                }
                flags = 1 | (vertical ? 2 : 0);
                break;
            }
        }
    }

    int base = i * 4;
    out[base] = px;
    out[base + 1] = py;
    out[base + 2] = dist;
    out[base + 3] = (float)flags;
}`
)

// pickDevice prefers the first GPU and falls back to the first CPU device.
func pickDevice(platforms []*cl.Platform) *cl.Device {
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, err := p.GetDevices(kind)
			if err != nil && err != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0]
			}
		}
	}
	return nil
}

func newOpenCLRaySolver(state *gamestate.Gamestate) (*openCLRaySolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms)
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	s := &openCLRaySolver{
		width:      state.Width(),
		height:     state.Height(),
		blockSize:  float32(state.BlockSize()),
		rayCount:   len(state.RayAngles()),
		deviceName: device.Name(),
	}
	s.angles = make([]float32, s.rayCount)
	s.out = make([]float32, s.rayCount*rayStride)

	if s.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if s.queue, err = s.context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = s.context.CreateProgramWithSource([]string{rayKernelSrc}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if s.kernel, err = s.program.CreateKernel("cast_rays"); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	cells := s.width * s.height
	int32Size := int(unsafe.Sizeof(int32(0)))
	float32Size := int(unsafe.Sizeof(float32(0)))
	if s.occupiedBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, cells*int32Size); err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating occupancy buffer: %w", err)
	}
	if s.anglesBuf, err = s.context.CreateEmptyBuffer(cl.MemReadOnly, s.rayCount*float32Size); err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating angle buffer: %w", err)
	}
	if s.outBuf, err = s.context.CreateEmptyBuffer(cl.MemWriteOnly, len(s.out)*float32Size); err != nil {
		s.Close()
		return nil, fmt.Errorf("allocating ray buffer: %w", err)
	}

	occupied := make([]int32, cells)
	grid := state.Grid()
	for row := 0; row < s.height; row++ {
		for col := 0; col < s.width; col++ {
			if grid.Occupied(col, row) {
				occupied[row*s.width+col] = 1
			}
		}
	}
	if _, err := s.queue.EnqueueWriteBuffer(s.occupiedBuf, true, 0, cells*int32Size, unsafe.Pointer(&occupied[0]), nil); err != nil {
		s.Close()
		return nil, fmt.Errorf("writing occupancy buffer: %w", err)
	}
	return s, nil
}

// Cast runs the ray batch for the current player pose. The kernel works in
// float32, so results agree with the CPU batch only to single precision.
func (s *openCLRaySolver) Cast(state *gamestate.Gamestate) ([]gamestate.Ray, error) {
	degrees := state.ViewAngles()
	if len(degrees) != s.rayCount {
		return nil, fmt.Errorf("unexpected ray count %d, want %d", len(degrees), s.rayCount)
	}
	for i, a := range degrees {
		s.angles[i] = float32(mgl64.DegToRad(a))
	}
	origin := state.PlayerPosition()

	if err := s.kernel.SetArgs(
		int32(s.width),
		int32(s.height),
		s.blockSize,
		float32(origin.X()),
		float32(origin.Y()),
		float32(state.ViewDistance()),
		int32(s.rayCount),
		s.occupiedBuf,
		s.anglesBuf,
		s.outBuf,
	); err != nil {
		return nil, fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.anglesBuf, false, 0, s.angles, nil); err != nil {
		return nil, fmt.Errorf("writing angle buffer: %w", err)
	}
	if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, []int{s.rayCount}, nil, nil); err != nil {
		return nil, fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.outBuf, true, 0, s.out, nil); err != nil {
		return nil, fmt.Errorf("reading ray buffer: %w", err)
	}

	rays := make([]gamestate.Ray, s.rayCount)
	for i := range rays {
		base := i * rayStride
		flags := int(s.out[base+3])
		rays[i] = gamestate.Ray{
			Point:    mgl64.Vec2{float64(s.out[base]), float64(s.out[base+1])},
			Hit:      flags&rayFlagHit != 0,
			Distance: float64(s.out[base+2]),
			Angle:    degrees[i],
			Vertical: flags&rayFlagVert != 0,
		}
	}
	return rays, nil
}

func (s *openCLRaySolver) Close() {
	if s.outBuf != nil {
		s.outBuf.Release()
		s.outBuf = nil
	}
	if s.anglesBuf != nil {
		s.anglesBuf.Release()
		s.anglesBuf = nil
	}
	if s.occupiedBuf != nil {
		s.occupiedBuf.Release()
		s.occupiedBuf = nil
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

func (s *openCLRaySolver) DeviceName() string {
	return s.deviceName
}
