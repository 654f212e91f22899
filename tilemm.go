package tilemm

import (
	"fmt"
	"runtime"
	"strings"
)

// Dim3 represents 3D dimensions for grid configurations.
// This matches CUDA's dim3 structure for kernel launch parameters.
type Dim3 struct {
	X, Y, Z int
}

// Size returns the total number of elements
func (d Dim3) Size() int {
	return d.X * d.Y * d.Z
}

// KernelFunc is one kernel instance. It receives its linear program id in
// [0, grid.Size()). Instances must not depend on each other.
type KernelFunc func(pid int)

// Schedule selects how a launch hands program ids to workers.
type Schedule int

const (
	// ScheduleParallel splits the pid range into contiguous chunks, one per worker.
	ScheduleParallel Schedule = iota
	// ScheduleSequential runs every pid in order on the calling goroutine.
	ScheduleSequential
	// ScheduleShuffled runs a seeded random permutation of the pids across
	// workers.
	ScheduleShuffled
)

// String returns the schedule name as accepted by ParseSchedule.
func (s Schedule) String() string {
	switch s {
	case ScheduleParallel:
		return "parallel"
	case ScheduleSequential:
		return "sequential"
	case ScheduleShuffled:
		return "shuffled"
	default:
		return fmt.Sprintf("Schedule(%d)", int(s))
	}
}

// ParseSchedule parses a schedule name.
func ParseSchedule(name string) (Schedule, error) {
	switch strings.ToLower(name) {
	case "parallel", "":
		return ScheduleParallel, nil
	case "sequential", "seq":
		return ScheduleSequential, nil
	case "shuffled", "shuffle":
		return ScheduleShuffled, nil
	}
	return 0, NewInvalidArgError("ParseSchedule", fmt.Sprintf("unknown schedule %q", name))
}

// Context represents an execution context for kernel launches. It fixes the
// device, the number of workers and the schedule. A Context holds no
// mutable state and may be shared between goroutines.
type Context struct {
	device   *Device
	workers  int
	schedule Schedule
	seed     uint64
}

// Option configures a Context.
type Option func(*Context)

// WithWorkers bounds the number of goroutines used by a launch. Zero or a
// negative value selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(ctx *Context) {
		ctx.workers = n
	}
}

// WithSchedule selects the launch schedule.
func WithSchedule(s Schedule) Option {
	return func(ctx *Context) {
		ctx.schedule = s
	}
}

// WithShuffleSeed seeds the permutation used by ScheduleShuffled.
func WithShuffleSeed(seed uint64) Option {
	return func(ctx *Context) {
		ctx.seed = seed
	}
}

// NewContext creates an execution context on the CPU device.
//
// Example:
//
//	ctx, err := tilemm.NewContext(tilemm.WithWorkers(4))
//	if err != nil {
//		return err
//	}
//	c, err := tilemm.MatMulContext(ctx, a, b)
func NewContext(opts ...Option) (*Context, error) {
	ctx := &Context{
		device:   defaultDevice,
		schedule: ScheduleParallel,
		seed:     DefaultShuffleSeed,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	if ctx.workers <= 0 {
		ctx.workers = runtime.GOMAXPROCS(0)
	}
	switch ctx.schedule {
	case ScheduleParallel, ScheduleSequential, ScheduleShuffled:
	default:
		return nil, NewInvalidArgError("NewContext", fmt.Sprintf("invalid schedule %v", ctx.schedule))
	}
	return ctx, nil
}

var defaultContext = &Context{
	device:   defaultDevice,
	workers:  runtime.GOMAXPROCS(0),
	schedule: ScheduleParallel,
	seed:     DefaultShuffleSeed,
}

// Default returns the package-level context used by MatMul.
func Default() *Context {
	return defaultContext
}

// Device returns the device this context launches on.
func (ctx *Context) Device() *Device {
	if ctx.device == nil {
		return defaultDevice
	}
	return ctx.device
}

// Workers returns the maximum number of goroutines a launch uses. A zero
// Context uses runtime.GOMAXPROCS(0).
func (ctx *Context) Workers() int {
	if ctx.workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return ctx.workers
}

// Schedule returns the launch schedule.
func (ctx *Context) Schedule() Schedule {
	return ctx.schedule
}

// Launch executes fn once for every pid in [0, grid.Size()) and returns
// when all instances have finished.
//
// A panic inside an instance is recovered and reported as a LaunchFailure.
// Once an instance has failed, no further pids are started.
func Launch(grid Dim3, fn KernelFunc) error {
	return defaultContext.Launch(grid, fn)
}
