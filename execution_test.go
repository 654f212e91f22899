package tilemm

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSchedules = []Schedule{ScheduleParallel, ScheduleSequential, ScheduleShuffled}

func TestLaunchRunsEveryInstanceOnce(t *testing.T) {
	for _, sched := range allSchedules {
		for _, workers := range []int{1, 2, 7, 64} {
			ctx, err := NewContext(WithSchedule(sched), WithWorkers(workers))
			require.NoError(t, err)

			for _, total := range []int{1, 5, 63, 1000} {
				counts := make([]atomic.Int32, total)
				err := ctx.Launch(Dim3{X: total, Y: 1, Z: 1}, func(pid int) {
					counts[pid].Add(1)
				})
				require.NoError(t, err)
				for pid := range counts {
					require.Equal(t, int32(1), counts[pid].Load(),
						"%s/%d workers/%d instances: pid %d", sched, workers, total, pid)
				}
			}
		}
	}
}

func TestLaunchMultiDimensionalGrid(t *testing.T) {
	var calls atomic.Int32
	err := Launch(Dim3{X: 4, Y: 3, Z: 2}, func(pid int) {
		calls.Add(1)
	})
	require.NoError(t, err)
	assert.Equal(t, int32(24), calls.Load())
}

func TestLaunchEmptyGrid(t *testing.T) {
	called := false
	err := Launch(Dim3{X: 0, Y: 1, Z: 1}, func(pid int) {
		called = true
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestLaunchNegativeGrid(t *testing.T) {
	err := Launch(Dim3{X: -1, Y: -1, Z: 1}, func(int) {})
	assert.True(t, IsInvalidArgError(err), "got %v", err)
}

func TestLaunchRecoversPanics(t *testing.T) {
	for _, sched := range allSchedules {
		t.Run(sched.String(), func(t *testing.T) {
			ctx, err := NewContext(WithSchedule(sched), WithWorkers(3))
			require.NoError(t, err)

			err = ctx.Launch(Dim3{X: 50, Y: 1, Z: 1}, func(pid int) {
				if pid == 17 {
					panic(errors.New("device lost"))
				}
			})
			require.Error(t, err)
			assert.True(t, IsLaunchFailure(err))

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "Launch", e.Op)
			assert.Equal(t, "kernel instance 17 failed", e.Message)
			assert.EqualError(t, e.Err, "device lost")
		})
	}
}

func TestLaunchSequentialStopsAtFirstFailure(t *testing.T) {
	ctx, err := NewContext(WithSchedule(ScheduleSequential))
	require.NoError(t, err)

	var ran []int
	err = ctx.Launch(Dim3{X: 10, Y: 1, Z: 1}, func(pid int) {
		ran = append(ran, pid)
		if pid == 3 {
			panic("boom")
		}
	})
	assert.True(t, IsLaunchFailure(err))
	assert.Equal(t, []int{0, 1, 2, 3}, ran)
}

func TestShuffledScheduleIsDeterministic(t *testing.T) {
	order := func(seed uint64) []int {
		ctx, err := NewContext(WithSchedule(ScheduleShuffled), WithShuffleSeed(seed), WithWorkers(1))
		require.NoError(t, err)
		var pids []int
		require.NoError(t, ctx.Launch(Dim3{X: 32, Y: 1, Z: 1}, func(pid int) {
			pids = append(pids, pid)
		}))
		return pids
	}

	first := order(7)
	assert.Equal(t, first, order(7))
	assert.NotEqual(t, first, order(8))
	assert.ElementsMatch(t, first, order(8))
}

func TestNewContext(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	assert.Equal(t, runtime.GOMAXPROCS(0), ctx.Workers())
	assert.Equal(t, ScheduleParallel, ctx.Schedule())
	assert.Same(t, GetDevice(), ctx.Device())

	ctx, err = NewContext(WithWorkers(3), WithSchedule(ScheduleShuffled))
	require.NoError(t, err)
	assert.Equal(t, 3, ctx.Workers())
	assert.Equal(t, ScheduleShuffled, ctx.Schedule())

	_, err = NewContext(WithSchedule(Schedule(42)))
	assert.True(t, IsInvalidArgError(err))

	assert.Equal(t, ScheduleParallel, Default().Schedule())
}

func TestZeroContextLaunch(t *testing.T) {
	var ctx Context
	assert.Equal(t, runtime.GOMAXPROCS(0), ctx.Workers())
	assert.Same(t, GetDevice(), ctx.Device())

	var count atomic.Int64
	require.NoError(t, ctx.Launch(Dim3{X: 37, Y: 1, Z: 1}, func(int) {
		count.Add(1)
	}))
	assert.Equal(t, int64(37), count.Load())
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		in   string
		want Schedule
	}{
		{"parallel", ScheduleParallel},
		{"", ScheduleParallel},
		{"Sequential", ScheduleSequential},
		{"seq", ScheduleSequential},
		{"shuffled", ScheduleShuffled},
	}
	for _, tt := range tests {
		got, err := ParseSchedule(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSchedule("round-robin")
	assert.True(t, IsInvalidArgError(err))
	assert.Equal(t, "Schedule(9)", Schedule(9).String())
}

func TestGetDevice(t *testing.T) {
	d := GetDevice()
	assert.Equal(t, "CPU", d.Name)
	assert.Equal(t, runtime.GOARCH, d.Arch)
	assert.Equal(t, runtime.NumCPU(), d.NumCores)
	assert.Contains(t, d.String(), "cores")

	if len(d.Features.List()) == 0 {
		assert.Equal(t, "No SIMD extensions detected", d.Features.String())
	} else {
		assert.Contains(t, d.Features.String(), "CPU features: ")
	}
}
