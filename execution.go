package tilemm

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// Launch executes fn for each pid of grid on this context. See the
// package-level Launch.
func (ctx *Context) Launch(grid Dim3, fn KernelFunc) error {
	if grid.X < 0 || grid.Y < 0 || grid.Z < 0 {
		return NewInvalidArgError("Launch", fmt.Sprintf("negative grid %+v", grid))
	}
	total := grid.Size()
	if total == 0 {
		return nil
	}
	switch ctx.schedule {
	case ScheduleSequential:
		for pid := 0; pid < total; pid++ {
			if err := runInstance(fn, pid); err != nil {
				return err
			}
		}
		return nil
	case ScheduleShuffled:
		order := rand.New(rand.NewPCG(ctx.seed, uint64(total))).Perm(total)
		return ctx.launchParallel(total, func(pos int) int { return order[pos] }, fn)
	default:
		return ctx.launchParallel(total, func(pos int) int { return pos }, fn)
	}
}

// launchParallel gives each worker a contiguous range of positions and
// joins once. pidAt maps a position to the program id to run.
func (ctx *Context) launchParallel(total int, pidAt func(int) int, fn KernelFunc) error {
	numWorkers := min(ctx.Workers(), total)
	perWorker := cdiv(total, numWorkers)

	g, gctx := errgroup.WithContext(context.Background())
	for w := 0; w < numWorkers; w++ {
		start := w * perWorker
		end := min(start+perWorker, total)
		if start >= end {
			break
		}

		g.Go(func() error {
			for pos := start; pos < end; pos++ {
				// Another worker failed; the launch is already lost.
				if gctx.Err() != nil {
					return nil
				}
				if err := runInstance(fn, pidAt(pos)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// runInstance runs one kernel instance, converting a panic into a
// LaunchFailure.
func runInstance(fn KernelFunc, pid int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewLaunchFailureError("Launch",
				fmt.Sprintf("kernel instance %d failed", pid), fmt.Errorf("%v", r))
		}
	}()
	fn(pid)
	return nil
}
