package utils

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrStopWork ends SplitWork early without reporting a failure.
var ErrStopWork = errors.New("stop work")

// SplitWork runs do for every index in [0, workSize) across routines goroutines.
// init is called once per routine before any work starts. The context handed to do is cancelled
// as soon as any call returns an error, or ErrStopWork to end all routines without failing.
func SplitWork(ctx context.Context, routines int, workSize uint64, do func(ctx context.Context, workIndex uint64, routineIndex int) error, init func(routines, routineIndex int) error) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU()-routines, 4)
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	var counter atomic.Uint64

	if init != nil {
		for routineIndex := 0; routineIndex < routines; routineIndex++ {
			if err := init(routines, routineIndex); err != nil {
				return err
			}
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)

	for routineIndex := 0; routineIndex < routines; routineIndex++ {
		innerRoutineIndex := routineIndex
		eg.Go(func() error {
			var err error

			for {
				if egCtx.Err() != nil {
					return nil
				}

				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err = do(egCtx, workIndex-1, innerRoutineIndex); err != nil {
					return err
				}
			}
		})
	}

	if err := eg.Wait(); err != nil && !errors.Is(err, ErrStopWork) {
		return err
	}
	return ctx.Err()
}
