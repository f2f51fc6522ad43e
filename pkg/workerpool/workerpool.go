// Package workerpool runs functions over slices with bounded concurrency.
package workerpool

import (
	"context"
	"sync"
)

// Process runs fn over items with at most workerCount calls in flight. The
// first error cancels the context passed to the remaining calls and is
// returned; items not yet started are skipped. A canceled parent context is
// reported as its error.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) error,
) error {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	tasks := make(chan int)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				if ctx.Err() != nil {
					continue
				}
				if err := fn(ctx, items[idx]); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for idx := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- idx:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
