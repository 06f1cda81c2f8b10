package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor sleeps for the requested duration, returning early with the
// context's error if it is canceled first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
