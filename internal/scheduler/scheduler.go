// Package scheduler runs periodic background tasks for the engine, today
// just the daily cache warm.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once per interval until ctx is done. When immediate is
// true the first run happens right away instead of after one interval.
// Errors are logged under the task name and never stop the loop.
func Every(ctx context.Context, name string, interval time.Duration, immediate bool, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] error: %v", name, err)
		}
	}

	if immediate {
		run()
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
