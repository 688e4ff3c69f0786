package viewstate

import (
	"context"
	"sync"
	"time"
)

// rotation calls tick every interval until stopped.
type rotation struct {
	interval time.Duration
	tick     func()

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

func newRotation(interval time.Duration, tick func()) *rotation {
	return &rotation{interval: interval, tick: tick}
}

// Start begins ticking. Starting a running rotation is a no-op.
func (r *rotation) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true

	r.wg.Add(1)
	go r.run(ctx)
}

// Stop cancels the ticker and waits for the loop to exit. After Stop
// returns tick is not called again.
func (r *rotation) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
}

// IsRunning returns whether the ticker is active.
func (r *rotation) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *rotation) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a tick racing with cancellation must not fire
			if ctx.Err() != nil {
				return
			}
			r.tick()
		}
	}
}
