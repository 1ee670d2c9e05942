// Package poll owns repeating timers. A Controller runs at most one ticker
// loop at a time and belongs to exactly one model, collection or view.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is used when Start receives a non-positive interval.
const DefaultInterval = time.Second

// Func is invoked on every tick with the context given to Start.
type Func func(ctx context.Context)

// Controller runs a single repeating callback. The zero value is idle and
// ready to use.
type Controller struct {
	mu  sync.Mutex
	run *run
}

type run struct {
	cancel     context.CancelFunc
	done       chan struct{}
	inCallback atomic.Bool
}

// Start cancels any running loop and launches a new one that calls fn every
// interval. When immediate is set fn also runs once right away. fn receives
// ctx itself, so stopping the controller never aborts a call in progress;
// cancelling ctx ends the loop.
func (c *Controller) Start(ctx context.Context, interval time.Duration, immediate bool, fn Func) {
	c.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start(ctx, interval, immediate, fn)
}

// StartIfIdle behaves like Start but leaves an active loop untouched. It
// reports whether a new loop was launched.
func (c *Controller) StartIfIdle(ctx context.Context, interval time.Duration, immediate bool, fn Func) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run != nil {
		return false
	}
	c.start(ctx, interval, immediate, fn)
	return true
}

// Stop cancels the active loop. Once Stop returns no new invocation of the
// callback begins. Stop is idempotent and may be called from inside the
// callback.
func (c *Controller) Stop() {
	c.mu.Lock()
	r := c.run
	c.run = nil
	c.mu.Unlock()

	if r == nil {
		return
	}
	r.cancel()
	// A callback already past its cancellation check is in flight and is
	// allowed to finish; otherwise wait for the loop to exit.
	if !r.inCallback.Load() {
		<-r.done
	}
}

// Active reports whether a loop is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run != nil
}

func (c *Controller) start(ctx context.Context, interval time.Duration, immediate bool, fn Func) {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	loopCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	c.run = r

	go func() {
		defer close(r.done)
		defer c.clear(r)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if immediate && !r.invoke(loopCtx, ctx, fn) {
			return
		}
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				if !r.invoke(loopCtx, ctx, fn) {
					return
				}
			}
		}
	}()
}

// invoke runs fn unless the loop was cancelled. The flag is raised before
// the check so Stop either observes the callback or the callback observes
// the cancellation.
func (r *run) invoke(loopCtx, callCtx context.Context, fn Func) bool {
	r.inCallback.Store(true)
	defer r.inCallback.Store(false)
	if loopCtx.Err() != nil {
		return false
	}
	fn(callCtx)
	return true
}

// clear drops r when the loop ends on its own, e.g. when the parent
// context is cancelled.
func (c *Controller) clear(r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == r {
		c.run = nil
	}
}
