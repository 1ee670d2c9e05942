package resource

import (
	"context"
	"log"
	"time"

	"github.com/likipe/zonekit/internal/poll"
)

// DefaultStreamInterval is used when StreamOptions.Interval is not set.
const DefaultStreamInterval = poll.DefaultInterval

// Fetcher is anything that can refresh itself from the server.
type Fetcher interface {
	Fetch(ctx context.Context, opts Options) error
}

// Pollable is implemented by models and collections that can stream.
type Pollable interface {
	Stream(ctx context.Context, opts StreamOptions)
	Unstream()
	IsStreaming() bool
}

var (
	_ Pollable = (*Model)(nil)
	_ Pollable = (*Collection)(nil)
	_ Pollable = (*FilterableCollection)(nil)
	_ Pollable = (*SingularModel)(nil)
)

// StreamOptions configure a stream. Options are passed to every fetch.
type StreamOptions struct {
	Options
	Interval       time.Duration
	NoInitialFetch bool
}

// Stream periodically fetches a target. A model or collection owns one
// stream bound to its own Fetch.
type Stream struct {
	target Fetcher
	ctl    poll.Controller
}

// NewStream returns an idle stream for target.
func NewStream(target Fetcher) *Stream {
	return &Stream{target: target}
}

// Start cancels any running stream and fetches every opts.Interval,
// beginning immediately unless opts.NoInitialFetch is set. Fetches are not
// serialised: a slow response may land after a newer one.
func (s *Stream) Start(ctx context.Context, opts StreamOptions) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	fetchOpts := opts.Options
	s.ctl.Start(ctx, interval, !opts.NoInitialFetch, func(ctx context.Context) {
		if err := s.target.Fetch(ctx, fetchOpts); err != nil && fetchOpts.Error == nil {
			log.Printf("stream fetch failed: %v", err)
		}
	})
}

// Stop cancels future fetches. A fetch already in flight completes.
func (s *Stream) Stop() {
	s.ctl.Stop()
}

// Active reports whether the stream holds a running timer.
func (s *Stream) Active() bool {
	return s.ctl.Active()
}
