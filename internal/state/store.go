package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// Health is the sync record of one streamed source.
type Health struct {
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int
	Syncs               int
}

// IsOffline returns true when the source has failed several times in a row.
func (h Health) IsOffline() bool {
	return h.ConsecutiveFailures >= 2
}

// Snapshot is a copy of every source's health.
type Snapshot struct {
	Sources map[string]Health
}

// Names returns the source names in sorted order.
func (s Snapshot) Names() []string {
	return slices.Sorted(maps.Keys(s.Sources))
}

// Offline returns the names of offline sources in sorted order.
func (s Snapshot) Offline() []string {
	var out []string
	for _, name := range s.Names() {
		if s.Sources[name].IsOffline() {
			out = append(out, name)
		}
	}
	return out
}

// LastSuccess returns the most recent successful sync across sources.
func (s Snapshot) LastSuccess() time.Time {
	var latest time.Time
	for _, h := range s.Sources {
		if h.LastSuccess.After(latest) {
			latest = h.LastSuccess
		}
	}
	return latest
}

// Store records sync outcomes reported by stream callbacks, which run on
// poll goroutines, for the UI to read.
type Store struct {
	mu      sync.RWMutex
	sources map[string]Health
	now     func() time.Time
}

// Record notes the outcome of one sync of source. A nil err resets the
// failure count; otherwise the previous success time is kept.
func (s *Store) Record(source string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sources == nil {
		s.sources = make(map[string]Health)
	}
	now := time.Now()
	if s.now != nil {
		now = s.now()
	}

	h := s.sources[source]
	h.LastAttempt = now
	if err != nil {
		h.LastError = err
		h.ConsecutiveFailures++
	} else {
		h.LastError = nil
		h.LastSuccess = now
		h.ConsecutiveFailures = 0
		h.Syncs++
	}
	s.sources[source] = h
}

// Callbacks returns success and error hooks that record outcomes for
// source, shaped for resource.Options.
func (s *Store) Callbacks(source string) (func(), func(error)) {
	return func() { s.Record(source, nil) },
		func(err error) { s.Record(source, err) }
}

// Health returns the record for source.
func (s *Store) Health(source string) Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHealth(s.sources[source])
}

// Snapshot returns a copy of every record.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Sources: make(map[string]Health, len(s.sources))}
	for name, h := range s.sources {
		snap.Sources[name] = cloneHealth(h)
	}
	return snap
}

func cloneHealth(h Health) Health {
	if h.LastError != nil {
		h.LastError = fmt.Errorf("%w", h.LastError)
	}
	return h
}
