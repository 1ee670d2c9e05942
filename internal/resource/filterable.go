package resource

import (
	"context"
	"maps"
	"sync"
)

// Filter is a query parameter value: either a literal or a function
// evaluated on every fetch.
type Filter struct {
	literal string
	compute func() string
}

// Literal returns a filter with a fixed value.
func Literal(value string) Filter {
	return Filter{literal: value}
}

// Computed returns a filter whose value is produced by fn at fetch time.
func Computed(fn func() string) Filter {
	return Filter{compute: fn}
}

// Value evaluates the filter.
func (f Filter) Value() string {
	if f.compute != nil {
		return f.compute()
	}
	return f.literal
}

// IsComputed reports whether the value is produced at fetch time.
func (f Filter) IsComputed() bool {
	return f.compute != nil
}

// FilterableCollection is a collection that puts its filters on the query
// string of every fetch. The name comes from servers commonly using those
// parameters to filter the response.
type FilterableCollection struct {
	*Collection

	mu      sync.RWMutex
	filters map[string]Filter
	stream  *Stream
}

// NewFilterableCollection returns a collection at url fetching with
// filters. filters may be nil.
func NewFilterableCollection(client Requester, url string, filters map[string]Filter) *FilterableCollection {
	f := &FilterableCollection{
		Collection: NewCollection(client, url),
		filters:    maps.Clone(filters),
	}
	f.stream = NewStream(f)
	return f
}

// Fetch merges the filters into a copy of opts.Data and delegates to the
// collection fetch. Filters win over caller data for the same key. The
// caller's opts is left untouched.
func (f *FilterableCollection) Fetch(ctx context.Context, opts Options) error {
	return f.Collection.Fetch(ctx, f.Apply(opts))
}

// Apply returns opts with the evaluated filters merged into a copy of
// opts.Data.
func (f *FilterableCollection) Apply(opts Options) Options {
	filters := f.Filters()
	if len(filters) == 0 {
		return opts
	}
	out := opts.clone()
	if out.Data == nil {
		out.Data = make(map[string]string, len(filters))
	}
	for k, filter := range filters {
		out.Data[k] = filter.Value()
	}
	return out
}

// Filters returns a copy of the configured filters.
func (f *FilterableCollection) Filters() map[string]Filter {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.filters)
}

// SetFilter adds or replaces the filter for key.
func (f *FilterableCollection) SetFilter(key string, filter Filter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.filters == nil {
		f.filters = make(map[string]Filter)
	}
	f.filters[key] = filter
}

// RemoveFilter drops the filter for key.
func (f *FilterableCollection) RemoveFilter(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.filters, key)
}

// Stream fetches with filters applied now (unless suppressed) and every
// opts.Interval until Unstream.
func (f *FilterableCollection) Stream(ctx context.Context, opts StreamOptions) {
	f.stream.Start(ctx, opts)
}

// Unstream stops streaming.
func (f *FilterableCollection) Unstream() {
	f.stream.Stop()
}

// IsStreaming reports whether a stream is active.
func (f *FilterableCollection) IsStreaming() bool {
	return f.stream.Active()
}
