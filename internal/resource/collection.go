package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/likipe/zonekit/internal/events"
)

// ParseFunc turns a collection response body into model attributes.
type ParseFunc func(raw json.RawMessage) ([]Attributes, error)

// Collection is an ordered set of models sharing a REST endpoint.
type Collection struct {
	client Requester
	url    string

	// Parse decodes fetch responses. Defaults to ParseList.
	Parse ParseFunc

	mu     sync.RWMutex
	models []*Model
	subs   map[*Model][]events.Subscription

	events events.Emitter[CollectionEvent, *Model]
	stream *Stream
}

// NewCollection returns an empty collection backed by url.
func NewCollection(client Requester, url string) *Collection {
	c := &Collection{
		client: client,
		url:    strings.TrimRight(url, "/"),
		Parse:  ParseList,
		subs:   make(map[*Model][]events.Subscription),
	}
	c.stream = NewStream(c)
	return c
}

// URL returns the collection endpoint.
func (c *Collection) URL() string {
	return c.url
}

// Fetch loads the collection. By default the current models are replaced
// (reset); with opts.Add the response is merged in with add events.
func (c *Collection) Fetch(ctx context.Context, opts Options) error {
	var raw json.RawMessage
	if err := c.client.Do(ctx, http.MethodGet, c.url, opts.query(), nil, &raw); err != nil {
		return c.fail(fmt.Errorf("fetch %s: %w", c.url, err), opts)
	}
	parse := c.Parse
	if parse == nil {
		parse = ParseList
	}
	list, err := parse(raw)
	if err != nil {
		return c.fail(fmt.Errorf("fetch %s: %w", c.url, err), opts)
	}

	if opts.Add {
		c.Add(list...)
	} else {
		c.Reset(list)
	}
	c.events.Trigger(CollectionSync, nil)
	return opts.finish(nil)
}

// Add appends a model per attribute set. Attributes whose id matches an
// existing model are merged into it instead. It returns the added or
// merged models.
func (c *Collection) Add(list ...Attributes) []*Model {
	out := make([]*Model, 0, len(list))
	for _, attrs := range list {
		if existing := c.Get(FormatID(attrs[IDAttribute])); existing != nil && !existing.IsNew() {
			existing.Set(attrs)
			out = append(out, existing)
			continue
		}
		m := c.newModel(attrs)
		c.mu.Lock()
		c.models = append(c.models, m)
		c.mu.Unlock()
		c.watch(m)
		c.events.Trigger(CollectionAdd, m)
		out = append(out, m)
	}
	return out
}

// Remove drops the model with the given id and emits remove. It returns
// the removed model or nil.
func (c *Collection) Remove(id string) *Model {
	m := c.Get(id)
	if m == nil {
		return nil
	}
	if !c.detach(m) {
		return nil
	}
	c.events.Trigger(CollectionRemove, m)
	return m
}

// Reset replaces every model and emits a single reset event.
func (c *Collection) Reset(list []Attributes) {
	models := make([]*Model, 0, len(list))
	for _, attrs := range list {
		models = append(models, c.newModel(attrs))
	}

	c.mu.Lock()
	old := c.subs
	c.subs = make(map[*Model][]events.Subscription, len(models))
	c.models = models
	c.mu.Unlock()

	for _, subs := range old {
		for _, sub := range subs {
			sub.Cancel()
		}
	}
	for _, m := range models {
		c.watch(m)
	}
	c.events.Trigger(CollectionReset, nil)
}

// Get returns the model with the given id, or nil.
func (c *Collection) Get(id string) *Model {
	if id == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.models {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// At returns the model at index i, or nil when out of range.
func (c *Collection) At(i int) *Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i < 0 || i >= len(c.models) {
		return nil
	}
	return c.models[i]
}

// Models returns a snapshot of the current models in order.
func (c *Collection) Models() []*Model {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Model, len(c.models))
	copy(out, c.models)
	return out
}

// Len returns the number of models.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}

// Each calls fn for every model in order.
func (c *Collection) Each(fn func(*Model)) {
	for _, m := range c.Models() {
		fn(m)
	}
}

// On subscribes fn to event.
func (c *Collection) On(event CollectionEvent, fn func(*Model)) events.Subscription {
	return c.events.On(event, fn)
}

// Events exposes the collection's emitter.
func (c *Collection) Events() *events.Emitter[CollectionEvent, *Model] {
	return &c.events
}

// Stream fetches the collection now (unless suppressed) and every
// opts.Interval until Unstream.
func (c *Collection) Stream(ctx context.Context, opts StreamOptions) {
	c.stream.Start(ctx, opts)
}

// Unstream stops streaming.
func (c *Collection) Unstream() {
	c.stream.Stop()
}

// IsStreaming reports whether a stream is active.
func (c *Collection) IsStreaming() bool {
	return c.stream.Active()
}

func (c *Collection) newModel(attrs Attributes) *Model {
	return NewModel(c.client, c.url, attrs)
}

// watch forwards member changes and drops members that get destroyed.
func (c *Collection) watch(m *Model) {
	change := m.On(ModelChange, func(m *Model) {
		c.events.Trigger(CollectionChange, m)
	})
	destroy := m.On(ModelDestroy, func(m *Model) {
		if c.detach(m) {
			c.events.Trigger(CollectionRemove, m)
		}
	})
	c.mu.Lock()
	c.subs[m] = []events.Subscription{change, destroy}
	c.mu.Unlock()
}

func (c *Collection) detach(m *Model) bool {
	c.mu.Lock()
	idx := -1
	for i, candidate := range c.models {
		if candidate == m {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.models = append(c.models[:idx:idx], c.models[idx+1:]...)
	subs := c.subs[m]
	delete(c.subs, m)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
	return true
}

func (c *Collection) fail(err error, opts Options) error {
	c.events.Trigger(CollectionError, nil)
	return opts.finish(err)
}

// ParseList accepts either a JSON array of objects or an object wrapping
// the array under "items".
func ParseList(raw json.RawMessage) ([]Attributes, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []Attributes
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return list, nil
	}
	var wrapped struct {
		Items []Attributes `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return wrapped.Items, nil
}
