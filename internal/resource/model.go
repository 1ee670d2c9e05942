package resource

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/likipe/zonekit/internal/events"
)

// Attributes is the JSON object backing a model.
type Attributes map[string]any

// IDAttribute is the attribute holding a model's identifier.
const IDAttribute = "id"

// SaveMode selects the HTTP method Save uses.
type SaveMode int

const (
	// SaveAuto creates (POST to the root) while the model is new and
	// updates (PUT to the model URL) afterwards.
	SaveAuto SaveMode = iota
	// SaveAlwaysUpdate always issues PUT to the model URL. Destroy also
	// always reaches the server in this mode.
	SaveAlwaysUpdate
)

// Model is a single REST resource.
type Model struct {
	client  Requester
	urlRoot string
	url     string
	mode    SaveMode

	mu    sync.RWMutex
	attrs Attributes

	events events.Emitter[ModelEvent, *Model]
	stream *Stream
}

// NewModel returns a model addressed as urlRoot/<id>.
func NewModel(client Requester, urlRoot string, attrs Attributes) *Model {
	m := &Model{
		client:  client,
		urlRoot: strings.TrimRight(urlRoot, "/"),
		attrs:   maps.Clone(attrs),
	}
	if m.attrs == nil {
		m.attrs = Attributes{}
	}
	m.stream = NewStream(m)
	return m
}

// URL returns the address of the model: urlRoot/<id>, or urlRoot while the
// model has no id.
func (m *Model) URL() string {
	if m.url != "" {
		return m.url
	}
	id := m.ID()
	if id == "" {
		return m.urlRoot
	}
	return m.urlRoot + "/" + url.PathEscape(id)
}

// Mode reports the model's save mode.
func (m *Model) Mode() SaveMode {
	return m.mode
}

// ID returns the id attribute formatted as a string, or "" when absent.
func (m *Model) ID() string {
	return FormatID(m.Get(IDAttribute))
}

// IsNew reports whether the model has never been persisted, i.e. has no id.
func (m *Model) IsNew() bool {
	return m.ID() == ""
}

// Get returns the attribute value for key.
func (m *Model) Get(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attrs[key]
}

// GetString returns the attribute for key formatted as text.
func (m *Model) GetString(key string) string {
	return FormatID(m.Get(key))
}

// Has reports whether key is set.
func (m *Model) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.attrs[key]
	return ok
}

// Attributes returns a shallow copy of the attributes.
func (m *Model) Attributes() Attributes {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.attrs)
}

// Len returns the number of attributes.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.attrs)
}

// Set merges attrs into the model and emits change when any value differs.
func (m *Model) Set(attrs Attributes) {
	m.mu.Lock()
	changed := false
	for k, v := range attrs {
		if old, ok := m.attrs[k]; !ok || !reflect.DeepEqual(old, v) {
			m.attrs[k] = v
			changed = true
		}
	}
	m.mu.Unlock()

	if changed {
		m.events.Trigger(ModelChange, m)
	}
}

// Unset removes key and emits change when it was present.
func (m *Model) Unset(key string) {
	m.mu.Lock()
	_, ok := m.attrs[key]
	delete(m.attrs, key)
	m.mu.Unlock()

	if ok {
		m.events.Trigger(ModelChange, m)
	}
}

// Clear removes every attribute in place and emits change when the model
// was not already empty.
func (m *Model) Clear() {
	m.mu.Lock()
	had := len(m.attrs) > 0
	m.attrs = Attributes{}
	m.mu.Unlock()

	if had {
		m.events.Trigger(ModelChange, m)
	}
}

// On subscribes fn to event.
func (m *Model) On(event ModelEvent, fn func(*Model)) events.Subscription {
	return m.events.On(event, fn)
}

// Events exposes the model's emitter.
func (m *Model) Events() *events.Emitter[ModelEvent, *Model] {
	return &m.events
}

// Fetch loads the model from its URL, sending opts.Data as query
// parameters.
func (m *Model) Fetch(ctx context.Context, opts Options) error {
	return m.fetchFrom(ctx, m.URL(), opts)
}

// FetchWithID loads the resource urlRoot/id into this model.
func (m *Model) FetchWithID(ctx context.Context, id string, opts Options) error {
	return m.fetchFrom(ctx, m.urlRoot+"/"+url.PathEscape(id), opts)
}

func (m *Model) fetchFrom(ctx context.Context, path string, opts Options) error {
	var payload Attributes
	if err := m.client.Do(ctx, http.MethodGet, path, opts.query(), nil, &payload); err != nil {
		return m.fail(fmt.Errorf("fetch %s: %w", path, err), opts)
	}
	m.Set(payload)
	m.events.Trigger(ModelSync, m)
	return opts.finish(nil)
}

// Save merges attrs (may be nil) and persists the model. In SaveAuto mode
// a new model is created with POST to its root; otherwise PUT is sent to
// the model URL. Attributes returned by the server are merged back.
func (m *Model) Save(ctx context.Context, attrs Attributes, opts Options) error {
	if len(attrs) > 0 {
		m.Set(attrs)
	}

	method, path := http.MethodPut, m.URL()
	if m.mode == SaveAuto && m.IsNew() {
		method, path = http.MethodPost, m.urlRoot
	}

	var payload Attributes
	if err := m.client.Do(ctx, method, path, nil, m.Attributes(), &payload); err != nil {
		return m.fail(fmt.Errorf("save %s: %w", path, err), opts)
	}
	if len(payload) > 0 {
		m.Set(payload)
	}
	m.events.Trigger(ModelSync, m)
	return opts.finish(nil)
}

// Destroy deletes the model on the server and emits destroy, which makes
// any containing collection drop it. A new model in SaveAuto mode is only
// destroyed locally.
func (m *Model) Destroy(ctx context.Context, opts Options) error {
	if m.mode == SaveAuto && m.IsNew() {
		m.events.Trigger(ModelDestroy, m)
		return opts.finish(nil)
	}

	path := m.URL()
	if err := m.client.Do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return m.fail(fmt.Errorf("destroy %s: %w", path, err), opts)
	}
	m.events.Trigger(ModelDestroy, m)
	return opts.finish(nil)
}

// Stream fetches the model now (unless suppressed) and every
// opts.Interval until Unstream.
func (m *Model) Stream(ctx context.Context, opts StreamOptions) {
	m.stream.Start(ctx, opts)
}

// Unstream stops streaming.
func (m *Model) Unstream() {
	m.stream.Stop()
}

// IsStreaming reports whether a stream is active.
func (m *Model) IsStreaming() bool {
	return m.stream.Active()
}

func (m *Model) fail(err error, opts Options) error {
	m.events.Trigger(ModelError, m)
	return opts.finish(err)
}

// FormatID renders an id attribute as text. JSON numbers decode as float64
// and are printed without a fractional part when integral.
func FormatID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}
