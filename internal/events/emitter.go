// Package events is the publish/subscribe primitive shared by models,
// collections, views, zone factories and dialogs. Each component declares
// its own closed event type and payload, so an Emitter only accepts the
// events that component actually publishes.
package events

import "sync"

// Handler receives the payload of a triggered event.
type Handler[P any] func(P)

// Subscription identifies a handler registered with On. Cancel removes it.
type Subscription struct {
	cancel func()
}

// Cancel unregisters the handler. It is safe to call more than once and on
// the zero Subscription.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type entry[P any] struct {
	id int
	fn Handler[P]
}

// Emitter dispatches named events of type E with payloads of type P.
// The zero value is ready to use.
type Emitter[E ~string, P any] struct {
	mu       sync.Mutex
	next     int
	handlers map[E][]entry[P]
}

// New returns an empty emitter.
func New[E ~string, P any]() *Emitter[E, P] {
	return &Emitter[E, P]{}
}

// On registers fn for event and returns its subscription.
func (e *Emitter[E, P]) On(event E, fn Handler[P]) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.add(event, func(Subscription) Handler[P] { return fn })
}

// Once registers fn for a single delivery of event.
func (e *Emitter[E, P]) Once(event E, fn Handler[P]) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return e.add(event, func(sub Subscription) Handler[P] {
		var once sync.Once
		return func(p P) {
			once.Do(func() {
				sub.Cancel()
				fn(p)
			})
		}
	})
}

// add publishes the handler built from the entry's own subscription. The
// subscription exists before the entry is visible to Trigger.
func (e *Emitter[E, P]) add(event E, build func(Subscription) Handler[P]) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = make(map[E][]entry[P])
	}
	e.next++
	id := e.next

	var once sync.Once
	sub := Subscription{cancel: func() {
		once.Do(func() { e.remove(event, id) })
	}}
	e.handlers[event] = append(e.handlers[event], entry[P]{id: id, fn: build(sub)})
	return sub
}

// Off removes every handler for event.
func (e *Emitter[E, P]) Off(event E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.handlers, event)
}

// Reset removes every handler for every event.
func (e *Emitter[E, P]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = nil
}

// Trigger calls the handlers registered for event, in registration order.
// Handlers run on the caller's goroutine without the emitter lock held, so
// they may subscribe or unsubscribe freely; such changes apply to the next
// Trigger.
func (e *Emitter[E, P]) Trigger(event E, payload P) {
	e.mu.Lock()
	list := e.handlers[event]
	snapshot := make([]Handler[P], len(list))
	for i, h := range list {
		snapshot[i] = h.fn
	}
	e.mu.Unlock()

	for _, fn := range snapshot {
		fn(payload)
	}
}

// Count returns the number of handlers registered for event.
func (e *Emitter[E, P]) Count(event E) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[event])
}

func (e *Emitter[E, P]) remove(event E, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.handlers[event]
	for i, h := range list {
		if h.id == id {
			next := make([]entry[P], 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(e.handlers, event)
			} else {
				e.handlers[event] = next
			}
			return
		}
	}
}
