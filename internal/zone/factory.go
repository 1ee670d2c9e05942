package zone

import (
	"sync"

	"github.com/google/uuid"

	"github.com/likipe/zonekit/internal/events"
	"github.com/likipe/zonekit/internal/view"
)

// FactoryEvent names the events a factory publishes. The payload is the
// view that was created or is being replaced.
type FactoryEvent string

const (
	Created FactoryEvent = "created"
	Closed  FactoryEvent = "closed"
)

// Factory builds the content of one zone.
//
// CreateZone returns a fresh view each time it is called. A nil result,
// including a nil pointer of a concrete view type, fails with ErrNilView.
// CloseZone
// releases whatever the factory allocated for its view; closing the view
// itself is the manager's job. ID identifies the factory for the manager's
// idempotence check and must be stable for the factory's lifetime.
type Factory interface {
	ID() string
	CreateZone() view.View
	CloseZone()
	Events() *events.Emitter[FactoryEvent, view.View]
}

const idPrefix = "viewZoneFactory-"

// BaseFactory supplies identity and events. Embed it and implement
// CreateZone; override CloseZone when the factory holds resources.
type BaseFactory struct {
	once   sync.Once
	id     string
	events events.Emitter[FactoryEvent, view.View]
}

// ID returns a process-unique identifier, assigned on first use.
func (b *BaseFactory) ID() string {
	b.once.Do(func() {
		b.id = idPrefix + uuid.NewString()
	})
	return b.id
}

// CloseZone does nothing.
func (b *BaseFactory) CloseZone() {}

// Events exposes the factory's emitter.
func (b *BaseFactory) Events() *events.Emitter[FactoryEvent, view.View] {
	return &b.events
}

// On subscribes fn to event.
func (b *BaseFactory) On(event FactoryEvent, fn func(view.View)) events.Subscription {
	return b.events.On(event, fn)
}

// FuncFactory adapts a pair of functions to Factory.
type FuncFactory struct {
	BaseFactory
	create func() view.View
	close  func()
}

var _ Factory = (*FuncFactory)(nil)

// NewFuncFactory returns a factory calling create for each new view and
// release (may be nil) when its zone is closed.
func NewFuncFactory(create func() view.View, release func()) *FuncFactory {
	return &FuncFactory{create: create, close: release}
}

// CreateZone calls the create function.
func (f *FuncFactory) CreateZone() view.View {
	if f.create == nil {
		return nil
	}
	return f.create()
}

// CloseZone calls the release function.
func (f *FuncFactory) CloseZone() {
	if f.close != nil {
		f.close()
	}
}
