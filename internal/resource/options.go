package resource

import (
	"maps"
	"net/url"
)

// Options configure a fetch, save or destroy call.
type Options struct {
	// Data is sent as query parameters on fetches.
	Data map[string]string
	// Add makes a collection fetch append to the current models instead of
	// replacing them.
	Add bool
	// Success runs after the call succeeded and local state was updated.
	Success func()
	// Error receives transport and decoding failures.
	Error func(error)
}

// clone returns a copy whose Data can be modified without touching o.
func (o Options) clone() Options {
	out := o
	out.Data = maps.Clone(o.Data)
	return out
}

func (o Options) query() url.Values {
	if len(o.Data) == 0 {
		return nil
	}
	values := url.Values{}
	for k, v := range o.Data {
		values.Set(k, v)
	}
	return values
}

// finish routes err to the matching callback and returns it.
func (o Options) finish(err error) error {
	if err != nil {
		if o.Error != nil {
			o.Error(err)
		}
		return err
	}
	if o.Success != nil {
		o.Success()
	}
	return nil
}

// ModelEvent names the events a Model publishes.
type ModelEvent string

const (
	ModelChange  ModelEvent = "change"
	ModelSync    ModelEvent = "sync"
	ModelDestroy ModelEvent = "destroy"
	ModelError   ModelEvent = "error"
)

// CollectionEvent names the events a Collection publishes. The payload is
// the affected model, or nil for reset, sync and error.
type CollectionEvent string

const (
	CollectionAdd    CollectionEvent = "add"
	CollectionRemove CollectionEvent = "remove"
	CollectionReset  CollectionEvent = "reset"
	CollectionChange CollectionEvent = "change"
	CollectionSync   CollectionEvent = "sync"
	CollectionError  CollectionEvent = "error"
)
