// Package resource provides models and collections backed by a JSON REST API.
//
// # Overview
//
// A Model wraps a single JSON object addressed as <root>/<id>; a Collection
// holds an ordered list of models fetched from one URL. Both publish events
// through internal/events so views can re-render when data changes, and
// both can stream: re-fetch themselves on an interval until told to stop.
//
// # Architecture
//
//   - client.go: HTTP transport (Client, Requester, StatusError)
//   - options.go: per-call Options and the event names
//   - model.go: Model with Fetch, FetchWithID, Save and Destroy
//   - singular.go: SingularModel, a resource at a fixed URL without an id
//   - collection.go: Collection and ParseList
//   - filterable.go: FilterableCollection with literal and computed filters
//   - stream.go: Stream, the polling loop shared by all of the above
//
// # Request Semantics
//
//	Model.Fetch         GET    <root>/<id>     query from Options.Data
//	Model.Save (new)    POST   <root>          body = attributes
//	Model.Save          PUT    <root>/<id>     body = attributes
//	Model.Destroy       DELETE <root>/<id>     skipped while new
//	SingularModel.Save  PUT    <url>           always
//	Collection.Fetch    GET    <url>           reset, or append with Options.Add
//
// Every operation both returns its error and routes it to Options.Error;
// Options.Success runs after local state has been updated.
//
// # Filters
//
// A FilterableCollection merges its filters into a copy of Options.Data on
// every fetch. Computed filters are evaluated each time, which lets a filter
// follow UI state such as a dropdown selection:
//
//	tasks := resource.NewFilterableCollection(client, "/api/tasks", map[string]resource.Filter{
//		"status": resource.Computed(statusDropdown.Value),
//	})
//	tasks.Stream(ctx, resource.StreamOptions{Interval: 2 * time.Second})
//	defer tasks.Unstream()
//
// # Concurrency
//
// Streams fetch on their own goroutine. Models and collections guard their
// state with mutexes and fire events after releasing them, so handlers may
// call back into the emitting object. Overlapping fetches are not
// serialised: a slow response can overwrite a newer one.
package resource
