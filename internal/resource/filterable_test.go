package resource

import (
	"context"
	"net/http"
	"reflect"
	"testing"
)

func TestFilterableCollection_MergesFiltersIntoQuery(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{})
	})

	calls := 0
	coll := NewFilterableCollection(c, "/api/tasks", map[string]Filter{
		"status": Literal("open"),
		"page": Computed(func() string {
			calls++
			if calls == 1 {
				return "1"
			}
			return "2"
		}),
	})

	opts := Options{Data: map[string]string{"q": "milk", "status": "caller"}}
	if err := coll.Fetch(context.Background(), opts); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	got := api.Last().Query
	if got.Get("q") != "milk" || got.Get("status") != "open" || got.Get("page") != "1" {
		t.Fatalf("query = %v", got)
	}

	want := map[string]string{"q": "milk", "status": "caller"}
	if !reflect.DeepEqual(opts.Data, want) {
		t.Fatalf("caller options mutated: %v", opts.Data)
	}

	if err := coll.Fetch(context.Background(), opts); err != nil {
		t.Fatalf("second Fetch returned error: %v", err)
	}
	if page := api.Last().Query.Get("page"); page != "2" {
		t.Fatalf("computed filter not re-evaluated: page=%q", page)
	}
}

func TestFilterableCollection_NilDataGetsFilters(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{})
	})
	coll := NewFilterableCollection(c, "/api/tasks", map[string]Filter{"owner": Literal("me")})

	opts := Options{}
	if err := coll.Fetch(context.Background(), opts); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if api.Last().Query.Get("owner") != "me" {
		t.Fatalf("query = %v", api.Last().Query)
	}
	if opts.Data != nil {
		t.Fatalf("caller options mutated: %v", opts.Data)
	}
}

func TestFilterableCollection_NoFiltersBehavesLikeCollection(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": 1}})
	})
	coll := NewFilterableCollection(c, "/api/tasks", nil)

	opts := Options{Data: map[string]string{"q": "x"}}
	if got := coll.Apply(opts); !reflect.DeepEqual(got.Data, opts.Data) {
		t.Fatalf("Apply changed data: %v", got.Data)
	}
	if err := coll.Fetch(context.Background(), opts); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if q := api.Last().Query; len(q) != 1 || q.Get("q") != "x" {
		t.Fatalf("query = %v", q)
	}
	if coll.Len() != 1 {
		t.Fatalf("Len = %d, want 1", coll.Len())
	}
}

func TestFilterableCollection_SetAndRemoveFilter(t *testing.T) {
	coll := NewFilterableCollection(nil, "/api/tasks", nil)
	coll.SetFilter("a", Literal("1"))
	coll.SetFilter("b", Computed(func() string { return "2" }))

	got := coll.Apply(Options{}).Data
	if got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("Apply = %v", got)
	}
	if !coll.Filters()["b"].IsComputed() || coll.Filters()["a"].IsComputed() {
		t.Fatal("IsComputed mismatch")
	}

	coll.RemoveFilter("a")
	if _, ok := coll.Apply(Options{}).Data["a"]; ok {
		t.Fatal("removed filter still applied")
	}
}
