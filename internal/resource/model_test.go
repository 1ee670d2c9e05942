package resource

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestModel_SetEmitsChangeOnlyOnDifference(t *testing.T) {
	m := NewModel(nil, "/api/tasks", Attributes{"id": "1", "title": "a"})
	changes := 0
	m.On(ModelChange, func(*Model) { changes++ })

	m.Set(Attributes{"title": "a"})
	if changes != 0 {
		t.Fatalf("changes = %d after no-op Set, want 0", changes)
	}
	m.Set(Attributes{"title": "b"})
	if changes != 1 || m.GetString("title") != "b" {
		t.Fatalf("changes = %d title = %q, want 1 and b", changes, m.GetString("title"))
	}
	m.Unset("title")
	if changes != 2 || m.Has("title") {
		t.Fatalf("Unset: changes = %d has = %v", changes, m.Has("title"))
	}
}

func TestModel_URLAndIsNew(t *testing.T) {
	m := NewModel(nil, "/api/tasks/", nil)
	if !m.IsNew() || m.URL() != "/api/tasks" {
		t.Fatalf("new model: IsNew=%v URL=%q", m.IsNew(), m.URL())
	}
	m.Set(Attributes{"id": float64(7)})
	if m.IsNew() || m.URL() != "/api/tasks/7" {
		t.Fatalf("persisted model: IsNew=%v URL=%q", m.IsNew(), m.URL())
	}
}

func TestModel_FetchSetsAttributesAndCallsSuccess(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 3, "title": "remote"})
	})
	m := NewModel(c, "/api/tasks", Attributes{"id": "3"})

	synced, succeeded := false, false
	m.On(ModelSync, func(*Model) { synced = true })
	err := m.Fetch(context.Background(), Options{
		Data:    map[string]string{"expand": "1"},
		Success: func() { succeeded = true },
	})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if m.GetString("title") != "remote" || m.ID() != "3" {
		t.Fatalf("attributes = %#v", m.Attributes())
	}
	if !synced || !succeeded {
		t.Fatalf("synced=%v succeeded=%v, want both", synced, succeeded)
	}
	last := api.Last()
	if last.Path != "/api/tasks/3" || last.Query.Get("expand") != "1" {
		t.Fatalf("request = %+v", last)
	}
}

func TestModel_FetchWithID(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": "a b", "title": "spaced"})
	})
	m := NewModel(c, "/api/tasks", nil)
	if err := m.FetchWithID(context.Background(), "a b", Options{}); err != nil {
		t.Fatalf("FetchWithID returned error: %v", err)
	}
	if got := api.Last().Path; got != "/api/tasks/a b" {
		t.Fatalf("path = %q, want /api/tasks/a b", got)
	}
	if m.ID() != "a b" {
		t.Fatalf("ID = %q", m.ID())
	}
}

func TestModel_FetchErrorCallsErrorCallback(t *testing.T) {
	_, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	})
	m := NewModel(c, "/api/tasks", Attributes{"id": "9"})

	var gotErr error
	errored := false
	m.On(ModelError, func(*Model) { errored = true })
	err := m.Fetch(context.Background(), Options{
		Success: func() { t.Fatal("Success called on failure") },
		Error:   func(err error) { gotErr = err },
	})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Fatalf("Fetch error = %v, want 404", err)
	}
	if gotErr == nil || !errored {
		t.Fatalf("error callback=%v error event=%v", gotErr, errored)
	}
}

func TestModel_SaveCreatesThenUpdates(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, map[string]any{"id": 11})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	m := NewModel(c, "/api/tasks", nil)

	if err := m.Save(context.Background(), Attributes{"title": "new"}, Options{}); err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	first := api.Last()
	if first.Method != http.MethodPost || first.Path != "/api/tasks" || first.Body["title"] != "new" {
		t.Fatalf("first save request = %+v", first)
	}
	if m.ID() != "11" {
		t.Fatalf("ID after create = %q, want 11", m.ID())
	}

	if err := m.Save(context.Background(), Attributes{"title": "renamed"}, Options{}); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}
	second := api.Last()
	if second.Method != http.MethodPut || second.Path != "/api/tasks/11" {
		t.Fatalf("second save request = %+v", second)
	}
}

func TestModel_DestroyNewModelSkipsRequest(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	m := NewModel(c, "/api/tasks", Attributes{"title": "draft"})

	destroyed := false
	m.On(ModelDestroy, func(*Model) { destroyed = true })
	if err := m.Destroy(context.Background(), Options{}); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if api.Count() != 0 {
		t.Fatalf("requests = %d, want 0", api.Count())
	}
	if !destroyed {
		t.Fatal("destroy event not emitted")
	}
}

func TestModel_DestroyPersistedSendsDelete(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	m := NewModel(c, "/api/tasks", Attributes{"id": "5", "title": "x"})
	if err := m.Destroy(context.Background(), Options{}); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if last := api.Last(); last.Method != http.MethodDelete || last.Path != "/api/tasks/5" {
		t.Fatalf("request = %+v", last)
	}
	if m.Len() != 2 {
		t.Fatalf("plain model cleared on destroy: %#v", m.Attributes())
	}
}

func TestFormatID(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc", "abc"},
		{float64(12), "12"},
		{1.5, "1.5"},
		{7, "7"},
		{int64(8), "8"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := FormatID(tt.in); got != tt.want {
			t.Errorf("FormatID(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
