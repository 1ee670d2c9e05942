package resource

import (
	"context"
	"net/http"
	"testing"
)

func TestSingularModel_SaveAlwaysPuts(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "Ada", "email": "ada@example.com"})
	})
	profile := NewSingularModel(c, "/api/profile")

	if !profile.IsNew() {
		t.Fatal("fresh singular model should report IsNew")
	}
	if err := profile.Save(context.Background(), Attributes{"name": "Ada"}, Options{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	last := api.Last()
	if last.Method != http.MethodPut || last.Path != "/api/profile" {
		t.Fatalf("request = %+v, want PUT /api/profile", last)
	}
	if last.Body["name"] != "Ada" {
		t.Fatalf("body = %#v", last.Body)
	}
	if !profile.IsNew() {
		t.Fatal("IsNew changed by Save")
	}
	if profile.GetString("email") != "ada@example.com" {
		t.Fatalf("server attributes not merged: %#v", profile.Attributes())
	}
}

func TestSingularModel_SaveFailureKeepsIsNew(t *testing.T) {
	_, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	})
	profile := NewSingularModel(c, "/api/profile")
	if err := profile.Save(context.Background(), nil, Options{}); err == nil {
		t.Fatal("Save returned nil error on 400")
	}
	if !profile.IsNew() {
		t.Fatal("IsNew changed by failed Save")
	}
}

func TestSingularModel_SaveWithIDStillTargetsFixedURL(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	profile := NewSingularModel(c, "/api/profile")
	profile.Set(Attributes{"id": 4})

	if err := profile.Save(context.Background(), nil, Options{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if last := api.Last(); last.Method != http.MethodPut || last.Path != "/api/profile" {
		t.Fatalf("request = %+v", last)
	}
}

func TestSingularModel_DestroyClearsInPlace(t *testing.T) {
	api, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	profile := NewSingularModel(c, "/api/profile")
	profile.Set(Attributes{"name": "Ada"})

	order := []string{}
	profile.On(ModelChange, func(*Model) { order = append(order, "change") })
	err := profile.Destroy(context.Background(), Options{
		Success: func() {
			order = append(order, "success")
			if profile.GetString("name") != "Ada" {
				t.Error("attributes cleared before caller success ran")
			}
		},
	})
	if err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if last := api.Last(); last.Method != http.MethodDelete || last.Path != "/api/profile" {
		t.Fatalf("request = %+v, want DELETE /api/profile", last)
	}
	if profile.Len() != 0 {
		t.Fatalf("attributes = %#v, want empty", profile.Attributes())
	}
	if len(order) != 2 || order[0] != "success" || order[1] != "change" {
		t.Fatalf("order = %v, want [success change]", order)
	}

	profile.Set(Attributes{"name": "Grace"})
	if profile.GetString("name") != "Grace" {
		t.Fatal("model unusable after destroy")
	}
}

func TestSingularModel_DestroyFailureKeepsAttributes(t *testing.T) {
	_, c := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})
	profile := NewSingularModel(c, "/api/profile")
	profile.Set(Attributes{"name": "Ada"})

	if err := profile.Destroy(context.Background(), Options{}); err == nil {
		t.Fatal("Destroy returned nil error on 500")
	}
	if profile.GetString("name") != "Ada" {
		t.Fatal("attributes cleared despite failure")
	}
}
