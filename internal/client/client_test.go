package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateItinerary(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate-itinerary" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"Day 2":[],"Day 1":[{"time":"9:00 AM","activity":"Tea"}]}`))
	}))
	defer srv.Close()

	it, err := New(srv.URL+"/").GenerateItinerary(context.Background(), "Kyoto", 2, " ")
	if err != nil {
		t.Fatalf("GenerateItinerary: %v", err)
	}
	if diff := cmp.Diff([]string{"Day 2", "Day 1"}, it.Labels()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	want := map[string]any{"destination": "Kyoto", "days": float64(2), "interests": "general sightseeing"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request body (-want +got):\n%s", diff)
	}
}

func TestGenerateSuggestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"suggestions":["Onsen","Night market"]}`))
	}))
	defer srv.Close()

	got, err := New(srv.URL).GenerateSuggestions(context.Background(), "Kyoto", "food")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Onsen", "Night market"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestGenerateSuggestions_InvalidFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ideas":["Onsen"]}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).GenerateSuggestions(context.Background(), "Kyoto", "food"); err == nil {
		t.Error("expected an error for a body without suggestions")
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name, body string
		code       int
		want       APIError
	}{
		{"json error body", `{"error":"Failed to generate itinerary","trace_id":"abc"}`, 500, APIError{StatusCode: 500, Message: "Failed to generate itinerary", TraceID: "abc"}},
		{"plain body", `upstream down`, 502, APIError{StatusCode: 502, Message: "Bad Gateway"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).GenerateItinerary(context.Background(), "Kyoto", 1, "food")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if diff := cmp.Diff(tt.want, *apiErr); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateItinerary_InFlightGuard(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(entered) })
		<-release
		w.Write([]byte(`{"Day 1":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	done := make(chan error, 1)
	go func() {
		_, err := c.GenerateItinerary(context.Background(), "Kyoto", 1, "food")
		done <- err
	}()
	<-entered

	if _, err := c.GenerateItinerary(context.Background(), "Kyoto", 1, "food"); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("concurrent call err = %v, want ErrRequestInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := c.GenerateItinerary(context.Background(), "Kyoto", 1, "food"); err != nil {
		t.Errorf("call after completion: %v", err)
	}
}
