package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "jsonv2" {
			t.Errorf("format = %q; want jsonv2", got)
		}
		if got := r.URL.Query().Get("lat"); got == "" {
			t.Error("lat query param missing")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"place_id":123,"display_name":"MG Road, Bengaluru, Karnataka, India","address":{"road":"MG Road","city":"Bengaluru","state":"Karnataka","country":"India"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	address, err := client.Reverse(context.Background(), 12.9716, 77.5946)
	if err != nil {
		t.Fatalf("Reverse returned error %v", err)
	}
	if address != "MG Road, Bengaluru, Karnataka, India" {
		t.Errorf("address = %q", address)
	}
}

func TestReverseErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Reverse(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for error payload")
	}
}

func TestReverseServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.Reverse(context.Background(), 12.9, 77.5); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestNewClientFallsBackOnBadBaseURL(t *testing.T) {
	client := NewClient("://not-a-url")
	if client.BaseURL == nil {
		t.Fatal("BaseURL is nil for an unparseable base URL")
	}
	if client.BaseURL.Host != "nominatim.openstreetmap.org" {
		t.Errorf("Host = %q; want the default endpoint", client.BaseURL.Host)
	}
}
