package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestNominatim_ReverseUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/reverse" || r.URL.Query().Get("format") != "jsonv2" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		if r.Header.Get("User-Agent") != "med-reminder-test" {
			t.Errorf("missing user agent")
		}
		_, _ = w.Write([]byte(`{"display_name":"x","address":{"suburb":"Palermo","city":"Buenos Aires","country":"Argentina"}}`))
	}))
	defer srv.Close()

	n, err := NewNominatim(NominatimConfig{BaseURL: srv.URL, UserAgent: "med-reminder-test"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	area, err := n.Reverse(context.Background(), -34.58, -58.42)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if area.Label != "Palermo, Buenos Aires" || area.Country != "Argentina" {
		t.Fatalf("unexpected area %+v", area)
	}
	if _, err := n.Reverse(context.Background(), -34.58001, -58.42001); err != nil {
		t.Fatalf("cached reverse: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls.Load())
	}
}

func TestNominatim_ErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	n, _ := NewNominatim(NominatimConfig{BaseURL: srv.URL})
	if _, err := n.Reverse(context.Background(), 0, 0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOverpass_Pharmacies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := r.URL.Query().Get("data")
		if !strings.Contains(data, `node["amenity"="pharmacy"](around:1500,`) {
			t.Errorf("unexpected query %q", data)
		}
		_, _ = w.Write([]byte(`{"elements":[
			{"type":"node","id":42,"lat":1.001,"lon":2.001,"tags":{"name":"Farmacia Sol","addr:street":"Calle 1","addr:housenumber":"10","phone":"123"}},
			{"type":"node","id":43,"lat":1.002,"lon":2.002,"tags":{}},
			{"type":"way","id":44}
		]}`))
	}))
	defer srv.Close()

	o, err := NewOverpass(OverpassConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	list, err := o.Pharmacies(context.Background(), 1, 2, 1500)
	if err != nil {
		t.Fatalf("pharmacies: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(list))
	}
	if list[0].ID != "osm-node-42" || list[0].Address != "Calle 1 10" || list[0].Phone != "123" {
		t.Fatalf("unexpected pharmacy %+v", list[0])
	}
	if list[1].Name != "Pharmacy" {
		t.Fatalf("unnamed node should get a default name, got %q", list[1].Name)
	}
}

func TestOverpass_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too busy", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	o, _ := NewOverpass(OverpassConfig{URL: srv.URL})
	if _, err := o.Pharmacies(context.Background(), 1, 2, 1000); err == nil {
		t.Fatalf("expected error on 504")
	}
}
