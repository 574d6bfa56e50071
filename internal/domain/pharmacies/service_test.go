package pharmacies

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fakeGeo struct {
	area Area
	err  error
}

func (f fakeGeo) Reverse(context.Context, float64, float64) (Area, error) { return f.area, f.err }

type fakePOI struct {
	list []Pharmacy
	err  error
}

func (f fakePOI) Pharmacies(context.Context, float64, float64, float64) ([]Pharmacy, error) {
	return append([]Pharmacy(nil), f.list...), f.err
}

func TestHaversine(t *testing.T) {
	if d := Haversine(10, 20, 10, 20); d != 0 {
		t.Fatalf("same point should be 0, got %v", d)
	}
	// Un grado de latitud ~ 111.2 km
	d := Haversine(0, 0, 1, 0)
	if math.Abs(d-111195) > 100 {
		t.Fatalf("unexpected distance %v", d)
	}
	if math.Abs(Haversine(0, 0, 1, 0)-Haversine(1, 0, 0, 0)) > 1e-6 {
		t.Fatalf("distance must be symmetric")
	}
}

func TestNearby_SortsAndCaps(t *testing.T) {
	poi := fakePOI{list: []Pharmacy{
		{ID: "far", Lat: -34.62, Lon: -58.38, Source: SourceOSM},
		{ID: "near", Lat: -34.6038, Lon: -58.3817, Source: SourceOSM},
		{ID: "mid", Lat: -34.61, Lon: -58.38, Source: SourceOSM},
	}}
	svc := NewService(fakeGeo{area: Area{Label: "Centro"}}, poi, Options{MaxResults: 2})

	res, err := svc.Nearby(context.Background(), -34.6037, -58.3816, 0)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if res.Mock || res.Area.Label != "Centro" || res.Radius != DefaultRadiusMeters {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(res.Pharmacies) != 2 || res.Pharmacies[0].ID != "near" || res.Pharmacies[1].ID != "mid" {
		t.Fatalf("unexpected order %+v", res.Pharmacies)
	}
}

func TestNearby_FallsBackToMock(t *testing.T) {
	svc := NewService(fakeGeo{err: errors.New("timeout")}, fakePOI{err: errors.New("overpass down")}, Options{})

	res, err := svc.Nearby(context.Background(), 40.4168, -3.7038, 1000)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if !res.Mock || len(res.Pharmacies) == 0 {
		t.Fatalf("expected mock pharmacies, got %+v", res)
	}
	for i, p := range res.Pharmacies {
		if p.Source != SourceMock {
			t.Fatalf("pharmacy %d not labelled mock", i)
		}
		if i > 0 && p.DistanceMeters < res.Pharmacies[i-1].DistanceMeters {
			t.Fatalf("mock results not sorted")
		}
	}
	if res.Area.Label == "" {
		t.Fatalf("area label must have a default")
	}

	again, _ := svc.Nearby(context.Background(), 40.4168, -3.7038, 1000)
	if !reflect.DeepEqual(res.Pharmacies, again.Pharmacies) {
		t.Fatalf("mock generation must be deterministic")
	}
}

func TestNearby_Validation(t *testing.T) {
	svc := NewService(nil, nil, Options{})
	cases := [][3]float64{{91, 0, 0}, {0, 181, 0}, {0, 0, -1}, {0, 0, MaxRadiusMeters + 1}}
	for _, c := range cases {
		if _, err := svc.Nearby(context.Background(), c[0], c[1], c[2]); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%v: expected ErrInvalidInput, got %v", c, err)
		}
	}
}

func TestNearbyHandler(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(nil, nil, Options{}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pharmacies?lat=1&lon=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pharmacies?lat=x", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
