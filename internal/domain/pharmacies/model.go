package pharmacies

import "context"

type Source string

const (
	SourceOSM  Source = "osm"
	SourceMock Source = "mock"
)

type Pharmacy struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Address        string  `json:"address,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	OpeningHours   string  `json:"opening_hours,omitempty"`
	DistanceMeters float64 `json:"distance_meters"`
	Source         Source  `json:"source"`
}

// Area es la etiqueta legible de la zona (reverse geocoding).
type Area struct {
	Label   string `json:"label"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (Area, error)
}

type POISource interface {
	Pharmacies(ctx context.Context, lat, lon, radiusMeters float64) ([]Pharmacy, error)
}
