package pharmacies

import (
	"context"
	"errors"
	"math"
	"sort"

	"med-reminder/internal/platform/logger"
)

const (
	DefaultRadiusMeters = 2000.0
	MaxRadiusMeters     = 50000.0
	DefaultMaxResults   = 20
)

var ErrInvalidInput = errors.New("invalid coordinates or radius")

type Options struct {
	DefaultRadius float64
	MaxResults    int
	Logger        logger.Logger
}

type Result struct {
	Area       Area       `json:"area"`
	Radius     float64    `json:"radius_meters"`
	Pharmacies []Pharmacy `json:"pharmacies"`
	Mock       bool       `json:"mock"`
}

type Service struct {
	geo  Geocoder
	poi  POISource
	log  logger.Logger
	opts Options
}

func NewService(geo Geocoder, poi POISource, opts Options) *Service {
	if opts.DefaultRadius <= 0 {
		opts.DefaultRadius = DefaultRadiusMeters
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{geo: geo, poi: poi, log: opts.Logger.With(map[string]any{"component": "pharmacies"}), opts: opts}
}

// Nearby busca farmacias alrededor del punto, ordenadas por distancia.
// Si Overpass falla devuelve farmacias de ejemplo marcadas como mock.
func (s *Service) Nearby(ctx context.Context, lat, lon, radius float64) (Result, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Result{}, ErrInvalidInput
	}
	if radius == 0 {
		radius = s.opts.DefaultRadius
	}
	if radius < 0 || radius > MaxRadiusMeters {
		return Result{}, ErrInvalidInput
	}

	res := Result{Radius: radius}

	if s.geo != nil {
		area, err := s.geo.Reverse(ctx, lat, lon)
		if err != nil {
			s.log.Warn("reverse geocoding failed", map[string]any{"error": err})
			area = Area{Label: "Your location"}
		}
		res.Area = area
	} else {
		res.Area = Area{Label: "Your location"}
	}

	var list []Pharmacy
	var err error
	if s.poi != nil {
		list, err = s.poi.Pharmacies(ctx, lat, lon, radius)
	} else {
		err = errors.New("no POI source configured")
	}
	if err != nil {
		s.log.Warn("pharmacy search failed, using sample data", map[string]any{"error": err})
		list = MockPharmacies(lat, lon)
		res.Mock = true
	}

	for i := range list {
		list[i].DistanceMeters = math.Round(Haversine(lat, lon, list[i].Lat, list[i].Lon))
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].DistanceMeters < list[j].DistanceMeters })
	if len(list) > s.opts.MaxResults {
		list = list[:s.opts.MaxResults]
	}
	if list == nil {
		list = []Pharmacy{}
	}
	res.Pharmacies = list
	return res, nil
}
