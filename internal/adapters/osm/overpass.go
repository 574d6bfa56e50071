package osm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"med-reminder/internal/domain/pharmacies"
	"med-reminder/internal/platform/httpclient"
)

const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

type Overpass struct {
	http     *httpclient.Client
	endpoint string
}

var _ pharmacies.POISource = (*Overpass)(nil)

type OverpassConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
	Transport http.RoundTripper
}

func NewOverpass(cfg OverpassConfig) (*Overpass, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultOverpassURL
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid overpass url: %w", err)
	}
	opts := []httpclient.Option{httpclient.WithUserAgent(cfg.UserAgent)}
	if cfg.Transport != nil {
		opts = append(opts, httpclient.WithTransport(cfg.Transport))
	}
	c, err := httpclient.New("", cfg.Timeout, opts...)
	if err != nil {
		return nil, err
	}
	return &Overpass{http: c, endpoint: cfg.URL}, nil
}

type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Query arma la consulta Overpass QL de farmacias alrededor del punto.
func Query(lat, lon, radiusMeters float64) string {
	return fmt.Sprintf(
		`[out:json][timeout:25];node["amenity"="pharmacy"](around:%d,%s,%s);out;`,
		int(radiusMeters),
		strconv.FormatFloat(lat, 'f', 6, 64),
		strconv.FormatFloat(lon, 'f', 6, 64),
	)
}

func (o *Overpass) Pharmacies(ctx context.Context, lat, lon, radiusMeters float64) ([]pharmacies.Pharmacy, error) {
	q := url.Values{"data": {Query(lat, lon, radiusMeters)}}

	var out overpassResponse
	if err := o.http.DoJSON(ctx, httpclient.Request{Method: http.MethodGet, Path: o.endpoint, Query: q}, &out); err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}

	list := make([]pharmacies.Pharmacy, 0, len(out.Elements))
	for _, e := range out.Elements {
		if e.Type != "node" {
			continue
		}
		name := strings.TrimSpace(e.Tags["name"])
		if name == "" {
			name = "Pharmacy"
		}
		list = append(list, pharmacies.Pharmacy{
			ID:           "osm-node-" + strconv.FormatInt(e.ID, 10),
			Name:         name,
			Lat:          e.Lat,
			Lon:          e.Lon,
			Address:      address(e.Tags),
			Phone:        firstNonEmpty(e.Tags["phone"], e.Tags["contact:phone"]),
			OpeningHours: e.Tags["opening_hours"],
			Source:       pharmacies.SourceOSM,
		})
	}
	return list, nil
}

func address(tags map[string]string) string {
	street := strings.TrimSpace(tags["addr:street"])
	if street == "" {
		return ""
	}
	if n := strings.TrimSpace(tags["addr:housenumber"]); n != "" {
		street += " " + n
	}
	if city := strings.TrimSpace(tags["addr:city"]); city != "" {
		street += ", " + city
	}
	return street
}
