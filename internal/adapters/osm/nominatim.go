package osm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"med-reminder/internal/domain/pharmacies"
	"med-reminder/internal/platform/httpclient"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// La política de uso de Nominatim pide como máximo 1 request por segundo
// y un User-Agent que identifique a la aplicación.
const nominatimRPS = 1

type Nominatim struct {
	http *httpclient.Client

	mu    sync.RWMutex
	cache map[string]pharmacies.Area
}

var _ pharmacies.Geocoder = (*Nominatim)(nil)

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Transport http.RoundTripper
}

func NewNominatim(cfg NominatimConfig) (*Nominatim, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	opts := []httpclient.Option{
		httpclient.WithUserAgent(cfg.UserAgent),
		httpclient.WithRateLimit(nominatimRPS, 1),
	}
	if cfg.Transport != nil {
		opts = append(opts, httpclient.WithTransport(cfg.Transport))
	}
	c, err := httpclient.New(cfg.BaseURL, cfg.Timeout, opts...)
	if err != nil {
		return nil, err
	}
	return &Nominatim{http: c, cache: map[string]pharmacies.Area{}}, nil
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road          string `json:"road"`
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"address"`
	Error string `json:"error"`
}

// Reverse resuelve la etiqueta de la zona. Resultados cacheados en memoria
// por coordenada redondeada (~11m).
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (pharmacies.Area, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)

	n.mu.RLock()
	area, ok := n.cache[key]
	n.mu.RUnlock()
	if ok {
		return area, nil
	}

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("zoom", "16")

	var out reverseResponse
	if err := n.http.DoJSON(ctx, httpclient.Request{Method: http.MethodGet, Path: "/reverse", Query: q}, &out); err != nil {
		return pharmacies.Area{}, fmt.Errorf("nominatim reverse: %w", err)
	}
	if out.Error != "" {
		return pharmacies.Area{}, fmt.Errorf("nominatim reverse: %s", out.Error)
	}

	area = toArea(out)
	n.mu.Lock()
	n.cache[key] = area
	n.mu.Unlock()
	return area, nil
}

func toArea(r reverseResponse) pharmacies.Area {
	a := r.Address
	city := firstNonEmpty(a.City, a.Town, a.Village, a.State)
	local := firstNonEmpty(a.Neighbourhood, a.Suburb, a.Road)

	label := strings.TrimSpace(r.DisplayName)
	switch {
	case local != "" && city != "":
		label = local + ", " + city
	case city != "":
		label = city
	}
	if label == "" {
		label = "Your location"
	}
	return pharmacies.Area{Label: label, City: city, Country: a.Country}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
