package pharmacies

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

const earthRadiusMeters = 6371000.0

// Haversine devuelve la distancia en metros entre dos puntos.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// offsets en metros (norte, este) para las farmacias de ejemplo.
var mockOffsets = []struct {
	north, east float64
	name        string
}{
	{250, 180, "Farmacia Central"},
	{-420, 130, "Farmacia del Pueblo"},
	{560, -310, "Farmacia San José"},
	{-190, -640, "Farmacia 24 Horas"},
	{880, 470, "Farmacia Salud"},
}

// MockPharmacies genera farmacias alrededor del punto cuando Overpass no responde.
// Mismas coordenadas => mismos resultados (incluidos los ids).
func MockPharmacies(lat, lon float64) []Pharmacy {
	out := make([]Pharmacy, 0, len(mockOffsets))
	metersPerDegLon := 111320 * math.Cos(lat*math.Pi/180)
	for i, o := range mockOffsets {
		pLat := lat + o.north/111320
		pLon := lon
		if metersPerDegLon > 1e-6 {
			pLon = lon + o.east/metersPerDegLon
		}
		seed := fmt.Sprintf("mock-pharmacy:%.5f,%.5f:%d", lat, lon, i)
		out = append(out, Pharmacy{
			ID:             uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String(),
			Name:           o.name,
			Lat:            pLat,
			Lon:            pLon,
			Address:        "Approximate location (sample data)",
			DistanceMeters: math.Round(Haversine(lat, lon, pLat, pLon)),
			Source:         SourceMock,
		})
	}
	return out
}
