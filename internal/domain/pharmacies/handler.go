package pharmacies

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pharmacies", nearbyHandler(svc))
}

// nearbyHandler godoc
// @Summary Farmacias cercanas
// @Description Nominatim para la etiqueta de la zona y Overpass para amenity=pharmacy. Si Overpass falla se devuelven datos de ejemplo (mock=true).
// @Tags pharmacies
// @Produce json
// @Param lat query number true "Latitud"
// @Param lon query number true "Longitud"
// @Param radius query number false "Radio en metros (default 2000, máx 50000)"
// @Success 200 {object} Result
// @Failure 400 {string} string "invalid coordinates"
// @Router /pharmacies [get]
func nearbyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(q.Get("lat")), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(q.Get("lon")), 64)
		if err1 != nil || err2 != nil {
			http.Error(w, "lat and lon are required numbers", http.StatusBadRequest)
			return
		}
		var radius float64
		if v := strings.TrimSpace(q.Get("radius")); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				http.Error(w, "radius must be a number", http.StatusBadRequest)
				return
			}
			radius = parsed
		}

		res, err := svc.Nearby(r.Context(), lat, lon, radius)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
