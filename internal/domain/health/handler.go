package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/bmi", bmiHandler())
	r.Post("/onboarding/steps/{step}", validateStepHandler())
}

// bmiHandler godoc
// @Summary Calcular IMC
// @Description IMC redondeado a un decimal con su banda (18.5 y 25.0 son "ideal").
// @Tags health
// @Produce json
// @Param weight_kg query number true "Peso en kg"
// @Param height_cm query number true "Altura en cm"
// @Success 200 {object} Result
// @Failure 400 {string} string "invalid input"
// @Router /bmi [get]
func bmiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		weight, err1 := strconv.ParseFloat(strings.TrimSpace(q.Get("weight_kg")), 64)
		height, err2 := strconv.ParseFloat(strings.TrimSpace(q.Get("height_cm")), 64)
		if err1 != nil || err2 != nil {
			http.Error(w, "weight_kg and height_cm must be numbers", http.StatusBadRequest)
			return
		}
		res, err := Evaluate(weight, height)
		if err != nil {
			http.Error(w, "weight_kg and height_cm must be positive", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// validateStepHandler godoc
// @Summary Validar un paso del registro
// @Tags auth
// @Accept json
// @Param step path int true "Paso 1..5"
// @Param payload body StepInput true "Campos del paso"
// @Success 204
// @Failure 400 {string} string "invalid input"
// @Router /onboarding/steps/{step} [post]
func validateStepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		step, err := strconv.Atoi(chi.URLParam(r, "step"))
		if err != nil {
			http.Error(w, "invalid step", http.StatusBadRequest)
			return
		}
		var in StepInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := ValidateStep(Step(step), in); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
