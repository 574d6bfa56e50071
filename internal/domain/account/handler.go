package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"med-reminder/internal/domain/health"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/middleware"
	"med-reminder/internal/ports/backend"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc))
		ar.Post("/register", registerHandler(svc))
		ar.Post("/onboarding", onboardingHandler(svc))
		ar.Post("/forgot-password", forgotPasswordHandler(svc))
		ar.Post("/reset-password", resetPasswordHandler(svc))
		ar.Post("/logout", logoutHandler(svc))
		ar.Get("/check-email", checkEmailHandler(svc))
	})

	r.Route("/me", func(mr chi.Router) {
		mr.Get("/", getMeHandler(svc))
		mr.Put("/", updateMeHandler(svc))
		mr.Get("/health", getHealthHandler(svc))
		mr.Put("/health", updateHealthHandler(svc))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type onboardingMedicineDTO struct {
	Name         string              `json:"name"`
	Type         medicines.Type      `json:"type"`
	Dose         medicines.Dose      `json:"dose"`
	SelectedDays []medicines.Weekday `json:"selectedDays"`
	Times        []struct {
		Time   string `json:"time"`
		Dosage string `json:"dosage"`
	} `json:"times"`
}

type onboardingRequest struct {
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Password  string                  `json:"password"`
	Age       int                     `json:"age"`
	Height    float64                 `json:"height"`
	Weight    float64                 `json:"weight"`
	Gender    health.Gender           `json:"gender"`
	Medicines []onboardingMedicineDTO `json:"medicines"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type checkEmailResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}

// loginHandler godoc
// @Summary Login
// @Description Autentica contra el backend y guarda el token en el dispositivo.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} AuthResult
// @Failure 400 {string} string "invalid input"
// @Failure 429 {string} string "rate limited"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// registerHandler godoc
// @Summary Registro simple
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "Cuenta"
// @Success 201 {object} AuthResult
// @Failure 400 {string} string "invalid input"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		res, err := svc.Register(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

// onboardingHandler godoc
// @Summary Registro con onboarding
// @Description Cuenta + edad/altura/peso/género + lista inicial de medicamentos, en un solo envío.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body onboardingRequest true "Bundle de registro"
// @Success 201 {object} AuthResult
// @Failure 400 {string} string "invalid input"
// @Router /auth/onboarding [post]
func onboardingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req onboardingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := OnboardingInput{
			RegisterInput: RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password},
			Profile:       health.Profile{Age: req.Age, HeightCm: req.Height, WeightKg: req.Weight, Gender: req.Gender},
		}
		for _, m := range req.Medicines {
			om := OnboardingMedicine{
				Identify: medicines.IdentifyInput{Name: m.Name, Type: m.Type, Dose: m.Dose},
				Schedule: medicines.ScheduleInput{SelectedDays: m.SelectedDays},
			}
			for _, t := range m.Times {
				om.Schedule.Times = append(om.Schedule.Times, medicines.TimeInput{Time: t.Time, Dosage: t.Dosage})
			}
			in.Medicines = append(in.Medicines, om)
		}

		res, err := svc.RegisterOnboarding(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

// forgotPasswordHandler godoc
// @Summary Olvidé mi contraseña
// @Tags auth
// @Accept json
// @Param payload body emailRequest true "Email"
// @Success 202
// @Router /auth/forgot-password [post]
func forgotPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := svc.ForgotPassword(r.Context(), req.Email); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// resetPasswordHandler godoc
// @Summary Resetear contraseña
// @Tags auth
// @Accept json
// @Param payload body resetPasswordRequest true "Token de reseteo + nueva contraseña"
// @Success 204
// @Router /auth/reset-password [post]
func resetPasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// logoutHandler godoc
// @Summary Logout
// @Description Borra el token guardado en el dispositivo.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// checkEmailHandler godoc
// @Summary Disponibilidad de email
// @Tags auth
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} checkEmailResponse
// @Router /auth/check-email [get]
func checkEmailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		ok, err := svc.CheckEmail(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, checkEmailResponse{Email: email, Available: ok})
	}
}

// getMeHandler godoc
// @Summary Mi perfil
// @Tags profile
// @Produce json
// @Success 200 {object} User
// @Failure 401 {string} string "unauthorized"
// @Router /me [get]
func getMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		u, err := svc.Me(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// updateMeHandler godoc
// @Summary Actualizar perfil
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body ProfileUpdate true "Campos a cambiar"
// @Success 200 {object} User
// @Router /me [put]
func updateMeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		var req ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		u, err := svc.UpdateMe(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

// getHealthHandler godoc
// @Summary Datos de salud
// @Tags profile
// @Produce json
// @Success 200 {object} health.Profile
// @Router /me/health [get]
func getHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		p, err := svc.Health(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// updateHealthHandler godoc
// @Summary Actualizar datos de salud
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body health.Profile true "Edad/altura/peso/género (parcial)"
// @Success 200 {object} health.Profile
// @Router /me/health [put]
func updateHealthHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireUser(w, r) {
			return
		}
		var req health.Profile
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		p, err := svc.UpdateHealth(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if st, msg, ok := backend.HTTPStatus(err); ok {
		http.Error(w, msg, st)
		return
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, medicines.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidToken):
		http.Error(w, "backend returned an invalid token", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
