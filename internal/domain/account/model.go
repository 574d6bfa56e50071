package account

import (
	"time"

	"med-reminder/internal/domain/health"
	"med-reminder/internal/domain/medicines"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult es lo que devuelve el backend al loguear o registrar.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OnboardingMedicine es un medicamento cargado durante el registro,
// con los mismos dos pasos que el alta normal.
type OnboardingMedicine struct {
	Identify medicines.IdentifyInput
	Schedule medicines.ScheduleInput
}

type OnboardingInput struct {
	RegisterInput
	Profile   health.Profile
	Medicines []OnboardingMedicine
}

// OnboardingRequest es el bundle validado que viaja al backend.
type OnboardingRequest struct {
	RegisterInput
	Profile   health.Profile       `json:"profile"`
	Medicines []medicines.Medicine `json:"medicines"`
}

type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}
