package health

import (
	"fmt"
	"net/mail"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

const MinPasswordLength = 8

// Profile son los campos de salud extendidos del usuario.
type Profile struct {
	Age      int     `json:"age"`
	HeightCm float64 `json:"height"`
	WeightKg float64 `json:"weight"`
	Gender   Gender  `json:"gender"`
}

// Step identifica cada pantalla del registro en varios pasos.
type Step int

const (
	StepAccount Step = iota + 1
	StepAge
	StepHeight
	StepWeight
	StepGender
)

func ValidateAccount(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: email required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

func ValidateAge(age int) error {
	if age < 1 || age > 120 {
		return fmt.Errorf("%w: age must be between 1 and 120", ErrInvalidInput)
	}
	return nil
}

func ValidateHeight(cm float64) error {
	if cm < 50 || cm > 250 {
		return fmt.Errorf("%w: height must be between 50 and 250 cm", ErrInvalidInput)
	}
	return nil
}

func ValidateWeight(kg float64) error {
	if kg < 2 || kg > 400 {
		return fmt.Errorf("%w: weight must be between 2 and 400 kg", ErrInvalidInput)
	}
	return nil
}

func ValidateGender(g Gender) error {
	if !g.Valid() {
		return fmt.Errorf("%w: gender must be male, female or other", ErrInvalidInput)
	}
	return nil
}

// Validate revisa los pasos 2..5.
func (p Profile) Validate() error {
	if err := ValidateAge(p.Age); err != nil {
		return err
	}
	if err := ValidateHeight(p.HeightCm); err != nil {
		return err
	}
	if err := ValidateWeight(p.WeightKg); err != nil {
		return err
	}
	return ValidateGender(p.Gender)
}

// Partial valida sólo los campos presentes (PUT /me/health).
func (p Profile) ValidatePartial() error {
	if p.Age != 0 {
		if err := ValidateAge(p.Age); err != nil {
			return err
		}
	}
	if p.HeightCm != 0 {
		if err := ValidateHeight(p.HeightCm); err != nil {
			return err
		}
	}
	if p.WeightKg != 0 {
		if err := ValidateWeight(p.WeightKg); err != nil {
			return err
		}
	}
	if p.Gender != "" {
		return ValidateGender(p.Gender)
	}
	return nil
}

// StepInput es lo que manda el cliente al avanzar una pantalla del registro.
type StepInput struct {
	Email    string  `json:"email,omitempty"`
	Password string  `json:"password,omitempty"`
	Age      int     `json:"age,omitempty"`
	HeightCm float64 `json:"height,omitempty"`
	WeightKg float64 `json:"weight,omitempty"`
	Gender   Gender  `json:"gender,omitempty"`
}

// ValidateStep valida una pantalla por separado antes de pasar a la siguiente.
func ValidateStep(step Step, in StepInput) error {
	switch step {
	case StepAccount:
		return ValidateAccount(in.Email, in.Password)
	case StepAge:
		return ValidateAge(in.Age)
	case StepHeight:
		return ValidateHeight(in.HeightCm)
	case StepWeight:
		return ValidateWeight(in.WeightKg)
	case StepGender:
		return ValidateGender(in.Gender)
	}
	return fmt.Errorf("%w: unknown step %d", ErrInvalidInput, step)
}
