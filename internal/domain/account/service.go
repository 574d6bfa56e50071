package account

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"med-reminder/internal/domain/health"
	"med-reminder/internal/domain/medicines"
	"med-reminder/internal/platform/logger"
)

// ErrInvalidInput es el mismo sentinel que usan las validaciones de health.
var ErrInvalidInput = health.ErrInvalidInput

type Service struct {
	gw      Gateway
	session *Session
	log     logger.Logger
}

func NewService(gw Gateway, session *Session, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gw: gw, session: session, log: log.With(map[string]any{"component": "account"})}
}

func (s *Service) Session() *Session { return s.session }

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return AuthResult{}, fmt.Errorf("%w: email and password required", ErrInvalidInput)
	}
	res, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return AuthResult{}, err
	}
	return s.start(ctx, res)
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in, err := validateRegister(in)
	if err != nil {
		return AuthResult{}, err
	}
	res, err := s.gw.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return s.start(ctx, res)
}

// RegisterOnboarding valida todos los pasos del registro y manda el bundle
// (cuenta + perfil de salud + medicamentos iniciales) en una sola llamada.
func (s *Service) RegisterOnboarding(ctx context.Context, in OnboardingInput) (AuthResult, error) {
	reg, err := validateRegister(in.RegisterInput)
	if err != nil {
		return AuthResult{}, err
	}
	if err := in.Profile.Validate(); err != nil {
		return AuthResult{}, err
	}

	meds := make([]medicines.Medicine, 0, len(in.Medicines))
	for i, om := range in.Medicines {
		ident, err := medicines.ValidateIdentify(om.Identify)
		if err != nil {
			return AuthResult{}, fmt.Errorf("%w: medicine %d: identify step", ErrInvalidInput, i+1)
		}
		sched, err := medicines.ValidateSchedule(om.Schedule)
		if err != nil {
			return AuthResult{}, fmt.Errorf("%w: medicine %d: schedule step", ErrInvalidInput, i+1)
		}
		meds = append(meds, medicines.Medicine{Name: ident.Name, Type: ident.Type, Dose: ident.Dose, Schedule: sched})
	}

	res, err := s.gw.RegisterOnboarding(ctx, OnboardingRequest{RegisterInput: reg, Profile: in.Profile, Medicines: meds})
	if err != nil {
		return AuthResult{}, err
	}
	return s.start(ctx, res)
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return s.gw.ForgotPassword(ctx, email)
}

func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if strings.TrimSpace(resetToken) == "" {
		return fmt.Errorf("%w: reset token required", ErrInvalidInput)
	}
	if len(newPassword) < health.MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, health.MinPasswordLength)
	}
	return s.gw.ResetPassword(ctx, strings.TrimSpace(resetToken), newPassword)
}

func (s *Service) CheckEmail(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return false, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return s.gw.CheckEmail(ctx, email)
}

func (s *Service) Logout(ctx context.Context) {
	s.session.Clear(ctx)
}

func (s *Service) Me(ctx context.Context) (User, error) { return s.gw.Me(ctx) }

func (s *Service) UpdateMe(ctx context.Context, in ProfileUpdate) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" && in.Email == "" {
		return User{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return User{}, fmt.Errorf("%w: invalid email", ErrInvalidInput)
		}
	}
	return s.gw.UpdateMe(ctx, in)
}

func (s *Service) Health(ctx context.Context) (health.Profile, error) { return s.gw.Health(ctx) }

func (s *Service) UpdateHealth(ctx context.Context, p health.Profile) (health.Profile, error) {
	if err := p.ValidatePartial(); err != nil {
		return health.Profile{}, err
	}
	return s.gw.UpdateHealth(ctx, p)
}

func (s *Service) start(ctx context.Context, res AuthResult) (AuthResult, error) {
	if err := s.session.SetToken(ctx, res.Token); err != nil {
		s.log.Warn("backend returned a malformed token", nil)
		return AuthResult{}, err
	}
	s.log.Info("session started", map[string]any{"user_id": res.User.ID})
	return res, nil
}

func validateRegister(in RegisterInput) (RegisterInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return RegisterInput{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if err := health.ValidateAccount(in.Email, in.Password); err != nil {
		return RegisterInput{}, err
	}
	return in, nil
}
