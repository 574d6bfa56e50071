package account

import (
	"context"

	"med-reminder/internal/domain/health"
)

// Gateway son los endpoints de auth y perfil del backend.
type Gateway interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	RegisterOnboarding(ctx context.Context, req OnboardingRequest) (AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	CheckEmail(ctx context.Context, email string) (available bool, err error)

	Me(ctx context.Context) (User, error)
	UpdateMe(ctx context.Context, in ProfileUpdate) (User, error)
	Health(ctx context.Context) (health.Profile, error)
	UpdateHealth(ctx context.Context, p health.Profile) (health.Profile, error)
}
