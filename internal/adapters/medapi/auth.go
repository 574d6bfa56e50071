package medapi

import (
	"context"
	"net/http"
	"net/url"

	"med-reminder/internal/domain/account"
	"med-reminder/internal/domain/health"
)

var _ account.Gateway = (*Client)(nil)

func (c *Client) Login(ctx context.Context, email, password string) (account.AuthResult, error) {
	var out account.AuthResult
	err := c.call(ctx, http.MethodPost, "/api/auth/login", nil, credentialsBody{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, in account.RegisterInput) (account.AuthResult, error) {
	var out account.AuthResult
	err := c.call(ctx, http.MethodPost, "/api/auth/register", nil, in, &out)
	return out, err
}

func (c *Client) RegisterOnboarding(ctx context.Context, req account.OnboardingRequest) (account.AuthResult, error) {
	var out account.AuthResult
	err := c.call(ctx, http.MethodPost, "/api/auth/register/onboarding", nil, req, &out)
	return out, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.call(ctx, http.MethodPost, "/api/auth/forgot-password", nil, emailBody{Email: email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return c.call(ctx, http.MethodPost, "/api/auth/reset-password", nil, resetPasswordBody{Token: resetToken, Password: newPassword}, nil)
}

func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out availabilityData
	err := c.call(ctx, http.MethodGet, "/api/auth/check-email", url.Values{"email": {email}}, nil, &out)
	return out.Available, err
}

func (c *Client) Me(ctx context.Context) (account.User, error) {
	var out account.User
	err := c.call(ctx, http.MethodGet, "/api/users/me", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateMe(ctx context.Context, in account.ProfileUpdate) (account.User, error) {
	var out account.User
	err := c.call(ctx, http.MethodPut, "/api/users/me", nil, in, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) (health.Profile, error) {
	var out health.Profile
	err := c.call(ctx, http.MethodGet, "/api/users/me/health", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateHealth(ctx context.Context, p health.Profile) (health.Profile, error) {
	var out health.Profile
	err := c.call(ctx, http.MethodPut, "/api/users/me/health", nil, p, &out)
	return out, err
}
