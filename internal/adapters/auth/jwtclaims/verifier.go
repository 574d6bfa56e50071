package jwtclaims

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"med-reminder/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenExpired = errors.New("token is expired")
	ErrNoSubject    = errors.New("token claims missing user id")
)

// tokenClaims cubre las variantes de id que emite el backend (sub, id, userId).
type tokenClaims struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier leyendo los claims del token del backend.
// Con secret verifica la firma HMAC; sin secret solo decodifica y revisa exp
// (el backend vuelve a validar en cada llamada).
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret)), now: time.Now}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	c := &tokenClaims{}
	if len(v.secret) > 0 {
		_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
			return v.secret, nil
		},
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithTimeFunc(v.now),
		)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrTokenExpired
		}
		if err != nil {
			return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, c); err != nil {
			return auth.Claims{}, fmt.Errorf("jwt decode failed: %w", err)
		}
		if c.ExpiresAt != nil && !v.now().Before(c.ExpiresAt.Time) {
			return auth.Claims{}, ErrTokenExpired
		}
	}

	out := auth.Claims{
		UserID: firstNonEmpty(c.Subject, c.ID, c.UserID),
		Email:  strings.TrimSpace(c.Email),
		Role:   strings.ToLower(strings.TrimSpace(c.Role)),
		Token:  token,
	}
	if out.UserID == "" {
		return auth.Claims{}, ErrNoSubject
	}
	if out.Role == "" {
		out.Role = auth.RoleUser
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
