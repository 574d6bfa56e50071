package admin

import (
	"context"
	"errors"
	"strings"

	"med-reminder/internal/domain/account"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/auth"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultTail     = 100
	MaxTail         = 1000
)

type Service struct {
	gw  Gateway
	log logger.Logger
}

func NewService(gw Gateway, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{gw: gw, log: log.With(map[string]any{"component": "admin"})}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) { return s.gw.Stats(ctx) }

func (s *Service) Users(ctx context.Context) ([]account.User, error) { return s.gw.Users(ctx) }

func (s *Service) SetRole(ctx context.Context, userID, role string) (account.User, error) {
	userID = strings.TrimSpace(userID)
	role = strings.ToLower(strings.TrimSpace(role))
	if userID == "" {
		return account.User{}, ErrInvalidInput
	}
	switch role {
	case auth.RoleUser, auth.RoleModerator, auth.RoleAdmin:
	default:
		return account.User{}, ErrInvalidInput
	}
	u, err := s.gw.SetRole(ctx, userID, role)
	if err != nil {
		return account.User{}, err
	}
	s.log.Info("user role changed", map[string]any{"user_id": userID, "role": role})
	return u, nil
}

func (s *Service) SetLockout(ctx context.Context, userID string, locked bool) (account.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return account.User{}, ErrInvalidInput
	}
	u, err := s.gw.SetLockout(ctx, userID, locked)
	if err != nil {
		return account.User{}, err
	}
	s.log.Info("user lockout changed", map[string]any{"user_id": userID, "locked": locked})
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}
	if err := s.gw.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info("user deleted", map[string]any{"user_id": userID})
	return nil
}

// AuditLogs normaliza la paginación antes de consultar.
func (s *Service) AuditLogs(ctx context.Context, q AuditQuery) (AuditPage, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return AuditPage{}, ErrInvalidInput
	}
	q.Action = strings.TrimSpace(q.Action)
	q.Entity = strings.TrimSpace(q.Entity)
	q.UserID = strings.TrimSpace(q.UserID)
	return s.gw.AuditLogs(ctx, q)
}

func (s *Service) LogTail(ctx context.Context, lines int) ([]string, error) {
	if lines <= 0 {
		lines = DefaultTail
	}
	if lines > MaxTail {
		lines = MaxTail
	}
	return s.gw.LogTail(ctx, lines)
}
