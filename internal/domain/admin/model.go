package admin

import (
	"context"
	"time"

	"med-reminder/internal/domain/account"
)

type Stats struct {
	TotalUsers     int            `json:"totalUsers"`
	ActiveUsers    int            `json:"activeUsers"`
	LockedUsers    int            `json:"lockedUsers"`
	TotalMedicines int            `json:"totalMedicines"`
	UsersByRole    map[string]int `json:"usersByRole,omitempty"`
}

type AuditLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId,omitempty"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditQuery: paginado + filtros opcionales.
type AuditQuery struct {
	Page   int
	Limit  int
	From   *time.Time
	To     *time.Time
	Action string
	Entity string
	UserID string
}

type AuditPage struct {
	Items []AuditLog `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int        `json:"total"`
}

type Gateway interface {
	Stats(ctx context.Context) (Stats, error)
	Users(ctx context.Context) ([]account.User, error)
	SetRole(ctx context.Context, userID, role string) (account.User, error)
	SetLockout(ctx context.Context, userID string, locked bool) (account.User, error)
	DeleteUser(ctx context.Context, userID string) error
	AuditLogs(ctx context.Context, q AuditQuery) (AuditPage, error)
	LogTail(ctx context.Context, lines int) ([]string, error)
}
