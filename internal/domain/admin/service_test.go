package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"med-reminder/internal/domain/account"
)

type fakeGateway struct {
	lastQuery AuditQuery
	lastTail  int
	role      string
}

func (f *fakeGateway) Stats(context.Context) (Stats, error) { return Stats{TotalUsers: 3}, nil }

func (f *fakeGateway) Users(context.Context) ([]account.User, error) {
	return []account.User{{ID: "u1"}}, nil
}

func (f *fakeGateway) SetRole(_ context.Context, id, role string) (account.User, error) {
	f.role = role
	return account.User{ID: id, Role: role}, nil
}

func (f *fakeGateway) SetLockout(_ context.Context, id string, locked bool) (account.User, error) {
	return account.User{ID: id, Locked: locked}, nil
}

func (f *fakeGateway) DeleteUser(context.Context, string) error { return nil }

func (f *fakeGateway) AuditLogs(_ context.Context, q AuditQuery) (AuditPage, error) {
	f.lastQuery = q
	return AuditPage{Page: q.Page, Limit: q.Limit}, nil
}

func (f *fakeGateway) LogTail(_ context.Context, n int) ([]string, error) {
	f.lastTail = n
	return []string{"line"}, nil
}

func TestAuditLogs_NormalizesPaging(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, nil)
	ctx := context.Background()

	if _, err := svc.AuditLogs(ctx, AuditQuery{}); err != nil {
		t.Fatalf("audit: %v", err)
	}
	if gw.lastQuery.Page != 1 || gw.lastQuery.Limit != DefaultPageSize {
		t.Fatalf("unexpected defaults %+v", gw.lastQuery)
	}

	_, _ = svc.AuditLogs(ctx, AuditQuery{Page: 3, Limit: 500, Action: " login "})
	if gw.lastQuery.Limit != MaxPageSize || gw.lastQuery.Action != "login" {
		t.Fatalf("unexpected normalization %+v", gw.lastQuery)
	}

	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.AuditLogs(ctx, AuditQuery{From: &from, To: &to}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}
}

func TestSetRole_Validation(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, nil)

	if _, err := svc.SetRole(context.Background(), "u1", "superuser"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	u, err := svc.SetRole(context.Background(), "u1", " Moderator ")
	if err != nil || u.Role != "moderator" || gw.role != "moderator" {
		t.Fatalf("unexpected %+v %v", u, err)
	}
}

func TestLogTail_Clamps(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, nil)
	_, _ = svc.LogTail(context.Background(), 0)
	if gw.lastTail != DefaultTail {
		t.Fatalf("expected default tail, got %d", gw.lastTail)
	}
	_, _ = svc.LogTail(context.Background(), 5000)
	if gw.lastTail != MaxTail {
		t.Fatalf("expected max tail, got %d", gw.lastTail)
	}
}
