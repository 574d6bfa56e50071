package medapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"med-reminder/internal/domain/account"
	"med-reminder/internal/domain/admin"
)

var _ admin.Gateway = (*Client)(nil)

func (c *Client) Stats(ctx context.Context) (admin.Stats, error) {
	var out admin.Stats
	err := c.call(ctx, http.MethodGet, "/api/admin/stats", nil, nil, &out)
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]account.User, error) {
	var out []account.User
	if err := c.call(ctx, http.MethodGet, "/api/admin/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetRole(ctx context.Context, userID, role string) (account.User, error) {
	var out account.User
	err := c.call(ctx, http.MethodPut, idPath("/api/admin/users", userID)+"/role", nil, roleBody{Role: role}, &out)
	return out, err
}

func (c *Client) SetLockout(ctx context.Context, userID string, locked bool) (account.User, error) {
	var out account.User
	err := c.call(ctx, http.MethodPut, idPath("/api/admin/users", userID)+"/lockout", nil, lockoutBody{Locked: locked}, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.call(ctx, http.MethodDelete, idPath("/api/admin/users", userID), nil, nil, nil)
}

func (c *Client) AuditLogs(ctx context.Context, q admin.AuditQuery) (admin.AuditPage, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.From != nil {
		v.Set("from", q.From.UTC().Format(time.RFC3339))
	}
	if q.To != nil {
		v.Set("to", q.To.UTC().Format(time.RFC3339))
	}
	if q.Action != "" {
		v.Set("action", q.Action)
	}
	if q.Entity != "" {
		v.Set("entity", q.Entity)
	}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}

	var out admin.AuditPage
	if err := c.call(ctx, http.MethodGet, "/api/admin/audit-logs", v, nil, &out); err != nil {
		return admin.AuditPage{}, err
	}
	if out.Items == nil {
		out.Items = []admin.AuditLog{}
	}
	return out, nil
}

func (c *Client) LogTail(ctx context.Context, lines int) ([]string, error) {
	var out linesData
	if err := c.call(ctx, http.MethodGet, "/api/admin/logs/tail", url.Values{"lines": {strconv.Itoa(lines)}}, nil, &out); err != nil {
		return nil, err
	}
	return out.Lines, nil
}
