package medapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"med-reminder/internal/platform/httpclient"
	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/backend"
)

// Config del cliente del backend REST.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// TokenFunc devuelve el bearer token a usar para ctx ("" => request anónimo).
type TokenFunc func(ctx context.Context) string

// Client implementa los gateways de dominio contra el backend.
// No reintenta: los errores se clasifican y suben tal cual.
type Client struct {
	http           *httpclient.Client
	token          TokenFunc
	onUnauthorized func(ctx context.Context)
	log            logger.Logger
}

type Option func(*Client)

func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithUnauthorizedHook se llama ante cada 401 (p.ej. para borrar la sesión guardada).
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{log: logger.Nop()}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With(map[string]any{"component": "medapi"})

	if strings.TrimSpace(cfg.BaseURL) == "" {
		return c, nil
	}
	hopts := []httpclient.Option{httpclient.WithUserAgent(cfg.UserAgent)}
	if cfg.Transport != nil {
		hopts = append(hopts, httpclient.WithTransport(cfg.Transport))
	}
	hc, err := httpclient.New(cfg.BaseURL, cfg.Timeout, hopts...)
	if err != nil {
		return nil, err
	}
	c.http = hc
	return c, nil
}

func (c *Client) IsConfigured() bool { return c != nil && c.http != nil }

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if !c.IsConfigured() {
		return backend.ErrNotConfigured
	}

	req := httpclient.Request{Method: method, Path: path, Query: query, Body: body}
	if c.token != nil {
		if tok := strings.TrimSpace(c.token(ctx)); tok != "" {
			req.Headers = map[string]string{"Authorization": "Bearer " + tok}
		}
	}

	raw, err := c.http.Do(ctx, req)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			return c.classify(ctx, method, path, he)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("backend request failed", map[string]any{"method": method, "path": path, "error": err})
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}

	if err := decodeEnvelope(raw, out); err != nil {
		c.log.Warn("backend response rejected", map[string]any{"method": method, "path": path, "error": err})
		return err
	}
	return nil
}

func (c *Client) classify(ctx context.Context, method, path string, he *httpclient.HTTPError) error {
	switch he.StatusCode {
	case http.StatusUnauthorized:
		c.log.Info("backend returned 401, clearing session", map[string]any{"path": path})
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return backend.ErrUnauthorized
	case http.StatusTooManyRequests:
		return backend.ErrRateLimited
	}

	msg := serverMessage(he.Body)
	if msg == "" {
		msg = backend.GenericMessage
	}
	c.log.Debug("backend error", map[string]any{"method": method, "path": path, "status": he.StatusCode})
	return &backend.APIError{Status: he.StatusCode, Message: msg}
}

func serverMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if m := strings.TrimSpace(e.Message); m != "" {
		return m
	}
	return strings.TrimSpace(e.Error)
}

func idPath(prefix, id string) string {
	return prefix + "/" + url.PathEscape(strings.TrimSpace(id))
}
