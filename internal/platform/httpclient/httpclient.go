package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20 // 1MB
)

// Client envuelve *http.Client con helpers comunes para adapters
// (backend REST, Nominatim, Overpass).
type Client struct {
	HTTP      *http.Client
	BaseURL   string // opcional; si se define, DoJSON puede recibir paths relativos
	UserAgent string

	// Limiter opcional: si viene, cada request espera su turno (p.ej. Nominatim 1 req/s).
	Limiter *rate.Limiter
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.UserAgent = strings.TrimSpace(ua) }
}

// WithRateLimit limita a rps requests por segundo con ráfaga burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTransport permite inyectar un RoundTripper (p.ej. para tests).
func WithTransport(tr http.RoundTripper) Option {
	return func(c *Client) {
		if tr != nil {
			c.HTTP.Transport = tr
		}
	}
}

// New crea un Client. baseURL puede ir vacío si siempre se usan URLs absolutas.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{HTTP: &http.Client{Timeout: timeout}}

	if strings.TrimSpace(baseURL) != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		c.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}

	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// HTTPError representa una respuesta no-2xx. Body queda crudo (limitado a 1MB)
// para que cada adapter decida cómo leer el mensaje del servidor.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Request describe una llamada JSON.
type Request struct {
	Method  string
	Path    string // URL absoluta o path relativo a BaseURL
	Query   url.Values
	Headers map[string]string
	Body    any // nil => sin body
}

// DoJSON ejecuta req y decodifica la respuesta 2xx en out (si out != nil).
// Status no-2xx => *HTTPError.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	raw, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// Do ejecuta req y devuelve el body crudo de una respuesta 2xx.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		switch b := req.Body.(type) {
		case io.Reader:
			body = b
		default:
			encoded, err := json.Marshal(b)
			if err != nil {
				return nil, fmt.Errorf("httpclient: marshal json: %w", err)
			}
			body = bytes.NewReader(encoded)
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	hr, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}

	hr.Header.Set("Accept", "application/json")
	if req.Body != nil {
		if _, isReader := req.Body.(io.Reader); !isReader {
			hr.Header.Set("Content-Type", "application/json")
		}
	}
	if c.UserAgent != "" {
		hr.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range req.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		hr.Header.Set(k, v)
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("httpclient: rate limit wait: %w", err)
		}
	}

	resp, err := c.HTTP.Do(hr)
	if err != nil {
		return nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, nil
}

func (c *Client) resolveURL(pathOrURL string, q url.Values) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	full := pathOrURL
	if !strings.HasPrefix(pathOrURL, "http://") && !strings.HasPrefix(pathOrURL, "https://") {
		// Si no es absoluta, requiere BaseURL.
		if c.BaseURL == "" {
			return "", errors.New("httpclient: relative path requires BaseURL")
		}
		if !strings.HasPrefix(pathOrURL, "/") {
			pathOrURL = "/" + pathOrURL
		}
		full = c.BaseURL + pathOrURL
	}

	if len(q) == 0 {
		return full, nil
	}
	sep := "?"
	if strings.Contains(full, "?") {
		sep = "&"
	}
	return full + sep + q.Encode(), nil
}
