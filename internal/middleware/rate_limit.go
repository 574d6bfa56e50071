package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/backend"

	"golang.org/x/time/rate"
)

// limiterStore guarda un limiter por IP.
type limiterStore struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    time.Duration
	burst    int
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.every), s.burst)
		s.limiters[ip] = l
	}
	return l
}

// RateLimit corta con 429 y el mismo texto que mostramos ante un 429 del backend.
// perMinute <= 0 desactiva el límite.
func RateLimit(perMinute int, log logger.Logger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if log == nil {
		log = logger.Nop()
	}
	store := &limiterStore{
		limiters: make(map[string]*rate.Limiter),
		every:    time.Minute / time.Duration(perMinute),
		burst:    perMinute,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !store.get(ip).Allow() {
				log.Warn("rate limit exceeded", map[string]any{"ip": ip, "path": r.URL.Path})
				w.Header().Set("Retry-After", "60")
				http.Error(w, backend.RateLimitMessage, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP asume que chi RealIP ya corrió antes en la cadena.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
