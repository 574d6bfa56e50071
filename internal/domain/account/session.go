package account

import (
	"context"
	"errors"
	"strings"
	"sync"

	"med-reminder/internal/platform/logger"
	"med-reminder/internal/ports/kv"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session guarda el bearer token del backend en el almacenamiento del dispositivo.
type Session struct {
	kv  kv.Store
	log logger.Logger

	mu     sync.RWMutex
	token  string
	loaded bool
}

func NewSession(store kv.Store, log logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{kv: store, log: log.With(map[string]any{"component": "session"})}
}

// ValidTokenShape: JWT de tres segmentos no vacíos separados por punto.
func ValidTokenShape(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return false
		}
	}
	return true
}

// Load lee el token guardado. Un valor corrupto se descarta.
func (s *Session) Load(ctx context.Context) {
	raw, err := s.kv.Get(ctx, kv.KeyAuthToken)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true

	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn("could not read session token", map[string]any{"error": err})
		}
		return
	}
	token := strings.TrimSpace(string(raw))
	if !ValidTokenShape(token) {
		s.log.Warn("discarding malformed session token", nil)
		_ = s.kv.Delete(ctx, kv.KeyAuthToken)
		return
	}
	s.token = token
}

func (s *Session) Token(ctx context.Context) string {
	s.mu.RLock()
	loaded, token := s.loaded, s.token
	s.mu.RUnlock()
	if !loaded {
		s.Load(ctx)
		s.mu.RLock()
		token = s.token
		s.mu.RUnlock()
	}
	return token
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if !ValidTokenShape(token) {
		return ErrInvalidToken
	}
	s.mu.Lock()
	s.token = token
	s.loaded = true
	s.mu.Unlock()

	if err := s.kv.Set(ctx, kv.KeyAuthToken, []byte(token)); err != nil {
		s.log.Error("could not persist session token", map[string]any{"error": err})
	}
	return nil
}

// Clear se llama en logout y ante cualquier 401 del backend.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.loaded = true
	s.mu.Unlock()

	if err := s.kv.Delete(ctx, kv.KeyAuthToken); err != nil && !errors.Is(err, kv.ErrNotFound) {
		s.log.Error("could not delete session token", map[string]any{"error": err})
	}
	if had {
		s.log.Info("session cleared", nil)
	}
}
