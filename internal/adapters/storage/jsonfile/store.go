package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"med-reminder/internal/ports/kv"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store guarda cada clave como <dir>/<key>.json. Es el almacenamiento por defecto
// del dispositivo.
type Store struct {
	dir string
	mu  sync.Mutex
}

var _ kv.Store = (*Store)(nil)

// DefaultDir es <config del usuario>/med-reminder.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "med-reminder"), nil
}

func Open(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("jsonfile: resolve dir: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("jsonfile: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kv.ErrNotFound
	}
	return b, err
}

// Set escribe a un temporal y renombra: un corte a mitad no deja el archivo truncado.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("jsonfile: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
