package kv

import (
	"context"
	"errors"
)

// Keys fijas del almacenamiento en dispositivo.
const (
	KeyCompletions = "completedMedicines"
	KeySideEffects = "sideEffects"
	KeyAuthToken   = "authToken"
)

var ErrNotFound = errors.New("kv: key not found")

// Store es un mapa plano clave -> bytes (JSON). Sin versionado ni migraciones.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
