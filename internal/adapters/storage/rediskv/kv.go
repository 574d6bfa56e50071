package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"med-reminder/internal/ports/kv"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "med-reminder:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store guarda el estado en Redis sin TTL: el ledger es histórico.
type Store struct {
	client *redis.Client
}

var _ kv.Store = (*Store)(nil)

func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return &Store{client: client}, nil
}

func NewStore(client *redis.Client) *Store { return &Store{client: client} }

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	return b, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
