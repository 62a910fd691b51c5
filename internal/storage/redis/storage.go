package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/fleetbattle-console/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface. Every
// write is announced on a channel so other consoles sharing the Redis can
// follow logins and logouts.
type Storage struct {
	client *redis.Client
	cfg    Config
	origin string
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		origin: uuid.NewString(),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage = (*Storage)(nil)
	_ storage.Watcher = (*Storage)(nil)
)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, valueKey(s.cfg.KeyPrefix, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (s *Storage) Put(ctx context.Context, values map[string]string) error {
	// Use a transaction so readers see both values or neither
	pipe := s.client.TxPipeline()
	for k, v := range values {
		pipe.Set(ctx, valueKey(s.cfg.KeyPrefix, k), v, 0) // No TTL
	}
	for k := range values {
		pipe.Publish(ctx, eventsChannel(s.cfg.KeyPrefix), s.message(k))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = valueKey(s.cfg.KeyPrefix, k)
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, redisKeys...)
	for _, k := range keys {
		pipe.Publish(ctx, eventsChannel(s.cfg.KeyPrefix), s.message(k))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Watch subscribes to the change channel and reports writes made by other
// Storage instances. Writes made through this instance are skipped.
func (s *Storage) Watch(ctx context.Context, fn func(key string)) error {
	sub := s.client.Subscribe(ctx, eventsChannel(s.cfg.KeyPrefix))
	defer func() { _ = sub.Close() }()

	// Wait for the subscription to be confirmed before reporting readiness
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			origin, key, found := strings.Cut(msg.Payload, "|")
			if !found || origin == s.origin {
				continue
			}
			fn(key)
		}
	}
}

func (s *Storage) message(key string) string {
	return s.origin + "|" + key
}
