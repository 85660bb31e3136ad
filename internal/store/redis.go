package store

import (
	"fmt"
	"time"

	"github.com/go-redis/redis"
)

// RedisStore implements Store using Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed store and verifies connectivity.
func NewRedis(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping().Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Get retrieves a paste by ID.
func (s *RedisStore) Get(id string) (string, error) {
	val, err := s.client.Get(keyPrefix + id).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Create stores a paste using SetNX (atomic set-if-not-exists).
func (s *RedisStore) Create(id string, body []byte) (bool, error) {
	return s.client.SetNX(keyPrefix+id, string(body), s.ttl).Result()
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
