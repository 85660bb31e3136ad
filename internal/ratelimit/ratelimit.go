// Package ratelimit limits emulator requests per client IP.
package ratelimit

import (
	"fmt"
	"time"

	rate "github.com/wallstreetcn/rate/redis"

	"github.com/tombowditch/pasters/internal/store"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// Rule is a token bucket: Burst requests, refilled one per Every.
type Rule struct {
	Prefix string
	Every  time.Duration
	Burst  int
}

var (
	// Create allows 1 paste per 5 seconds per IP.
	Create = Rule{Prefix: "pasters_create_rl_", Every: 5 * time.Second, Burst: 1}
	// Fetch allows 1 request per second per IP.
	Fetch = Rule{Prefix: "pasters_get_rl_", Every: time.Second, Burst: 1}
)

// RedisLimiter applies a Rule through the shared Redis rate limiter.
type RedisLimiter struct {
	rule Rule
}

// Init points the rate limiter library at Redis. The library keeps its own
// connection, separate from the paste store's.
func Init(redisURI, password string) error {
	host, port := store.ParseRedisURI(redisURI)
	if err := rate.SetRedis(&rate.ConfigRedis{
		Host: host,
		Port: port,
		Auth: password,
	}); err != nil {
		return fmt.Errorf("initializing rate limiter: %w", err)
	}
	return nil
}

// NewRedis returns a limiter for rule. Init must have been called.
func NewRedis(rule Rule) *RedisLimiter {
	return &RedisLimiter{rule: rule}
}

func (l *RedisLimiter) Allow(key string) bool {
	return rate.NewLimiter(rate.Every(l.rule.Every), l.rule.Burst, l.rule.Prefix+key).Allow()
}

// Unlimited allows everything. The emulator uses it without Redis.
type Unlimited struct{}

func (Unlimited) Allow(string) bool { return true }
