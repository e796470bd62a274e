package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/suinsapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL when the key exists without expire
	ErrNoTTL = errors.New("redis: key has no ttl")
)

// Forever stores a key without expire
const Forever = time.Duration(-1)

// Service is the subset of redis commands the caches need.
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	// TTL returns the remaining time to live in seconds
	TTL(c ctx.Ctx, key string) (int, error)
	Del(c ctx.Ctx, keys ...string) (int, error)
	Ping(c ctx.Ctx) error
}
