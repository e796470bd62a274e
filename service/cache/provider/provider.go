package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/suinsapi/base/ctx"
)

var (
	ErrNotFound = errors.New("cache not found")
)

// Provider stores raw bytes with a ttl. Get returns the remaining ttl, zero
// when the entry never expires.
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
