package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/auction/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL when the key never expires
	ErrNoTTL = errors.New("redis: key has no ttl")
)

// Forever can be passed as expire to keep a key without ttl
const Forever time.Duration = 0

// Service is the subset of redis commands the client needs
type Service interface {
	Get(c ctx.Ctx, key string) ([]byte, error)
	Set(c ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(c ctx.Ctx, ks ...string) (int, error)
	Exists(c ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds
	TTL(c ctx.Ctx, key string) (int, error)
	Expire(c ctx.Ctx, key string, ttl time.Duration) error
}
