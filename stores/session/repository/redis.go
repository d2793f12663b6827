package repository

import (
	"time"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/domain/keys"
	"github.com/x-xyz/auction/service/redis"
)

type redisStore struct {
	redis redis.Service
	key   string
	ttl   time.Duration
}

// NewRedis shares the credential of tenant between processes. ttl of 0
// keeps it until cleared.
func NewRedis(r redis.Service, tenant string, ttl time.Duration) domain.CredentialStore {
	return &redisStore{
		redis: r,
		key:   keys.RedisKey(keys.PfxSession, tenant, "token"),
		ttl:   ttl,
	}
}

func (s *redisStore) Get() (string, bool) {
	c := ctx.WithValue(ctx.Background(), "key", s.key)
	val, err := s.redis.Get(c, s.key)
	if err == redis.ErrNotFound {
		return "", false
	} else if err != nil {
		c.WithField("err", err).Error("redis.Get failed")
		return "", false
	}
	return string(val), len(val) > 0
}

func (s *redisStore) Set(token string) error {
	if token == "" {
		return domain.ErrNoCredential
	}
	c := ctx.WithValue(ctx.Background(), "key", s.key)
	if err := s.redis.Set(c, s.key, []byte(token), s.ttl); err != nil {
		c.WithField("err", err).Error("redis.Set failed")
		return err
	}
	return nil
}

func (s *redisStore) Clear() {
	c := ctx.WithValue(ctx.Background(), "key", s.key)
	if _, err := s.redis.Del(c, s.key); err != nil {
		c.WithField("err", err).Error("redis.Del failed")
	}
}
