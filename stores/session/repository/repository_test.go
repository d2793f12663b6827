package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/redis"
	mockRedis "github.com/x-xyz/auction/service/redis/mocks"
)

func TestMemory(t *testing.T) {
	s := NewMemory()
	_, ok := s.Get()
	assert.False(t, ok)

	assert.Equal(t, domain.ErrNoCredential, s.Set(""))
	assert.NoError(t, s.Set("tkn"))
	tkn, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "tkn", tkn)

	s.Clear()
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestRedis(t *testing.T) {
	r := &mockRedis.Service{}
	key := "session:acme:token"
	s := NewRedis(r, "acme", time.Hour)

	r.On("Get", mock.Anything, key).Return(nil, redis.ErrNotFound).Once()
	_, ok := s.Get()
	assert.False(t, ok)

	r.On("Set", mock.Anything, key, []byte("tkn"), time.Hour).Return(nil).Once()
	assert.NoError(t, s.Set("tkn"))

	r.On("Get", mock.Anything, key).Return([]byte("tkn"), nil).Once()
	tkn, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "tkn", tkn)

	r.On("Get", mock.Anything, key).Return(nil, errors.New("conn refused")).Once()
	_, ok = s.Get()
	assert.False(t, ok)

	r.On("Del", mock.Anything, key).Return(1, nil).Once()
	s.Clear()

	r.AssertExpectations(t)
}

func TestRedisTenantsAreSeparate(t *testing.T) {
	r := &mockRedis.Service{}
	r.On("Set", mock.Anything, "session:a:token", []byte("ta"), time.Duration(0)).Return(nil).Once()
	r.On("Set", mock.Anything, "session:b:token", []byte("tb"), time.Duration(0)).Return(nil).Once()

	assert.NoError(t, NewRedis(r, "a", 0).Set("ta"))
	assert.NoError(t, NewRedis(r, "b", 0).Set("tb"))
	r.AssertExpectations(t)
}
