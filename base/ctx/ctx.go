package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/auction/base/log"
)

type key string

// Ctx bundles a context.Context with a logger carrying the same values
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

// From wraps a plain context, e.g. the request context of an http handler
func From(c context.Context) Ctx {
	if cc, ok := c.(Ctx); ok {
		return cc
	}
	return Ctx{
		Context: c,
		Logger:  log.Log(),
	}
}

// WithValue stores val under k and adds it as a log field
func WithValue(parent Ctx, k string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent.Context, key(k), val),
		Logger:  parent.Logger.WithField(k, val),
	}
}

// Value reads what WithValue stored
func Value(c Ctx, k string) interface{} {
	return c.Context.Value(key(k))
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	c, cancel := context.WithCancel(parent.Context)
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}, cancel
}

// WithTimeout behaves like WithCancel when timeout is not positive
func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	if timeout <= 0 {
		return WithCancel(parent)
	}
	c, cancel := context.WithTimeout(parent.Context, timeout)
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}, cancel
}
