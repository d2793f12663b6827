package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/auction/base/log"
)

// PanicEvent is delivered when the goroutine panicked
type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	onExit  func()
	onPanic func(p interface{}, stack []byte)
}

type Option func(*options)

// OnExit runs after f returns or panics, before the panic is reported
func OnExit(f func()) Option {
	return func(o *options) {
		o.onExit = f
	}
}

// OnPanic runs with the recovered value and the stack of the goroutine
func OnPanic(f func(p interface{}, stack []byte)) Option {
	return func(o *options) {
		o.onPanic = f
	}
}

// Go runs f in a goroutine which never takes the process down. The returned
// channel receives one event if f panicked and is closed otherwise.
func Go(f func(), opts ...Option) <-chan *PanicEvent {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	done := make(chan *PanicEvent, 1)
	go func() {
		defer func() {
			p := recover()
			if o.onExit != nil {
				o.onExit()
			}
			if p == nil {
				close(done)
				return
			}
			stack := debug.Stack()
			log.Log().WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")
			if o.onPanic != nil {
				o.onPanic(p, stack)
			}
			done <- &PanicEvent{p, stack}
		}()
		f()
	}()
	return done
}
