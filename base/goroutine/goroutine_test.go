package goroutine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoRecoversPanic(t *testing.T) {
	res := []string{}

	ev := <-Go(
		func() {
			res = append(res, "run task")
			panic("boom")
		},
		OnExit(func() {
			res = append(res, "exit")
		}),
		OnPanic(func(p interface{}, stack []byte) {
			res = append(res, "recovered", p.(string))
		}),
	)

	assert.NotNil(t, ev)
	assert.Equal(t, "boom", ev.Panic)
	assert.Equal(t, []string{"run task", "exit", "recovered", "boom"}, res)
}

func TestGoClosesOnReturn(t *testing.T) {
	ran := false
	ev, ok := <-Go(func() { ran = true })
	assert.True(t, ran)
	assert.False(t, ok)
	assert.Nil(t, ev)
}
