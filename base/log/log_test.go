package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	req := require.New(t)
	defer SetLevel("info")

	req.True(SetLevel("debug"))
	req.True(SetLevel("ERROR"))
	req.False(SetLevel("loud"))
}

func TestWithFieldDoesNotShareBacking(t *testing.T) {
	req := require.New(t)
	base := Log().WithField("a", 1)
	l1 := base.WithField("b", 2)
	l2 := base.WithError(errors.New("boom"))

	req.Equal([]interface{}{"a", 1, "b", 2}, l1.fields)
	req.Equal("err", l2.fields[2])
	req.Len(base.fields, 2)
}
