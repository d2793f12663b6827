package loading

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlappingCalls(t *testing.T) {
	i := New()
	require.False(t, i.Visible())

	end1 := i.Track()
	end2 := i.Track()
	assert.True(t, i.Visible())
	assert.Equal(t, 2, i.InFlight())

	end1()
	assert.True(t, i.Visible(), "second call still running")

	end1()
	assert.Equal(t, 1, i.InFlight(), "ending twice counts once")

	end2()
	assert.False(t, i.Visible())
}

func TestOnChange(t *testing.T) {
	i := New()
	var flips []bool
	i.OnChange(func(v bool) { flips = append(flips, v) })

	end1 := i.Track()
	end2 := i.Track()
	end2()
	end1()

	assert.Equal(t, []bool{true, false}, flips)
}

func TestConcurrent(t *testing.T) {
	i := New()
	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			end := i.Track()
			end()
		}()
	}
	wg.Wait()
	assert.False(t, i.Visible())
	assert.Equal(t, 0, i.InFlight())
}
