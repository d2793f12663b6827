package loading

import "sync"

// Indicator is visible while at least one call is in flight. Calls may
// overlap, so it counts instead of toggling.
type Indicator struct {
	mu        sync.Mutex
	inflight  int
	listeners []func(visible bool)
}

func New() *Indicator {
	return &Indicator{}
}

// Track marks one call as started, the returned func ends it and is safe to
// call more than once
func (i *Indicator) Track() func() {
	i.show()
	var once sync.Once
	return func() {
		once.Do(i.hide)
	}
}

// Visible reports whether any call is in flight
func (i *Indicator) Visible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inflight > 0
}

// InFlight returns the number of running calls
func (i *Indicator) InFlight() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inflight
}

// OnChange registers f, called with the new visibility whenever it flips
func (i *Indicator) OnChange(f func(visible bool)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.listeners = append(i.listeners, f)
}

func (i *Indicator) show() {
	i.mu.Lock()
	i.inflight++
	flipped := i.inflight == 1
	listeners := i.listeners
	i.mu.Unlock()

	if flipped {
		notify(listeners, true)
	}
}

func (i *Indicator) hide() {
	i.mu.Lock()
	if i.inflight == 0 {
		i.mu.Unlock()
		return
	}
	i.inflight--
	flipped := i.inflight == 0
	listeners := i.listeners
	i.mu.Unlock()

	if flipped {
		notify(listeners, false)
	}
}

func notify(listeners []func(bool), visible bool) {
	for _, f := range listeners {
		f(visible)
	}
}
