package auth

import "sync"

// GuardState is what a guarded view should render.
type GuardState int

const (
	GuardLoading GuardState = iota
	GuardUnauthenticated
	GuardAuthenticated
)

func (s GuardState) String() string {
	switch s {
	case GuardUnauthenticated:
		return "unauthenticated"
	case GuardAuthenticated:
		return "authenticated"
	}
	return "loading"
}

// Guard is a live view over a Manager. It starts in GuardLoading, leaves it
// once when the Manager resolves, and then follows every change between
// authenticated and unauthenticated. It never returns to loading.
type Guard struct {
	mu          sync.Mutex
	state       GuardState
	render      func(GuardState)
	unsubscribe func()
}

// NewGuard renders GuardLoading, subscribes to m, and renders the resolved
// state immediately if m is already resolved. render may be nil.
func NewGuard(m *Manager, render func(GuardState)) *Guard {
	if render == nil {
		render = func(GuardState) {}
	}
	g := &Guard{state: GuardLoading, render: render}
	render(GuardLoading)
	g.unsubscribe = m.Subscribe(g.apply)
	if m.Resolved() {
		g.apply(m.Current())
	}
	return g
}

// State returns the current guard state.
func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Close stops following the Manager.
func (g *Guard) Close() {
	g.unsubscribe()
}

func (g *Guard) apply(s Session) {
	next := GuardUnauthenticated
	if s.Present() {
		next = GuardAuthenticated
	}
	g.mu.Lock()
	if g.state == next {
		g.mu.Unlock()
		return
	}
	g.state = next
	g.mu.Unlock()
	g.render(next)
}
