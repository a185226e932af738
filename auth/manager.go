package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// State is the lifecycle position of a session.
type State int

const (
	StateAbsent State = iota
	StatePending
	StatePresent
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StatePresent:
		return "present"
	}
	return "absent"
}

// Session is a point-in-time snapshot of the Manager's state.
type Session struct {
	State State
	Actor Actor
}

// Present reports whether an actor is signed in.
func (s Session) Present() bool { return s.State == StatePresent }

// SignUpResult describes the outcome of a successful sign-up.
type SignUpResult struct {
	Actor Actor
	// ConfirmationPending is true when the account must be verified
	// before it can sign in.
	ConfirmationPending bool
}

// Provider is the account backend a Manager authenticates against.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Actor, error)
	SignUp(ctx context.Context, email, password string) (SignUpResult, error)
	SignOut(ctx context.Context, actor Actor) error
}

// Manager owns one session and notifies subscribers synchronously on
// every state transition. It is safe for concurrent use.
type Manager struct {
	provider Provider
	log      *zap.Logger

	mu       sync.Mutex
	session  Session
	resolved bool
	subs     map[int]func(Session)
	nextSub  int
}

// NewManager returns a Manager in the unresolved absent state.
func NewManager(p Provider, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		provider: p,
		log:      log,
		subs:     make(map[int]func(Session)),
	}
}

// Current returns the current session snapshot.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Resolved reports whether the initial session state is known.
func (m *Manager) Resolved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolved
}

// Subscribe registers fn to be called after every transition. The returned
// func removes the subscription.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// Restore resolves the initial state from a persisted session. A nil actor
// resolves to absent.
func (m *Manager) Restore(a *Actor) {
	if a == nil {
		m.transition(Session{State: StateAbsent})
		return
	}
	m.transition(Session{State: StatePresent, Actor: *a})
}

// SignIn authenticates and moves the session to present. On failure the
// session is absent and the error is an *AuthError.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.transition(Session{State: StatePending})
	actor, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		m.transition(Session{State: StateAbsent})
		return asAuthError(err)
	}
	m.transition(Session{State: StatePresent, Actor: actor})
	return nil
}

// SignUp creates an account. The session stays absent while confirmation
// is pending.
func (m *Manager) SignUp(ctx context.Context, email, password string) (SignUpResult, error) {
	m.transition(Session{State: StatePending})
	res, err := m.provider.SignUp(ctx, email, password)
	if err != nil {
		m.transition(Session{State: StateAbsent})
		return SignUpResult{}, asAuthError(err)
	}
	if res.ConfirmationPending {
		m.transition(Session{State: StateAbsent})
	} else {
		m.transition(Session{State: StatePresent, Actor: res.Actor})
	}
	return res, nil
}

// SignOut clears the session. The provider call is best effort: its
// failure is logged and local state is cleared regardless.
func (m *Manager) SignOut(ctx context.Context) {
	prev := m.Current()
	m.transition(Session{State: StateAbsent})
	if !prev.Present() {
		return
	}
	if err := m.provider.SignOut(ctx, prev.Actor); err != nil {
		m.log.Warn("sign-out: provider call failed",
			zap.String("actor", prev.Actor.Email), zap.Error(err))
	}
}

// Expire ends a present session without contacting the provider.
func (m *Manager) Expire() {
	if m.Current().Present() {
		m.transition(Session{State: StateAbsent})
	}
}

func (m *Manager) transition(s Session) {
	m.mu.Lock()
	m.session = s
	m.resolved = true
	fns := make([]func(Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
