// Package auth tracks who is signed in to the admin surface.
//
// A Manager owns the session lifecycle (absent, pending, present) and
// notifies subscribers on every transition. A Guard derives the rendering
// state of protected pages from a Manager. Users is the email/password
// account store the Manager signs in against.
package auth

import "context"

// Actor is the authenticated identity behind a session.
type Actor struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored in ctx, if any.
func ActorFrom(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	if !ok || a.ID == "" {
		return Actor{}, false
	}
	return a, true
}
