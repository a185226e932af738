package auth

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eringen/showcase/storage"
)

type captureMailer struct {
	email string
	link  string
}

func (c *captureMailer) SendVerification(_ context.Context, email, link string) error {
	c.email, c.link = email, link
	return nil
}

func (c *captureMailer) token(t *testing.T) string {
	t.Helper()
	u, err := url.Parse(c.link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func setupUsers(t *testing.T, allowSignUp bool) (*Users, *captureMailer) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mailer := &captureMailer{}
	u, err := NewUsers(db, UsersConfig{
		AllowSignUp: allowSignUp,
		VerifyURL:   "http://localhost:3000/admin/verify/",
		Tokens:      NewTokens([]byte("test-secret"), "showcase", time.Hour),
		Mailer:      mailer,
		BcryptCost:  bcrypt.MinCost,
	})
	require.NoError(t, err)
	return u, mailer
}

func TestUsersSignUpVerifySignIn(t *testing.T) {
	u, mailer := setupUsers(t, true)
	ctx := context.Background()

	res, err := u.SignUp(ctx, "  Editor@Example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, res.ConfirmationPending)
	assert.Equal(t, "editor@example.com", res.Actor.Email)
	assert.Equal(t, "editor@example.com", mailer.email)

	_, err = u.SignIn(ctx, "editor@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrUnverified)

	actor, err := u.Confirm(ctx, mailer.token(t))
	require.NoError(t, err)
	assert.Equal(t, res.Actor, actor)

	// Following the link twice is harmless.
	_, err = u.Confirm(ctx, mailer.token(t))
	require.NoError(t, err)

	got, err := u.SignIn(ctx, "EDITOR@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, res.Actor.ID, got.ID)
}

func TestUsersSignInWrongPassword(t *testing.T) {
	u, _ := setupUsers(t, false)
	ctx := context.Background()
	_, err := u.Add(ctx, "admin@example.com", "right-password", true)
	require.NoError(t, err)

	_, err = u.SignIn(ctx, "admin@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = u.SignIn(ctx, "nobody@example.com", "right-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUsersSignUpRules(t *testing.T) {
	ctx := context.Background()

	disabled, _ := setupUsers(t, false)
	_, err := disabled.SignUp(ctx, "a@example.com", "long-enough")
	assert.ErrorIs(t, err, ErrSignUpDisabled)

	u, _ := setupUsers(t, true)
	_, err = u.SignUp(ctx, "not-an-email", "long-enough")
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindInvalidInput, ae.Kind)

	_, err = u.SignUp(ctx, "a@example.com", "short")
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindInvalidInput, ae.Kind)
	assert.True(t, strings.Contains(ae.Message, "8"))

	_, err = u.SignUp(ctx, "a@example.com", "long-enough")
	require.NoError(t, err)
	_, err = u.SignUp(ctx, "A@example.com", "long-enough")
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestUsersConfirmRejectsForgedToken(t *testing.T) {
	u, _ := setupUsers(t, true)
	other := NewTokens([]byte("other-secret"), "showcase", time.Hour)
	tok, err := other.IssueVerification(Actor{ID: "x", Email: "x@example.com"})
	require.NoError(t, err)

	_, err = u.Confirm(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUsersSignOutRevokesEarlierSessions(t *testing.T) {
	u, _ := setupUsers(t, false)
	ctx := context.Background()
	actor, err := u.Add(ctx, "admin@example.com", "right-password", true)
	require.NoError(t, err)

	issued := time.Now()
	require.NoError(t, u.Validate(ctx, actor, issued))

	require.NoError(t, u.SignOut(ctx, actor))
	assert.ErrorIs(t, u.Validate(ctx, actor, issued), ErrSessionRevoked)
	assert.NoError(t, u.Validate(ctx, actor, time.Now().Add(time.Second)))

	assert.ErrorIs(t, u.Validate(ctx, Actor{ID: "missing"}, issued), ErrSessionRevoked)
}

func TestUsersExists(t *testing.T) {
	u, _ := setupUsers(t, false)
	ctx := context.Background()

	ok, err := u.Exists(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = u.Add(ctx, "admin@example.com", "right-password", true)
	require.NoError(t, err)
	ok, err = u.Exists(ctx, "Admin@Example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTokensExpire(t *testing.T) {
	tokens := NewTokens([]byte("k"), "showcase", -time.Minute)
	tok, err := tokens.IssueVerification(Actor{ID: "1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = tokens.ParseVerification(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
