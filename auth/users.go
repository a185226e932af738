package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eringen/showcase/storage"
)

const minPasswordLen = 8

// ErrSessionRevoked is returned by Validate when the account signed out (or
// disappeared) after the session was issued.
var ErrSessionRevoked = errors.New("auth: session revoked")

// Mailer delivers verification links.
type Mailer interface {
	SendVerification(ctx context.Context, email, link string) error
}

// LogMailer writes verification links to the log instead of sending mail.
type LogMailer struct {
	Log *zap.Logger
}

func (m LogMailer) SendVerification(_ context.Context, email, link string) error {
	m.Log.Info("verification link", zap.String("email", email), zap.String("link", link))
	return nil
}

// UsersConfig configures a Users store.
type UsersConfig struct {
	AllowSignUp bool
	// VerifyURL is the absolute URL of the verification endpoint; the token
	// is appended as the "token" query parameter.
	VerifyURL  string
	Tokens     *Tokens
	Mailer     Mailer
	BcryptCost int
	Logger     *zap.Logger
}

// Users is the email/password account store backing the admin surface.
// It implements Provider.
type Users struct {
	db     *sql.DB
	cfg    UsersConfig
	log    *zap.Logger
	now    func() time.Time
	valid  *validator.Validate
	dummy  []byte
	dummyO sync.Once
}

var _ Provider = (*Users)(nil)

// NewUsers returns a Users store on db and ensures its schema.
func NewUsers(db *sql.DB, cfg UsersConfig) (*Users, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Mailer == nil {
		cfg.Mailer = LogMailer{Log: cfg.Logger}
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Tokens == nil {
		return nil, errors.New("auth: UsersConfig.Tokens is required")
	}
	u := &Users{
		db:    db,
		cfg:   cfg,
		log:   cfg.Logger,
		now:   time.Now,
		valid: validator.New(),
	}
	if err := storage.Migrate(db, `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    verified_at INTEGER,
    signed_out_at INTEGER,
    created_at INTEGER NOT NULL
);`); err != nil {
		return nil, fmt.Errorf("auth: users schema: %w", err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignIn checks the password of a verified account.
func (u *Users) SignIn(ctx context.Context, email, password string) (Actor, error) {
	email = normalizeEmail(email)
	var (
		id       string
		hash     string
		verified sql.NullInt64
	)
	err := u.db.QueryRowContext(ctx,
		`SELECT id, password_hash, verified_at FROM users WHERE email = ?`, email).
		Scan(&id, &hash, &verified)
	if errors.Is(err, sql.ErrNoRows) {
		// Spend the same bcrypt time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(u.dummyHash(), []byte(password))
		return Actor{}, ErrInvalidCredentials
	}
	if err != nil {
		return Actor{}, unavailable(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Actor{}, ErrInvalidCredentials
	}
	if !verified.Valid {
		return Actor{}, ErrUnverified
	}
	return Actor{ID: id, Email: email}, nil
}

// SignUp creates an unverified account and mails a verification link.
func (u *Users) SignUp(ctx context.Context, email, password string) (SignUpResult, error) {
	if !u.cfg.AllowSignUp {
		return SignUpResult{}, ErrSignUpDisabled
	}
	actor, err := u.create(ctx, email, password, false)
	if err != nil {
		return SignUpResult{}, err
	}
	token, err := u.cfg.Tokens.IssueVerification(actor)
	if err != nil {
		return SignUpResult{}, unavailable(err)
	}
	link := u.cfg.VerifyURL + "?token=" + token
	if err := u.cfg.Mailer.SendVerification(ctx, actor.Email, link); err != nil {
		u.log.Warn("sign-up: verification mail failed", zap.String("email", actor.Email), zap.Error(err))
	}
	return SignUpResult{Actor: actor, ConfirmationPending: true}, nil
}

// Add creates an account directly, bypassing the sign-up switch. It is
// used to bootstrap the first admin and by the CLI.
func (u *Users) Add(ctx context.Context, email, password string, verified bool) (Actor, error) {
	return u.create(ctx, email, password, verified)
}

func (u *Users) create(ctx context.Context, email, password string, verified bool) (Actor, error) {
	email = normalizeEmail(email)
	if err := u.valid.Var(email, "required,email"); err != nil {
		return Actor{}, invalidInput("enter a valid email address")
	}
	if len(password) < minPasswordLen {
		return Actor{}, invalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.cfg.BcryptCost)
	if err != nil {
		return Actor{}, invalidInput("password cannot be used")
	}
	now := u.now().UnixNano()
	var verifiedAt sql.NullInt64
	if verified {
		verifiedAt = sql.NullInt64{Int64: now, Valid: true}
	}
	actor := Actor{ID: uuid.NewString(), Email: email}
	_, err = u.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, verified_at, created_at) VALUES (?, ?, ?, ?, ?)`,
		actor.ID, email, string(hash), verifiedAt, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Actor{}, ErrAccountExists
		}
		return Actor{}, unavailable(err)
	}
	return actor, nil
}

// Confirm marks the account named by a verification token as verified.
// Confirming an already verified account succeeds.
func (u *Users) Confirm(ctx context.Context, token string) (Actor, error) {
	actor, err := u.cfg.Tokens.ParseVerification(token)
	if err != nil {
		return Actor{}, err
	}
	res, err := u.db.ExecContext(ctx,
		`UPDATE users SET verified_at = ? WHERE id = ? AND email = ? AND verified_at IS NULL`,
		u.now().UnixNano(), actor.ID, actor.Email)
	if err != nil {
		return Actor{}, unavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return actor, nil
	}
	var exists int
	err = u.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE id = ? AND email = ? AND verified_at IS NOT NULL`,
		actor.ID, actor.Email).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return Actor{}, ErrInvalidToken
	}
	if err != nil {
		return Actor{}, unavailable(err)
	}
	return actor, nil
}

// SignOut revokes every session issued to a before now.
func (u *Users) SignOut(ctx context.Context, a Actor) error {
	_, err := u.db.ExecContext(ctx,
		`UPDATE users SET signed_out_at = ? WHERE id = ?`, u.now().UnixNano(), a.ID)
	return err
}

// Validate reports whether a session issued to a at issuedAt is still good.
func (u *Users) Validate(ctx context.Context, a Actor, issuedAt time.Time) error {
	var signedOut sql.NullInt64
	var verified sql.NullInt64
	err := u.db.QueryRowContext(ctx,
		`SELECT signed_out_at, verified_at FROM users WHERE id = ?`, a.ID).
		Scan(&signedOut, &verified)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSessionRevoked
	}
	if err != nil {
		return unavailable(err)
	}
	if !verified.Valid {
		return ErrSessionRevoked
	}
	if signedOut.Valid && signedOut.Int64 >= issuedAt.UnixNano() {
		return ErrSessionRevoked
	}
	return nil
}

// Exists reports whether an account with email exists.
func (u *Users) Exists(ctx context.Context, email string) (bool, error) {
	var one int
	err := u.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE email = ?`, normalizeEmail(email)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (u *Users) dummyHash() []byte {
	u.dummyO.Do(func() {
		u.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), u.cfg.BcryptCost)
	})
	return u.dummy
}
