package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const verifyAudience = "verify-email"

// Tokens issues and parses signed email verification tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type verifyClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewTokens returns a Tokens signing with secret. A zero ttl defaults to 48h.
func NewTokens(secret []byte, issuer string, ttl time.Duration) *Tokens {
	if ttl == 0 {
		ttl = 48 * time.Hour
	}
	return &Tokens{secret: secret, ttl: ttl, issuer: issuer}
}

// IssueVerification returns a token proving control of a's email address.
func (t *Tokens) IssueVerification(a Actor) (string, error) {
	now := time.Now()
	claims := verifyClaims{
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{verifyAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ParseVerification validates token and returns the actor it was issued for.
func (t *Tokens) ParseVerification(token string) (Actor, error) {
	claims := &verifyClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithAudience(verifyAudience), jwt.WithIssuer(t.issuer))
	if err != nil {
		return Actor{}, &AuthError{Kind: KindInvalidToken, Message: ErrInvalidToken.Message, Err: err}
	}
	if !parsed.Valid || claims.Subject == "" {
		return Actor{}, ErrInvalidToken
	}
	return Actor{ID: claims.Subject, Email: claims.Email}, nil
}
