package auth

import "errors"

// ErrorKind classifies an AuthError.
type ErrorKind int

const (
	KindInvalidCredentials ErrorKind = iota + 1
	KindUnverified
	KindUnavailable
	KindAccountExists
	KindSignUpDisabled
	KindInvalidInput
	KindInvalidToken
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnverified:
		return "unverified"
	case KindUnavailable:
		return "unavailable"
	case KindAccountExists:
		return "account_exists"
	case KindSignUpDisabled:
		return "signup_disabled"
	case KindInvalidInput:
		return "invalid_input"
	case KindInvalidToken:
		return "invalid_token"
	}
	return "unknown"
}

// AuthError is returned by sign-in, sign-up and verification. Message is
// safe to show to the person at the login form.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is matches another *AuthError of the same kind, so sentinels below work
// with errors.Is.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials, Message: "invalid email or password"}
	ErrUnverified         = &AuthError{Kind: KindUnverified, Message: "account not verified, check your inbox"}
	ErrUnavailable        = &AuthError{Kind: KindUnavailable, Message: "auth service unavailable, try again"}
	ErrAccountExists      = &AuthError{Kind: KindAccountExists, Message: "an account with this email already exists"}
	ErrSignUpDisabled     = &AuthError{Kind: KindSignUpDisabled, Message: "sign-up is disabled"}
	ErrInvalidToken       = &AuthError{Kind: KindInvalidToken, Message: "verification link is invalid or expired"}
)

func invalidInput(msg string) *AuthError {
	return &AuthError{Kind: KindInvalidInput, Message: msg}
}

func unavailable(err error) *AuthError {
	return &AuthError{Kind: KindUnavailable, Message: ErrUnavailable.Message, Err: err}
}

// asAuthError coerces any provider error into an *AuthError so callers
// always receive a displayable message.
func asAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	return unavailable(err)
}
