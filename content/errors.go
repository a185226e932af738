package content

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a StoreError.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindPermissionDenied
	KindNetwork
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindNetwork:
		return "store unavailable"
	case KindValidation:
		return "validation failed"
	}
	return "internal error"
}

// FieldError names one invalid field of a create or update.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StoreError is returned by every repository operation.
type StoreError struct {
	Kind   Kind
	Op     string
	Fields []FieldError
	Err    error
}

func (e *StoreError) Error() string {
	var b strings.Builder
	b.WriteString("content: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if len(e.Fields) > 0 {
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = f.Message
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(msgs, "; "))
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is matches any *StoreError of the same kind.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound         = &StoreError{Kind: KindNotFound}
	ErrPermissionDenied = &StoreError{Kind: KindPermissionDenied}
	ErrNetwork          = &StoreError{Kind: KindNetwork}
	ErrValidation       = &StoreError{Kind: KindValidation}
)

// KindOf returns the Kind of err, or KindInternal when err is not a
// StoreError.
func KindOf(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// classify wraps a database error in a StoreError of the matching kind.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	kind := KindInternal
	switch {
	case errors.Is(err, sql.ErrNoRows):
		kind = KindNotFound
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, driver.ErrBadConn),
		strings.Contains(err.Error(), "database is locked"):
		kind = KindNetwork
	}
	return &StoreError{Kind: kind, Op: op, Err: err}
}

func notFound(op, id string) error {
	return &StoreError{Kind: KindNotFound, Op: op, Err: fmt.Errorf("no entity with id %q", id)}
}

func validationError(op string, err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &StoreError{Kind: KindValidation, Op: op, Err: err}
	}
	fields := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &StoreError{Kind: KindValidation, Op: op, Fields: fields, Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required", "notblank":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "url":
		return name + " must be a valid URL"
	}
	return name + " is invalid"
}
