package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"

	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/storage"
)

// Store holds the content collections on a shared database handle.
type Store struct {
	db       *sql.DB
	now      func() time.Time
	newID    func() string
	validate *validator.Validate

	CaseStudies *CaseStudies
	BlogPosts   *BlogPosts
	Contacts    *Contacts
	Images      *Images
}

// NewStore ensures the content schema on db and returns the collections.
func NewStore(db *sql.DB) (*Store, error) {
	v := validator.New()
	// Report JSON field names so messages match the collection columns.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("content: register notblank: %w", err)
	}
	s := &Store{
		db:       db,
		now:      time.Now,
		newID:    uuid.NewString,
		validate: v,
	}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("content: schema: %w", err)
	}
	s.CaseStudies = &CaseStudies{s: s}
	s.BlogPosts = &BlogPosts{s: s}
	s.Contacts = &Contacts{s: s}
	s.Images = &Images{s: s}
	return s, nil
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return classify("ping", s.db.PingContext(ctx))
}

func (s *Store) ensureSchema() error {
	return storage.Migrate(s.db,
		`CREATE TABLE IF NOT EXISTS case_studies (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    thumbnail TEXT NOT NULL DEFAULT '',
    original_image TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    live_url TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    content TEXT NOT NULL DEFAULT '',
    client TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    results TEXT NOT NULL DEFAULT '[]',
    created_at INTEGER NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS case_studies_created_at ON case_studies (created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS blog_posts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    content TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    featured_image TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS blog_posts_published_created_at ON blog_posts (published, created_at DESC);`,
		`CREATE TABLE IF NOT EXISTS contact_submissions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    company TEXT NOT NULL DEFAULT '',
    project_type TEXT NOT NULL DEFAULT '',
    budget TEXT NOT NULL DEFAULT '',
    timeline TEXT NOT NULL DEFAULT '',
    message TEXT NOT NULL,
    referral TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at INTEGER NOT NULL
);`,
	)
}

// requireActor fails with PermissionDenied unless ctx carries an actor.
func requireActor(ctx context.Context, op string) error {
	if _, ok := auth.ActorFrom(ctx); !ok {
		return &StoreError{Kind: KindPermissionDenied, Op: op, Err: fmt.Errorf("sign in required")}
	}
	return nil
}

func (s *Store) check(op string, v any) error {
	if err := s.validate.Struct(v); err != nil {
		return validationError(op, err)
	}
	return nil
}

// deleteByID removes one row and reports NotFound when nothing matched, so
// a repeated delete of the same id is distinguishable from the first.
func (s *Store) deleteByID(ctx context.Context, op, table, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return classify(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify(op, err)
	}
	if n == 0 {
		return notFound(op, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
