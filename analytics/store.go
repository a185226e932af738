package analytics

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/showcase/storage"
)

const topN = 10

// Store keeps visits in the site database.
type Store struct {
	db   *sql.DB
	log  *zap.Logger
	now  func() time.Time
	hash hasher
}

// NewStore ensures the analytics tables on db and loads, or creates, the
// salt used for visitor ids.
func NewStore(ctx context.Context, db *sql.DB, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	err := storage.Migrate(db,
		`CREATE TABLE IF NOT EXISTS visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    visitor_id TEXT NOT NULL,
    path TEXT NOT NULL,
    browser TEXT NOT NULL,
    os TEXT NOT NULL,
    device TEXT NOT NULL,
    referrer TEXT NOT NULL,
    visited_at INTEGER NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);`,
		`CREATE TABLE IF NOT EXISTS bot_visits (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    bot TEXT NOT NULL,
    path TEXT NOT NULL,
    visited_at INTEGER NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_bot_visits_visited_at ON bot_visits(visited_at);`,
		`CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics: schema: %w", err)
	}
	s := &Store{db: db, log: log, now: time.Now}
	if s.hash.salt, err = s.salt(ctx); err != nil {
		return nil, fmt.Errorf("analytics: salt: %w", err)
	}
	return s, nil
}

func (s *Store) salt(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'visitor_salt'`).Scan(&v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	v = hex.EncodeToString(b)
	// Another process may have won the race; read back whichever salt stuck.
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES ('visitor_salt', ?) ON CONFLICT(key) DO NOTHING`, v); err != nil {
		return "", err
	}
	err = s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'visitor_salt'`).Scan(&v)
	return v, err
}

// Record stores a page view.
func (s *Store) Record(ctx context.Context, v Visit) error {
	if v.Time.IsZero() {
		v.Time = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (visitor_id, path, browser, os, device, referrer, visited_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.Path, v.Browser, v.OS, v.Device, v.Referrer, v.Time.UnixNano())
	return err
}

// RecordBot stores a crawler page view.
func (s *Store) RecordBot(ctx context.Context, v BotVisit) error {
	if v.Time.IsZero() {
		v.Time = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bot_visits (bot, path, visited_at) VALUES (?, ?, ?)`,
		v.Bot, v.Path, v.Time.UnixNano())
	return err
}

// Summarize aggregates the visits in [from, to).
func (s *Store) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	sum := Summary{From: from, To: to}
	lo, hi := from.UnixNano(), to.UnixNano()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.QueryRowContext(ctx,
			`SELECT COUNT(*), COUNT(DISTINCT visitor_id) FROM visits WHERE visited_at >= ? AND visited_at < ?`, lo, hi).
			Scan(&sum.Views, &sum.UniqueVisitors)
	})
	g.Go(func() error {
		return s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bot_visits WHERE visited_at >= ? AND visited_at < ?`, lo, hi).
			Scan(&sum.BotVisits)
	})
	g.Go(func() (err error) {
		sum.TopPages, err = s.counts(ctx, `SELECT path, COUNT(*) AS n FROM visits
WHERE visited_at >= ? AND visited_at < ? GROUP BY path ORDER BY n DESC, path LIMIT ?`, lo, hi, topN)
		return err
	})
	g.Go(func() (err error) {
		sum.Referrers, err = s.counts(ctx, `SELECT referrer, COUNT(*) AS n FROM visits
WHERE visited_at >= ? AND visited_at < ? GROUP BY referrer ORDER BY n DESC, referrer LIMIT ?`, lo, hi, topN)
		return err
	})
	g.Go(func() (err error) {
		sum.Devices, err = s.counts(ctx, `SELECT device, COUNT(*) AS n FROM visits
WHERE visited_at >= ? AND visited_at < ? GROUP BY device ORDER BY n DESC, device`, lo, hi)
		return err
	})
	g.Go(func() (err error) {
		sum.Daily, err = s.counts(ctx, `SELECT date(visited_at / 1000000000, 'unixepoch') AS day, COUNT(*) FROM visits
WHERE visited_at >= ? AND visited_at < ? GROUP BY day ORDER BY day`, lo, hi)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("analytics: summarize: %w", err)
	}
	return sum, nil
}

func (s *Store) counts(ctx context.Context, query string, args ...any) ([]Count, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Count{}
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Prune deletes visits older than before and returns how many rows went.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"visits", "bot_visits"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE visited_at < ?`, before.UnixNano())
		if err != nil {
			return total, fmt.Errorf("analytics: prune %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

// KeepFor prunes visits older than retention every interval until ctx is
// done.
func (s *Store) KeepFor(ctx context.Context, retention, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Prune(ctx, s.now().Add(-retention))
			if err != nil {
				s.log.Warn("prune visits", zap.Error(err))
				continue
			}
			if n > 0 {
				s.log.Debug("pruned visits", zap.Int64("rows", n))
			}
		}
	}
}
