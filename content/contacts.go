package content

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Contacts is the contact_submissions collection. Creation is public;
// reading and deleting require an actor.
type Contacts struct {
	s *Store
}

const contactColumns = `id, name, email, phone, company, project_type, budget, timeline, message, referral, created_at`

func scanContact(row scanner) (ContactSubmission, error) {
	var (
		c                                       ContactSubmission
		projectType, budget, timeline, referral string
		createdAt                               int64
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &projectType, &budget,
		&timeline, &c.Message, &referral, &createdAt)
	if err != nil {
		return ContactSubmission{}, err
	}
	c.ProjectType = ProjectType(projectType)
	c.Budget = Budget(budget)
	c.Timeline = Timeline(timeline)
	c.Referral = Referral(referral)
	c.CreatedAt = fromNanos(createdAt)
	return c, nil
}

// ListAll returns every submission, newest first.
func (r *Contacts) ListAll(ctx context.Context, _ ListOptions) ([]ContactSubmission, error) {
	const op = "list contact submissions"
	if err := requireActor(ctx, op); err != nil {
		return nil, err
	}
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	items := []ContactSubmission{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return items, nil
}

// Get returns one submission.
func (r *Contacts) Get(ctx context.Context, id string) (ContactSubmission, error) {
	const op = "get contact submission"
	if err := requireActor(ctx, op); err != nil {
		return ContactSubmission{}, err
	}
	c, err := scanContact(r.s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ContactSubmission{}, notFound(op, id)
	}
	if err != nil {
		return ContactSubmission{}, classify(op, err)
	}
	return c, nil
}

// Create stores a submission from the public contact form. No actor is
// required.
func (r *Contacts) Create(ctx context.Context, c ContactSubmission) (ContactSubmission, error) {
	const op = "create contact submission"
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Message = strings.TrimSpace(c.Message)
	if err := r.s.check(op, c); err != nil {
		return ContactSubmission{}, err
	}
	c.ID = r.s.newID()
	c.CreatedAt = r.s.now().UTC()
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO contact_submissions (`+contactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Company, string(c.ProjectType), string(c.Budget),
		string(c.Timeline), c.Message, string(c.Referral), c.CreatedAt.UnixNano())
	if err != nil {
		return ContactSubmission{}, classify(op, err)
	}
	return c, nil
}

// Delete removes a submission.
func (r *Contacts) Delete(ctx context.Context, id string) error {
	const op = "delete contact submission"
	if err := requireActor(ctx, op); err != nil {
		return err
	}
	return r.s.deleteByID(ctx, op, "contact_submissions", id)
}
