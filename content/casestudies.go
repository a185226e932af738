package content

import (
	"context"
	"database/sql"
	"errors"
)

// CaseStudies is the case_studies collection.
type CaseStudies struct {
	s *Store
}

const caseStudyColumns = `id, title, description, thumbnail, original_image, category, live_url, tags, content, client, duration, results, created_at`

func scanCaseStudy(row scanner) (CaseStudy, error) {
	var (
		cs            CaseStudy
		category      string
		tags, results string
		createdAt     int64
	)
	err := row.Scan(&cs.ID, &cs.Title, &cs.Description, &cs.Thumbnail, &cs.OriginalImage,
		&category, &cs.LiveURL, &tags, &cs.Content, &cs.Client, &cs.Duration, &results, &createdAt)
	if err != nil {
		return CaseStudy{}, err
	}
	cs.Category = Category(category)
	cs.Tags = decodeList(tags)
	cs.Results = decodeList(results)
	cs.CreatedAt = fromNanos(createdAt)
	return cs, nil
}

// ListAll returns every case study, newest first.
func (r *CaseStudies) ListAll(ctx context.Context, _ ListOptions) ([]CaseStudy, error) {
	const op = "list case studies"
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+caseStudyColumns+` FROM case_studies ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	items := []CaseStudy{}
	for rows.Next() {
		cs, err := scanCaseStudy(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		items = append(items, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return items, nil
}

// Get returns one case study or a NotFound error.
func (r *CaseStudies) Get(ctx context.Context, id string) (CaseStudy, error) {
	return r.get(ctx, r.s.db, id)
}

func (r *CaseStudies) get(ctx context.Context, q queryer, id string) (CaseStudy, error) {
	cs, err := scanCaseStudy(q.QueryRowContext(ctx,
		`SELECT `+caseStudyColumns+` FROM case_studies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return CaseStudy{}, notFound("get case study", id)
	}
	if err != nil {
		return CaseStudy{}, classify("get case study", err)
	}
	return cs, nil
}

// Create stores cs with a fresh id and creation time and returns the
// stored entity. Any ID or CreatedAt on cs is ignored, and a category
// outside the known set is stored as CategoryOther.
func (r *CaseStudies) Create(ctx context.Context, cs CaseStudy) (CaseStudy, error) {
	const op = "create case study"
	if err := requireActor(ctx, op); err != nil {
		return CaseStudy{}, err
	}
	cs.Category = ParseCategory(string(cs.Category))
	if err := r.s.check(op, cs); err != nil {
		return CaseStudy{}, err
	}
	cs.ID = r.s.newID()
	cs.CreatedAt = r.s.now().UTC()
	if cs.Tags == nil {
		cs.Tags = []string{}
	}
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO case_studies (`+caseStudyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cs.ID, cs.Title, cs.Description, cs.Thumbnail, cs.OriginalImage, string(cs.Category),
		cs.LiveURL, encodeList(cs.Tags), cs.Content, cs.Client, cs.Duration,
		encodeList(cs.Results), cs.CreatedAt.UnixNano())
	if err != nil {
		return CaseStudy{}, classify(op, err)
	}
	return r.Get(ctx, cs.ID)
}

// Update merges patch onto the stored case study.
func (r *CaseStudies) Update(ctx context.Context, id string, patch CaseStudyPatch) (CaseStudy, error) {
	const op = "update case study"
	if err := requireActor(ctx, op); err != nil {
		return CaseStudy{}, err
	}
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return CaseStudy{}, classify(op, err)
	}
	defer tx.Rollback()

	cs, err := r.get(ctx, tx, id)
	if err != nil {
		return CaseStudy{}, err
	}
	patch.apply(&cs)
	cs.Category = ParseCategory(string(cs.Category))
	if err := r.s.check(op, cs); err != nil {
		return CaseStudy{}, err
	}
	_, err = tx.ExecContext(ctx, `UPDATE case_studies SET title = ?, description = ?, thumbnail = ?,
    original_image = ?, category = ?, live_url = ?, tags = ?, content = ?, client = ?,
    duration = ?, results = ? WHERE id = ?`,
		cs.Title, cs.Description, cs.Thumbnail, cs.OriginalImage, string(cs.Category), cs.LiveURL,
		encodeList(cs.Tags), cs.Content, cs.Client, cs.Duration, encodeList(cs.Results), id)
	if err != nil {
		return CaseStudy{}, classify(op, err)
	}
	if err := tx.Commit(); err != nil {
		return CaseStudy{}, classify(op, err)
	}
	return cs, nil
}

// Delete removes a case study. Deleting an absent id is NotFound.
func (r *CaseStudies) Delete(ctx context.Context, id string) error {
	const op = "delete case study"
	if err := requireActor(ctx, op); err != nil {
		return err
	}
	return r.s.deleteByID(ctx, op, "case_studies", id)
}
