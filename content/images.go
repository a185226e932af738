package content

import (
	"context"
	"database/sql"
	"errors"
)

// Images is the metadata of uploaded images. The files themselves live in
// the uploads directory.
type Images struct {
	s *Store
}

// List returns every image, newest first.
func (r *Images) List(ctx context.Context) ([]Image, error) {
	const op = "list images"
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		var uploaded int64
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &uploaded); err != nil {
			return nil, classify(op, err)
		}
		img.UploadedAt = fromNanos(uploaded)
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return images, nil
}

// Exists reports whether filename is already taken.
func (r *Images) Exists(ctx context.Context, filename string) (bool, error) {
	var one int
	err := r.s.db.QueryRowContext(ctx, `SELECT 1 FROM images WHERE filename = ?`, filename).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, classify("image exists", err)
	}
	return true, nil
}

// Save records an uploaded image.
func (r *Images) Save(ctx context.Context, img Image) error {
	const op = "save image"
	if err := requireActor(ctx, op); err != nil {
		return err
	}
	if img.UploadedAt.IsZero() {
		img.UploadedAt = r.s.now().UTC()
	}
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt.UnixNano())
	return classify(op, err)
}

// Delete removes the record of an image.
func (r *Images) Delete(ctx context.Context, filename string) error {
	const op = "delete image"
	if err := requireActor(ctx, op); err != nil {
		return err
	}
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM images WHERE filename = ?`, filename)
	if err != nil {
		return classify(op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(op, filename)
	}
	return nil
}
