package content

import (
	"context"
	"database/sql"
	"errors"
)

// BlogPosts is the blog_posts collection.
type BlogPosts struct {
	s *Store
}

const blogPostColumns = `id, title, excerpt, content, author, tags, featured_image, published, created_at`

func scanBlogPost(row scanner) (BlogPost, error) {
	var (
		bp        BlogPost
		tags      string
		published int
		createdAt int64
	)
	err := row.Scan(&bp.ID, &bp.Title, &bp.Excerpt, &bp.Content, &bp.Author, &tags,
		&bp.FeaturedImage, &published, &createdAt)
	if err != nil {
		return BlogPost{}, err
	}
	bp.Tags = decodeList(tags)
	bp.Published = published == 1
	bp.CreatedAt = fromNanos(createdAt)
	return bp, nil
}

// ListAll returns posts newest first. Public callers set
// opts.PublishedOnly.
func (r *BlogPosts) ListAll(ctx context.Context, opts ListOptions) ([]BlogPost, error) {
	const op = "list blog posts"
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts ORDER BY created_at DESC, rowid DESC`
	if opts.PublishedOnly {
		query = `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE published = 1 ORDER BY created_at DESC, rowid DESC`
	}
	rows, err := r.s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	posts := []BlogPost{}
	for rows.Next() {
		bp, err := scanBlogPost(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		posts = append(posts, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return posts, nil
}

// Get returns a post regardless of its published flag (for admin).
func (r *BlogPosts) Get(ctx context.Context, id string) (BlogPost, error) {
	return r.get(ctx, r.s.db, id)
}

// GetPublished returns a post only if it is published. Drafts are
// reported as NotFound.
func (r *BlogPosts) GetPublished(ctx context.Context, id string) (BlogPost, error) {
	bp, err := r.get(ctx, r.s.db, id)
	if err != nil {
		return BlogPost{}, err
	}
	if !bp.Published {
		return BlogPost{}, notFound("get blog post", id)
	}
	return bp, nil
}

func (r *BlogPosts) get(ctx context.Context, q queryer, id string) (BlogPost, error) {
	bp, err := scanBlogPost(q.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return BlogPost{}, notFound("get blog post", id)
	}
	if err != nil {
		return BlogPost{}, classify("get blog post", err)
	}
	return bp, nil
}

// Create stores bp with a fresh id and creation time.
func (r *BlogPosts) Create(ctx context.Context, bp BlogPost) (BlogPost, error) {
	const op = "create blog post"
	if err := requireActor(ctx, op); err != nil {
		return BlogPost{}, err
	}
	if err := r.s.check(op, bp); err != nil {
		return BlogPost{}, err
	}
	bp.ID = r.s.newID()
	bp.CreatedAt = r.s.now().UTC()
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (`+blogPostColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bp.ID, bp.Title, bp.Excerpt, bp.Content, bp.Author, encodeList(bp.Tags),
		bp.FeaturedImage, boolInt(bp.Published), bp.CreatedAt.UnixNano())
	if err != nil {
		return BlogPost{}, classify(op, err)
	}
	return r.Get(ctx, bp.ID)
}

// Update merges patch onto the stored post.
func (r *BlogPosts) Update(ctx context.Context, id string, patch BlogPostPatch) (BlogPost, error) {
	const op = "update blog post"
	if err := requireActor(ctx, op); err != nil {
		return BlogPost{}, err
	}
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return BlogPost{}, classify(op, err)
	}
	defer tx.Rollback()

	bp, err := r.get(ctx, tx, id)
	if err != nil {
		return BlogPost{}, err
	}
	patch.apply(&bp)
	if err := r.s.check(op, bp); err != nil {
		return BlogPost{}, err
	}
	_, err = tx.ExecContext(ctx, `UPDATE blog_posts SET title = ?, excerpt = ?, content = ?, author = ?,
    tags = ?, featured_image = ?, published = ? WHERE id = ?`,
		bp.Title, bp.Excerpt, bp.Content, bp.Author, encodeList(bp.Tags), bp.FeaturedImage,
		boolInt(bp.Published), id)
	if err != nil {
		return BlogPost{}, classify(op, err)
	}
	if err := tx.Commit(); err != nil {
		return BlogPost{}, classify(op, err)
	}
	return bp, nil
}

// Delete removes a post. Deleting an absent id is NotFound.
func (r *BlogPosts) Delete(ctx context.Context, id string) error {
	const op = "delete blog post"
	if err := requireActor(ctx, op); err != nil {
		return err
	}
	return r.s.deleteByID(ctx, op, "blog_posts", id)
}
