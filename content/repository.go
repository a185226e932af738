package content

import "context"

// ListOptions narrows a ListAll call. Results are always ordered newest
// first by created_at.
type ListOptions struct {
	// PublishedOnly hides unpublished entities. Public reads of blog posts
	// must set it; admin reads leave it off.
	PublishedOnly bool
}

// Repository is the operation set bound to one editable entity type. P is
// the entity's patch type.
type Repository[T any, P any] interface {
	ListAll(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
}

// Inbox is the operation set of an append-only entity type: anyone may
// create, only an admin may read or delete.
type Inbox[T any] interface {
	ListAll(ctx context.Context, opts ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ Repository[CaseStudy, CaseStudyPatch] = (*CaseStudies)(nil)
	_ Repository[BlogPost, BlogPostPatch]   = (*BlogPosts)(nil)
	_ Inbox[ContactSubmission]              = (*Contacts)(nil)
)
