package content

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)

	// A ticking clock keeps created_at strictly increasing.
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	return s
}

func adminCtx() context.Context {
	return auth.WithActor(context.Background(), auth.Actor{ID: "u1", Email: "admin@example.com"})
}

func sampleCaseStudy(title string) CaseStudy {
	return CaseStudy{
		Title:       title,
		Description: "A shop rebuilt for speed.",
		Category:    CategoryEcommerce,
		Tags:        []string{"Go", "SQLite"},
	}
}

func samplePost(title string, published bool) BlogPost {
	return BlogPost{
		Title:     title,
		Excerpt:   "Short summary.",
		Content:   "<p>Body</p>",
		Author:    "Studio",
		Tags:      []string{"go"},
		Published: published,
	}
}

func TestNewStoreIsIdempotent(t *testing.T) {
	s := setupStore(t)
	_, err := NewStore(s.db)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
}

func TestCaseStudyCreateFromForm(t *testing.T) {
	s := setupStore(t)
	form := CaseStudyForm{
		Title:       "Storefront",
		Description: "Headless shop",
		Category:    "E-commerce",
		Tags:        "React, TypeScript,  Tailwind CSS",
		Results:     "40% faster\n\n  2x conversions  \n",
	}

	cs, err := s.CaseStudies.Create(adminCtx(), form.CaseStudy())
	require.NoError(t, err)

	assert.Equal(t, "id-001", cs.ID)
	assert.False(t, cs.CreatedAt.IsZero())
	assert.Equal(t, []string{"React", "TypeScript", "Tailwind CSS"}, cs.Tags)
	assert.Equal(t, []string{"40% faster", "2x conversions"}, cs.Results)
	assert.Equal(t, CategoryEcommerce, cs.Category)

	got, err := s.CaseStudies.Get(context.Background(), cs.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(cs, got); diff != "" {
		t.Errorf("stored case study mismatch (-created +got):\n%s", diff)
	}
}

func TestCaseStudyCreateIgnoresClientIDAndTime(t *testing.T) {
	s := setupStore(t)
	in := sampleCaseStudy("Client supplied")
	in.ID = "chosen-by-client"
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	cs, err := s.CaseStudies.Create(adminCtx(), in)
	require.NoError(t, err)
	assert.NotEqual(t, "chosen-by-client", cs.ID)
	assert.NotEqual(t, 1999, cs.CreatedAt.Year())
}

func TestListAllNewestFirst(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()
	for _, title := range []string{"first", "second", "third"} {
		_, err := s.CaseStudies.Create(ctx, sampleCaseStudy(title))
		require.NoError(t, err)
	}

	items, err := s.CaseStudies.ListAll(context.Background(), ListOptions{})
	require.NoError(t, err)
	titles := make([]string, len(items))
	for i, cs := range items {
		titles[i] = cs.Title
	}
	assert.Equal(t, []string{"third", "second", "first"}, titles)
}

func TestListAllEmpty(t *testing.T) {
	s := setupStore(t)

	items, err := s.CaseStudies.ListAll(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)

	filtered := Filter(items, Criteria{Category: "E-commerce"})
	require.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestGetMissing(t *testing.T) {
	s := setupStore(t)
	_, err := s.CaseStudies.Get(context.Background(), "does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = s.BlogPosts.Get(context.Background(), "does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMutationsRequireActor(t *testing.T) {
	s := setupStore(t)
	anon := context.Background()

	cs, err := s.CaseStudies.Create(adminCtx(), sampleCaseStudy("owned"))
	require.NoError(t, err)
	title := "changed"

	tests := []struct {
		name string
		run  func() error
	}{
		{"create case study", func() error { _, err := s.CaseStudies.Create(anon, sampleCaseStudy("x")); return err }},
		{"update case study", func() error {
			_, err := s.CaseStudies.Update(anon, cs.ID, CaseStudyPatch{Title: &title})
			return err
		}},
		{"delete case study", func() error { return s.CaseStudies.Delete(anon, cs.ID) }},
		{"create blog post", func() error { _, err := s.BlogPosts.Create(anon, samplePost("x", true)); return err }},
		{"delete blog post", func() error { return s.BlogPosts.Delete(anon, "id-001") }},
		{"list contacts", func() error { _, err := s.Contacts.ListAll(anon, ListOptions{}); return err }},
		{"delete contact", func() error { return s.Contacts.Delete(anon, "id-001") }},
		{"save image", func() error { return s.Images.Save(anon, Image{Filename: "a.webp"}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.ErrorIs(t, err, ErrPermissionDenied)
		})
	}

	got, err := s.CaseStudies.Get(anon, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, "owned", got.Title)
}

func TestCreateValidation(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()

	_, err := s.CaseStudies.Create(ctx, CaseStudy{Category: CategoryBranding})
	require.ErrorIs(t, err, ErrValidation)
	var se *StoreError
	require.ErrorAs(t, err, &se)
	fields := map[string]string{}
	for _, f := range se.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "description is required", fields["description"])

	bad := sampleCaseStudy("bad url")
	bad.LiveURL = "not a url"
	_, err = s.CaseStudies.Create(ctx, bad)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "live url must be a valid URL")

	_, err = s.BlogPosts.Create(ctx, BlogPost{Title: "only a title"})
	require.ErrorIs(t, err, ErrValidation)

	items, err := s.CaseStudies.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateRejectsBlankFields(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()

	_, err := s.CaseStudies.Create(ctx, CaseStudy{Title: "   ", Description: "\t", Category: CategoryBranding})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "description is required")

	_, err = s.BlogPosts.Create(ctx, BlogPost{Title: "Post", Excerpt: " ", Content: "\n\n"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "excerpt is required")
	assert.Contains(t, err.Error(), "content is required")

	bp, err := s.BlogPosts.Create(ctx, samplePost("kept", false))
	require.NoError(t, err)
	blank := "  "
	_, err = s.BlogPosts.Update(ctx, bp.ID, BlogPostPatch{Title: &blank})
	require.ErrorIs(t, err, ErrValidation)

	studies, err := s.CaseStudies.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, studies)
	got, err := s.BlogPosts.Get(ctx, bp.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestCaseStudyCategoryIsNormalised(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()

	cs := sampleCaseStudy("lower case")
	cs.Category = "e-commerce"
	created, err := s.CaseStudies.Create(ctx, cs)
	require.NoError(t, err)
	assert.Equal(t, CategoryEcommerce, created.Category)

	cs = sampleCaseStudy("unknown")
	cs.Category = "Game Development"
	created, err = s.CaseStudies.Create(ctx, cs)
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, created.Category)

	made := Category("Print")
	updated, err := s.CaseStudies.Update(ctx, created.ID, CaseStudyPatch{Category: &made})
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, updated.Category)

	stored, err := s.CaseStudies.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, CategoryOther, stored.Category)
}

func TestCaseStudyUpdateMerges(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()
	cs, err := s.CaseStudies.Create(ctx, sampleCaseStudy("before"))
	require.NoError(t, err)

	title := "after"
	results := []string{"shipped"}
	updated, err := s.CaseStudies.Update(ctx, cs.ID, CaseStudyPatch{Title: &title, Results: &results})
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, cs.Description, updated.Description)
	assert.Equal(t, cs.Tags, updated.Tags)
	assert.Equal(t, []string{"shipped"}, updated.Results)
	assert.True(t, cs.CreatedAt.Equal(updated.CreatedAt))

	got, err := s.CaseStudies.Get(ctx, cs.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("updated case study mismatch (-returned +stored):\n%s", diff)
	}
}

func TestUpdateMissingAndInvalid(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()

	title := "x"
	_, err := s.CaseStudies.Update(ctx, "missing", CaseStudyPatch{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)

	cs, err := s.CaseStudies.Create(ctx, sampleCaseStudy("keep"))
	require.NoError(t, err)
	empty := ""
	_, err = s.CaseStudies.Update(ctx, cs.ID, CaseStudyPatch{Title: &empty})
	require.ErrorIs(t, err, ErrValidation)

	got, err := s.CaseStudies.Get(ctx, cs.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Title)
}

func TestDeleteTwice(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()
	a, err := s.CaseStudies.Create(ctx, sampleCaseStudy("a"))
	require.NoError(t, err)
	_, err = s.CaseStudies.Create(ctx, sampleCaseStudy("b"))
	require.NoError(t, err)

	before, err := s.CaseStudies.ListAll(ctx, ListOptions{})
	require.NoError(t, err)

	require.NoError(t, s.CaseStudies.Delete(ctx, a.ID))
	err = s.CaseStudies.Delete(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)

	after, err := s.CaseStudies.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, after, len(before)-1)
}

func TestBlogPostVisibility(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()
	public := context.Background()

	_, err := s.BlogPosts.Create(ctx, samplePost("live", true))
	require.NoError(t, err)
	draft, err := s.BlogPosts.Create(ctx, samplePost("draft", false))
	require.NoError(t, err)

	all, err := s.BlogPosts.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := s.BlogPosts.ListAll(public, ListOptions{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	for _, bp := range visible {
		assert.True(t, bp.Published, "public list returned draft %q", bp.Title)
	}

	_, err = s.BlogPosts.GetPublished(public, draft.ID)
	require.ErrorIs(t, err, ErrNotFound)

	published := true
	_, err = s.BlogPosts.Update(ctx, draft.ID, BlogPostPatch{Published: &published})
	require.NoError(t, err)

	visible, err = s.BlogPosts.ListAll(public, ListOptions{PublishedOnly: true})
	require.NoError(t, err)
	assert.Len(t, visible, 2)
	assert.Equal(t, "draft", visible[0].Title)

	_, err = s.BlogPosts.GetPublished(public, draft.ID)
	require.NoError(t, err)
}

func TestContactSubmissions(t *testing.T) {
	s := setupStore(t)
	public := context.Background()

	form := ContactForm{
		Name:        "  Ada ",
		Email:       "ada@example.com",
		ProjectType: "web-app",
		Budget:      "a lot",
		Message:     "Let's build something.",
	}
	c, err := s.Contacts.Create(public, form.Submission())
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Name)
	assert.Equal(t, ProjectWebApp, c.ProjectType)
	assert.Equal(t, BudgetOther, c.Budget)
	assert.Equal(t, Timeline(""), c.Timeline)

	_, err = s.Contacts.Create(public, ContactSubmission{Name: "No message", Email: "x@example.com"})
	require.ErrorIs(t, err, ErrValidation)
	_, err = s.Contacts.Create(public, ContactSubmission{Name: "Bad", Email: "nope", Message: "hi"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = s.Contacts.Get(public, c.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)

	ctx := adminCtx()
	items, err := s.Contacts.ListAll(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	if diff := cmp.Diff(c, items[0]); diff != "" {
		t.Errorf("listed submission mismatch (-created +listed):\n%s", diff)
	}

	require.NoError(t, s.Contacts.Delete(ctx, c.ID))
	require.ErrorIs(t, s.Contacts.Delete(ctx, c.ID), ErrNotFound)
}

func TestImages(t *testing.T) {
	s := setupStore(t)
	ctx := adminCtx()

	ok, err := s.Images.Exists(ctx, "photo.webp")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Images.Save(ctx, Image{Filename: "photo.webp", OriginalName: "Photo.PNG", Width: 800, Height: 600, Size: 1024}))
	ok, err = s.Images.Exists(ctx, "photo.webp")
	require.NoError(t, err)
	assert.True(t, ok)

	images, err := s.Images.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "/public/uploads/photo.webp", images[0].URL())

	require.NoError(t, s.Images.Delete(ctx, "photo.webp"))
	require.ErrorIs(t, s.Images.Delete(ctx, "photo.webp"), ErrNotFound)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{context.DeadlineExceeded, KindNetwork},
		{fmt.Errorf("exec: database is locked"), KindNetwork},
		{fmt.Errorf("boom"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(classify("op", tt.err)); got != tt.want {
			t.Errorf("classify(%v) kind = %v, want %v", tt.err, got, tt.want)
		}
	}
	if classify("op", nil) != nil {
		t.Error("classify(nil) should be nil")
	}
}
