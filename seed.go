package showcase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/content"
)

// SeedFile is the YAML document accepted by Seed. Entries are listed
// newest first, the way the site shows them.
type SeedFile struct {
	CaseStudies []SeedCaseStudy `yaml:"case_studies"`
	BlogPosts   []SeedBlogPost  `yaml:"blog_posts"`
}

type SeedCaseStudy struct {
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category"`
	Thumbnail     string   `yaml:"thumbnail"`
	OriginalImage string   `yaml:"original_image"`
	LiveURL       string   `yaml:"live_url"`
	Tags          []string `yaml:"tags"`
	Client        string   `yaml:"client"`
	Duration      string   `yaml:"duration"`
	Results       []string `yaml:"results"`
	Content       string   `yaml:"content"`
}

type SeedBlogPost struct {
	Title         string   `yaml:"title"`
	Excerpt       string   `yaml:"excerpt"`
	Content       string   `yaml:"content"`
	Author        string   `yaml:"author"`
	Tags          []string `yaml:"tags"`
	FeaturedImage string   `yaml:"featured_image"`
	Published     bool     `yaml:"published"`
}

// SeedResult counts what Seed did.
type SeedResult struct {
	Created int
	Skipped int
}

// seedActor is the identity recorded for content loaded from a seed file.
var seedActor = auth.Actor{ID: "seed", Email: "seed@localhost"}

// Seed loads demonstration content from YAML. Entries whose title already
// exists are skipped, so running it twice is harmless.
func (a *App) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return SeedResult{}, fmt.Errorf("showcase: parse seed file: %w", err)
	}

	ctx = auth.WithActor(ctx, seedActor)
	var res SeedResult

	studies, err := a.Store.CaseStudies.ListAll(ctx, content.ListOptions{})
	if err != nil {
		return res, err
	}
	seen := titles(studies, func(cs content.CaseStudy) string { return cs.Title })
	// Oldest first so the first entry ends up newest.
	for i := len(file.CaseStudies) - 1; i >= 0; i-- {
		s := file.CaseStudies[i]
		if seen[strings.ToLower(strings.TrimSpace(s.Title))] {
			res.Skipped++
			continue
		}
		_, err := a.Store.CaseStudies.Create(ctx, content.CaseStudy{
			Title:         s.Title,
			Description:   s.Description,
			Category:      content.ParseCategory(s.Category),
			Thumbnail:     s.Thumbnail,
			OriginalImage: s.OriginalImage,
			LiveURL:       s.LiveURL,
			Tags:          s.Tags,
			Client:        s.Client,
			Duration:      s.Duration,
			Results:       s.Results,
			Content:       s.Content,
		})
		if err != nil {
			return res, fmt.Errorf("showcase: seed case study %q: %w", s.Title, err)
		}
		res.Created++
	}

	posts, err := a.Store.BlogPosts.ListAll(ctx, content.ListOptions{})
	if err != nil {
		return res, err
	}
	seen = titles(posts, func(bp content.BlogPost) string { return bp.Title })
	for i := len(file.BlogPosts) - 1; i >= 0; i-- {
		s := file.BlogPosts[i]
		if seen[strings.ToLower(strings.TrimSpace(s.Title))] {
			res.Skipped++
			continue
		}
		author := s.Author
		if author == "" {
			author = a.Config.Author
		}
		_, err := a.Store.BlogPosts.Create(ctx, content.BlogPost{
			Title:         s.Title,
			Excerpt:       s.Excerpt,
			Content:       s.Content,
			Author:        author,
			Tags:          s.Tags,
			FeaturedImage: s.FeaturedImage,
			Published:     s.Published,
		})
		if err != nil {
			return res, fmt.Errorf("showcase: seed blog post %q: %w", s.Title, err)
		}
		res.Created++
	}

	if res.Created > 0 {
		a.Public.Invalidate(ctx)
	}
	a.Log.Info("seeded content", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return res, nil
}

func titles[T any](items []T, title func(T) string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[strings.ToLower(strings.TrimSpace(title(item)))] = true
	}
	return out
}
