package showcase

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/showcase/content"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":           "hello-world",
		"Café Menü 2024!":       "cafe-menu-2024",
		"  --Already--slugged ": "already-slugged",
		"!!!":                   "",
		"":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://studio.example/", BuildURL("https://studio.example"))
	assert.Equal(t, "https://studio.example/blog/abc/", BuildURL("https://studio.example/", "blog", "abc"))
	assert.Equal(t, "https://studio.example/sub/case-studies/", BuildURL("https://studio.example/sub", "case-studies"))
}

func TestCaseStudyJSONLD(t *testing.T) {
	cfg := SiteConfig{Name: "Studio", URL: "https://studio.example"}
	cs := content.CaseStudy{
		ID:        "abc",
		Title:     "Shop",
		Category:  content.CategoryEcommerce,
		Thumbnail: "/public/uploads/shop.jpg",
		Client:    "Northwind",
		Tags:      []string{"Go", "templ"},
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(CaseStudyJSONLD(cs, cfg)), &got))
	assert.Equal(t, "CreativeWork", got["@type"])
	assert.Equal(t, "https://studio.example/case-studies/abc/", got["url"])
	assert.Equal(t, "https://studio.example/public/uploads/shop.jpg", got["image"])
	assert.Equal(t, "Go, templ", got["keywords"])
	assert.Equal(t, "2024-03-01T00:00:00Z", got["dateCreated"])
}

func TestBlogPostingJSONLDAuthorFallback(t *testing.T) {
	cfg := SiteConfig{Name: "Studio", URL: "https://studio.example", Author: "Studio Team"}
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(BlogPostingJSONLD(content.BlogPost{ID: "p1", Title: "Hi"}, cfg)), &got))
	assert.Equal(t, map[string]any{"@type": "Person", "name": "Studio Team"}, got["author"])
	assert.NotContains(t, got, "image")
}
