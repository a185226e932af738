package showcase

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/eringen/showcase/content"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a title to a URL-safe slug. Accents are folded, so
// "Café Menü" becomes "cafe-menu".
func Slugify(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func jsonLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (cfg SiteConfig) organization() map[string]string {
	return map[string]string{"@type": "Organization", "name": cfg.Name, "url": BuildURL(cfg.URL)}
}

// WebsiteJSONLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJSONLD(cfg SiteConfig) string {
	return jsonLD(map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
		"publisher":   cfg.organization(),
	})
}

// CaseStudyJSONLD describes a case study as a schema.org CreativeWork.
func CaseStudyJSONLD(cs content.CaseStudy, cfg SiteConfig) string {
	pageURL := BuildURL(cfg.URL, "case-studies", cs.ID)
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        cs.Title,
		"description": cs.Description,
		"url":         pageURL,
		"genre":       cs.Category.Label(),
		"dateCreated": cs.CreatedAt.Format(time.RFC3339),
		"creator":     cfg.organization(),
	}
	if cs.Thumbnail != "" {
		data["image"] = absoluteURL(cfg.URL, cs.Thumbnail)
	}
	if cs.Client != "" {
		data["sourceOrganization"] = map[string]string{"@type": "Organization", "name": cs.Client}
	}
	if len(cs.Tags) > 0 {
		data["keywords"] = strings.Join(cs.Tags, ", ")
	}
	return jsonLD(data)
}

// BlogPostingJSONLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJSONLD(post content.BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.ID)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Excerpt,
		"datePublished": post.CreatedAt.Format(time.RFC3339),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"publisher": cfg.organization(),
	}
	author := post.Author
	if author == "" {
		author = cfg.Author
	}
	if author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": author}
	}
	if post.FeaturedImage != "" {
		data["image"] = absoluteURL(cfg.URL, post.FeaturedImage)
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return jsonLD(data)
}

// absoluteURL resolves ref against the site URL. Absolute refs are kept.
func absoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
