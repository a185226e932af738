package views

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/showcase"
	"github.com/eringen/showcase/markdown"
)

// page is the writer the components render through. The first write error
// sticks and every later write is skipped.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *page) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) { p.raw(templ.EscapeString(s)) }

func (p *page) render(c templ.Component) {
	if p.err == nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

// attr renders ` name="value"` with value escaped.
func attr(name, value string) string {
	return " " + name + `="` + templ.EscapeString(value) + `"`
}

// href is attr for links; unsafe schemes collapse to "#".
func href(u string) string {
	if safe := markdown.SafeURL(u); safe != "" {
		return attr("href", safe)
	}
	return attr("href", "#")
}

func src(u string) string {
	return attr("src", markdown.SafeURL(u))
}

func pathEscape(s string) string { return url.PathEscape(s) }

func layout(meta showcase.PageMeta, admin bool, body func(p *page)) templ.Component {
	return component(func(p *page) {
		p.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw("<title>")
		p.text(meta.Title)
		p.raw("</title>")
		p.raw(`<meta name="description"`, attr("content", meta.Description), ">")
		if meta.URL != "" {
			p.raw(`<link rel="canonical"`, attr("href", meta.URL), ">")
			p.raw(`<meta property="og:url"`, attr("content", meta.URL), ">")
		}
		p.raw(`<meta property="og:title"`, attr("content", meta.Title), ">")
		p.raw(`<meta property="og:description"`, attr("content", meta.Description), ">")
		p.raw(`<meta property="og:type"`, attr("content", meta.OGType), ">")
		p.raw(`<meta property="og:site_name"`, attr("content", meta.SiteName), ">")
		if admin {
			p.raw(`<meta name="robots" content="noindex">`)
		}
		p.raw(`<link rel="icon" href="/favicon.svg" type="image/svg+xml">`,
			`<link rel="stylesheet" href="/assets/site.css">`,
			`<link rel="alternate" type="application/rss+xml" href="/feed.xml"`, attr("title", meta.SiteName), ">")
		if meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the payload cannot close the tag.
			p.raw(`<script type="application/ld+json">`, meta.JSONLD, `</script>`)
		}
		if admin {
			p.raw(`<script src="/assets/admin.js" defer></script>`)
		}
		p.raw("</head><body>")
		if admin {
			adminNav(p, meta.SiteName)
		} else {
			siteNav(p, meta.SiteName)
		}
		p.raw("<main>")
		body(p)
		p.raw("</main><footer><p>&copy; ")
		p.text(meta.SiteName)
		p.raw(` &middot; <a href="/feed.xml">RSS</a></p></footer></body></html>`)
	})
}

var navLinks = [][2]string{
	{"/case-studies/", "Work"},
	{"/pricing/", "Pricing"},
	{"/blog/", "Blog"},
	{"/about/", "About"},
	{"/contact/", "Contact"},
}

func siteNav(p *page, name string) {
	p.raw(`<header><nav><a href="/" class="brand">`)
	p.text(name)
	p.raw("</a>")
	for _, l := range navLinks {
		p.raw("<a", attr("href", l[0]), ">", l[1], "</a>")
	}
	p.raw("</nav></header>")
}

func adminNav(p *page, name string) {
	p.raw(`<header><nav><a href="/admin/" class="brand">`)
	p.text(name)
	p.raw(` admin</a><a href="/admin/case-studies/new/">New case study</a>`,
		`<a href="/admin/blog-posts/new/">New post</a>`,
		`<a href="/admin/contacts/">Contacts</a><a href="/admin/images/">Images</a>`,
		`<a href="/">View site</a></nav></header>`)
}

func notice(p *page, n showcase.Notice) {
	if n.Empty() {
		return
	}
	role := "status"
	if n.Kind == showcase.NoticeError {
		role = "alert"
	}
	p.raw(`<div class="notice notice-`, templ.EscapeString(string(n.Kind)), `" role="`, role, `">`)
	p.text(n.Message)
	p.raw("</div>")
}

func tagList(p *page, base string, tags []string) {
	if len(tags) == 0 {
		return
	}
	p.raw(`<p class="tags">`)
	for _, t := range tags {
		p.raw("<a", attr("href", base+"?tag="+url.QueryEscape(t)), ">")
		p.text(t)
		p.raw("</a>")
	}
	p.raw("</p>")
}

func csrfField(p *page, token string) {
	p.raw(`<input type="hidden" name="_csrf"`, attr("value", token), ">")
}

func fieldError(p *page, errs map[string]string, field string) {
	if msg, ok := errs[field]; ok {
		p.raw(`<p class="error">`)
		p.text(msg)
		p.raw("</p>")
	}
}

type field struct {
	name, label, value, kind string
	required                bool
}

func input(p *page, f field, errs map[string]string) {
	kind := f.kind
	if kind == "" {
		kind = "text"
	}
	p.raw("<label", attr("for", f.name), ">")
	p.text(f.label)
	p.raw("</label><input", attr("type", kind), attr("id", f.name), attr("name", f.name), attr("value", f.value))
	if f.required {
		p.raw(" required")
	}
	if _, bad := errs[f.name]; bad {
		p.raw(` aria-invalid="true"`)
	}
	p.raw(">")
	fieldError(p, errs, f.name)
}

func textarea(p *page, f field, rows string, errs map[string]string) {
	p.raw("<label", attr("for", f.name), ">")
	p.text(f.label)
	p.raw("</label><textarea", attr("id", f.name), attr("name", f.name), attr("rows", rows))
	if f.required {
		p.raw(" required")
	}
	p.raw(">")
	p.text(f.value)
	p.raw("</textarea>")
	fieldError(p, errs, f.name)
}

type option struct{ value, label string }

func selectField(p *page, name, label, current string, opts []option) {
	p.raw("<label", attr("for", name), ">")
	p.text(label)
	p.raw("</label><select", attr("id", name), attr("name", name), ">")
	for _, o := range opts {
		p.raw("<option", attr("value", o.value))
		if o.value == current {
			p.raw(" selected")
		}
		p.raw(">")
		p.text(o.label)
		p.raw("</option>")
	}
	p.raw("</select>")
}

// labelled turns a closed enum into select options.
func labelled[T interface {
	~string
	Label() string
}](values []T) []option {
	opts := make([]option, len(values))
	for i, v := range values {
		opts[i] = option{value: string(v), label: v.Label()}
	}
	return opts
}

func optional(opts []option) []option {
	return append([]option{{value: "", label: "Choose one"}}, opts...)
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, s := range parts {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}
