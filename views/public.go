package views

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/eringen/showcase"
	"github.com/eringen/showcase/content"
)

const dateFormat = "January 2, 2006"

func filterURL(base string, c content.Criteria) string {
	q := url.Values{}
	if c.Category != "" && c.Category != content.All {
		q.Set("category", c.Category)
	}
	if c.Tag != "" && c.Tag != content.All {
		q.Set("tag", c.Tag)
	}
	if c.Search != "" {
		q.Set("q", c.Search)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func caseStudyCard(p *page, cs content.CaseStudy) {
	link := "/case-studies/" + pathEscape(cs.ID) + "/"
	p.raw(`<article class="card">`)
	if cs.Thumbnail != "" {
		p.raw("<a", attr("href", link), "><img", src(cs.Thumbnail), attr("alt", cs.Title), ` loading="lazy"></a>`)
	}
	p.raw(`<p class="category">`)
	p.text(cs.Category.Label())
	p.raw("</p><h3><a", attr("href", link), ">")
	p.text(cs.Title)
	p.raw("</a></h3><p>")
	p.text(cs.Description)
	p.raw("</p>")
	tagList(p, "/case-studies/", cs.Tags)
	p.raw("</article>")
}

func postCard(p *page, bp content.BlogPost) {
	link := "/blog/" + pathEscape(bp.ID) + "/"
	p.raw(`<article class="card">`)
	if bp.FeaturedImage != "" {
		p.raw("<a", attr("href", link), "><img", src(bp.FeaturedImage), attr("alt", bp.Title), ` loading="lazy"></a>`)
	}
	p.raw("<h3><a", attr("href", link), ">")
	p.text(bp.Title)
	p.raw("</a></h3><p class=\"meta\"><time", attr("datetime", bp.CreatedAt.Format("2006-01-02")), ">")
	p.text(bp.CreatedAt.Format(dateFormat))
	p.raw("</time>")
	if bp.Author != "" {
		p.raw(" &middot; ")
		p.text(bp.Author)
	}
	p.raw("</p><p>")
	p.text(bp.Excerpt)
	p.raw("</p>")
	tagList(p, "/blog/", bp.Tags)
	p.raw("</article>")
}

// listBody renders the three list states: items, nothing published yet, or
// a failed load. A filter that matches nothing is its own message.
func listBody(p *page, state showcase.ListState, shown int, emptyMsg string, reset string, items func()) {
	switch {
	case state == showcase.ListFailed:
		p.raw(`<p class="empty">This list is unavailable right now.</p>`)
	case state == showcase.ListEmpty:
		p.raw(`<p class="empty">`)
		p.text(emptyMsg)
		p.raw("</p>")
	case shown == 0:
		p.raw(`<p class="empty">Nothing matches these filters. <a`, attr("href", reset), ">Clear filters</a></p>")
	default:
		p.raw(`<div class="grid">`)
		items()
		p.raw("</div>")
	}
}

func searchForm(p *page, action string, c content.Criteria) {
	p.raw(`<form method="get" class="search"`, attr("action", action), ">")
	if c.Category != "" {
		p.raw(`<input type="hidden" name="category"`, attr("value", c.Category), ">")
	}
	if c.Tag != "" {
		p.raw(`<input type="hidden" name="tag"`, attr("value", c.Tag), ">")
	}
	p.raw(`<input type="search" name="q" placeholder="Search"`, attr("value", c.Search), `><button type="submit">Search</button></form>`)
	if c.Active() {
		p.raw(`<a class="clear-filters"`, attr("href", action), ">Clear filters</a>")
	}
}

func filterLinks(p *page, base string, c content.Criteria, key string, values []string) {
	if len(values) == 0 {
		return
	}
	current := c.Tag
	if key == "category" {
		current = c.Category
	}
	p.raw(`<div class="filters">`)
	for _, v := range append([]string{content.All}, values...) {
		next := c
		if key == "category" {
			next.Category = v
		} else {
			next.Tag = v
		}
		active := v == current || (v == content.All && current == "")
		p.raw("<a", attr("href", filterURL(base, next)))
		if active {
			p.raw(` class="active" aria-current="true"`)
		}
		p.raw(">")
		p.text(v)
		p.raw("</a>")
	}
	p.raw("</div>")
}

func home(pg showcase.HomePage) templ.Component {
	return layout(pg.Meta, false, func(p *page) {
		p.raw(`<section class="hero"><h1>We design and build websites that work as hard as you do.</h1>`,
			`<p>Strategy, design and engineering for ambitious small teams.</p>`,
			`<a href="/contact/" class="button">Start a project</a></section>`)
		notice(p, pg.Notice)
		p.raw(`<section><h2>Recent work</h2>`)
		if len(pg.CaseStudies) == 0 {
			p.raw(`<p class="empty">Case studies are on their way.</p>`)
		} else {
			p.raw(`<div class="grid">`)
			for _, cs := range pg.CaseStudies {
				caseStudyCard(p, cs)
			}
			p.raw(`</div><p><a href="/case-studies/">All case studies</a></p>`)
		}
		p.raw(`</section><section><h2>From the blog</h2>`)
		if len(pg.Posts) == 0 {
			p.raw(`<p class="empty">No posts yet.</p>`)
		} else {
			p.raw(`<div class="grid">`)
			for _, bp := range pg.Posts {
				postCard(p, bp)
			}
			p.raw(`</div><p><a href="/blog/">All posts</a></p>`)
		}
		p.raw("</section>")
	})
}

func pricing(pg showcase.PricingPage) templ.Component {
	return layout(pg.Meta, false, func(p *page) {
		p.raw(`<h1>Pricing</h1><div class="grid">`)
		for _, plan := range pg.Plans {
			class := "card plan"
			if plan.Highlighted {
				class += " highlighted"
			}
			p.raw("<article", attr("class", class), "><h2>")
			p.text(plan.Name)
			p.raw(`</h2><p class="price">`)
			p.text(plan.Price)
			p.raw("</p><p>")
			p.text(plan.Description)
			p.raw("</p><ul>")
			for _, f := range plan.Features {
				p.raw("<li>")
				p.text(f)
				p.raw("</li>")
			}
			p.raw(`</ul><a href="/contact/" class="button">Get in touch</a></article>`)
		}
		p.raw("</div>")
	})
}

func about(pg showcase.AboutPage) templ.Component {
	return layout(pg.Meta, false, func(p *page) {
		p.raw("<h1>About ")
		p.text(pg.Meta.SiteName)
		p.raw(`</h1><p>`)
		p.text(pg.Meta.Description)
		p.raw(`</p><p>We are a small studio of designers and engineers. We take a handful of projects at a time `,
			`and see each one through from the first sketch to launch and beyond.</p>`,
			`<p><a href="/contact/">Tell us about your project</a>.</p>`)
	})
}

func caseStudies(pg showcase.CaseStudyListPage) templ.Component {
	return layout(pg.Meta, false, func(p *page) {
		p.raw("<h1>Case studies</h1>")
		notice(p, pg.Notice)
		searchForm(p, "/case-studies/", pg.Criteria)
		filterLinks(p, "/case-studies/", pg.Criteria, "category", pg.Categories)
		filterLinks(p, "/case-studies/", pg.Criteria, "tag", pg.Tags)
		listBody(p, pg.State, len(pg.Items), "No case studies have been published yet.", "/case-studies/", func() {
			for _, cs := range pg.Items {
				caseStudyCard(p, cs)
			}
		})
	})
}

func caseStudy(pg showcase.CaseStudyPage) templ.Component {
	cs := pg.Study
	return layout(pg.Meta, false, func(p *page) {
		p.raw(`<article class="prose"><p class="category">`)
		p.text(cs.Category.Label())
		p.raw("</p><h1>")
		p.text(cs.Title)
		p.raw(`</h1><p class="lead">`)
		p.text(cs.Description)
		p.raw("</p>")
		if facts := joinNonEmpty(" · ", cs.Client, cs.Duration); facts != "" {
			p.raw(`<p class="meta">`)
			p.text(facts)
			p.raw("</p>")
		}
		if cs.OriginalImage != "" || cs.Thumbnail != "" {
			img := cs.OriginalImage
			if img == "" {
				img = cs.Thumbnail
			}
			p.raw("<img", src(img), attr("alt", cs.Title), ">")
		}
		p.raw(pg.Body)
		if len(cs.Results) > 0 {
			p.raw("<h2>Results</h2><ul>")
			for _, r := range cs.Results {
				p.raw("<li>")
				p.text(r)
				p.raw("</li>")
			}
			p.raw("</ul>")
		}
		if cs.LiveURL != "" {
			p.raw("<p><a", href(cs.LiveURL), ` rel="noopener" target="_blank">Visit the live site</a></p>`)
		}
		tagList(p, "/case-studies/", cs.Tags)
		p.raw("</article>")
		if len(pg.Related) > 0 {
			p.raw(`<section><h2>More like this</h2><div class="grid">`)
			for _, r := range pg.Related {
				caseStudyCard(p, r)
			}
			p.raw("</div></section>")
		}
	})
}

func blog(pg showcase.BlogListPage) templ.Component {
	return layout(pg.Meta, false, func(p *page) {
		p.raw("<h1>Blog</h1>")
		notice(p, pg.Notice)
		searchForm(p, "/blog/", pg.Criteria)
		filterLinks(p, "/blog/", pg.Criteria, "tag", pg.Tags)
		listBody(p, pg.State, len(pg.Posts), "No posts have been published yet.", "/blog/", func() {
			for _, bp := range pg.Posts {
				postCard(p, bp)
			}
		})
	})
}

func blogPost(pg showcase.BlogPostPage) templ.Component {
	bp := pg.Post
	return layout(pg.Meta, false, func(p *page) {
		p.raw(`<article class="prose"><h1>`)
		p.text(bp.Title)
		p.raw(`</h1><p class="meta"><time`, attr("datetime", bp.CreatedAt.Format("2006-01-02")), ">")
		p.text(bp.CreatedAt.Format(dateFormat))
		p.raw("</time>")
		if bp.Author != "" {
			p.raw(" &middot; ")
			p.text(bp.Author)
		}
		p.raw("</p>")
		if bp.FeaturedImage != "" {
			p.raw("<img", src(bp.FeaturedImage), attr("alt", bp.Title), ">")
		}
		p.raw(pg.Body)
		tagList(p, "/blog/", bp.Tags)
		p.raw("</article>")
		if len(pg.Related) > 0 {
			p.raw(`<section><h2>Related posts</h2><div class="grid">`)
			for _, r := range pg.Related {
				postCard(p, r)
			}
			p.raw("</div></section>")
		}
	})
}

func contact(pg showcase.ContactPage) templ.Component {
	f := pg.Form
	return layout(pg.Meta, false, func(p *page) {
		p.raw("<h1>Start a project</h1>")
		notice(p, pg.Notice)
		if pg.Sent {
			p.raw(`<p><a href="/">Back to the home page</a></p>`)
			return
		}
		p.raw(`<form method="post" action="/contact/" novalidate>`)
		csrfField(p, pg.CSRF)
		input(p, field{name: "name", label: "Name", value: f.Name, required: true}, pg.Errors)
		input(p, field{name: "email", label: "Email", value: f.Email, kind: "email", required: true}, pg.Errors)
		input(p, field{name: "phone", label: "Phone", value: f.Phone, kind: "tel"}, pg.Errors)
		input(p, field{name: "company", label: "Company", value: f.Company}, pg.Errors)
		selectField(p, "project_type", "Project type", f.ProjectType, optional(labelled(pg.ProjectTypes)))
		selectField(p, "budget", "Budget", f.Budget, optional(labelled(pg.Budgets)))
		selectField(p, "timeline", "Timeline", f.Timeline, optional(labelled(pg.Timelines)))
		textarea(p, field{name: "message", label: "Tell us about your project", value: f.Message, required: true}, "6", pg.Errors)
		selectField(p, "referral", "How did you hear about us?", f.Referral, optional(labelled(pg.Referrals)))
		p.raw(`<div class="hp" aria-hidden="true"><label for="website">Website</label>`,
			`<input type="text" id="website" name="website" tabindex="-1" autocomplete="off"></div>`,
			`<button type="submit">Send message</button></form>`)
	})
}

func notFound() templ.Component {
	meta := showcase.PageMeta{Title: "Page not found", OGType: "website"}
	return layout(meta, false, func(p *page) {
		p.raw(`<h1>Page not found</h1><p>The page you were looking for does not exist. <a href="/">Go home</a>.</p>`)
	})
}

func serverError() templ.Component {
	meta := showcase.PageMeta{Title: "Something went wrong", OGType: "website"}
	return layout(meta, false, func(p *page) {
		p.raw(`<h1>Something went wrong</h1><p>We have been notified. Please try again in a moment.</p>`)
	})
}
