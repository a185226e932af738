package views

import (
	"strconv"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/eringen/showcase"
	"github.com/eringen/showcase/analytics"
	"github.com/eringen/showcase/content"
)

func deleteButton(p *page, action, csrf, what string) {
	p.raw(`<form method="post" class="inline"`, attr("action", action), attr("data-confirm", "Delete "+what+"?"), ">")
	csrfField(p, csrf)
	p.raw(`<button type="submit" class="danger">Delete</button></form>`)
}

func adminLogin(pg showcase.AdminLoginPage) templ.Component {
	return layout(pg.Meta, true, func(p *page) {
		action, title, button := "/admin/login/", "Sign in", "Sign in"
		if pg.SignUp {
			action, title, button = "/admin/signup/", "Create an account", "Create account"
		}
		p.raw("<h1>", title, "</h1>")
		notice(p, pg.Notice)
		p.raw(`<form method="post"`, attr("action", action), ">")
		csrfField(p, pg.CSRF)
		input(p, field{name: "email", label: "Email", value: pg.Email, kind: "email", required: true}, nil)
		input(p, field{name: "password", label: "Password", kind: "password", required: true}, nil)
		p.raw(`<button type="submit">`, button, "</button></form>")
		switch {
		case pg.SignUp:
			p.raw(`<p>Already have an account? <a href="/admin/login/">Sign in</a></p>`)
		case pg.AllowSignUp:
			p.raw(`<p>No account yet? <a href="/admin/signup/">Create one</a></p>`)
		}
	})
}

func adminDashboard(pg showcase.AdminDashboardPage) templ.Component {
	return layout(pg.Meta, true, func(p *page) {
		p.raw("<h1>Dashboard</h1><p>Signed in as ")
		p.text(pg.Actor.Email)
		p.raw(`.</p><form method="post" action="/admin/logout/">`)
		csrfField(p, pg.CSRF)
		p.raw(`<button type="submit">Sign out</button></form>`)
		notice(p, pg.Notice)

		p.raw(`<p><a href="/admin/contacts/">`, strconv.Itoa(pg.Contacts), " contact ")
		if pg.Contacts == 1 {
			p.raw("submission")
		} else {
			p.raw("submissions")
		}
		p.raw("</a></p>")
		if pg.Traffic != nil {
			traffic(p, *pg.Traffic)
		}

		p.raw(`<section><h2>Case studies</h2><p><a href="/admin/case-studies/new/">New case study</a></p>`)
		if len(pg.CaseStudies) == 0 {
			p.raw(`<p class="empty">No case studies yet.</p>`)
		} else {
			p.raw("<table><thead><tr><th>Title</th><th>Category</th><th>Created</th><th></th></tr></thead><tbody>")
			for _, cs := range pg.CaseStudies {
				id := pathEscape(cs.ID)
				p.raw("<tr><td><a", attr("href", "/admin/case-studies/"+id+"/edit/"), ">")
				p.text(cs.Title)
				p.raw("</a></td><td>")
				p.text(cs.Category.Label())
				p.raw("</td><td>")
				p.text(humanize.Time(cs.CreatedAt))
				p.raw("</td><td>")
				deleteButton(p, "/admin/case-studies/"+id+"/delete/", pg.CSRF, "this case study")
				p.raw("</td></tr>")
			}
			p.raw("</tbody></table>")
		}
		p.raw(`</section><section><h2>Blog posts</h2><p><a href="/admin/blog-posts/new/">New post</a></p>`)
		if len(pg.Posts) == 0 {
			p.raw(`<p class="empty">No posts yet.</p>`)
		} else {
			p.raw("<table><thead><tr><th>Title</th><th>Status</th><th>Created</th><th></th></tr></thead><tbody>")
			for _, bp := range pg.Posts {
				id := pathEscape(bp.ID)
				p.raw("<tr><td><a", attr("href", "/admin/blog-posts/"+id+"/edit/"), ">")
				p.text(bp.Title)
				p.raw("</a></td><td>")
				if bp.Published {
					p.raw("Published")
				} else {
					p.raw("Draft")
				}
				p.raw("</td><td>")
				p.text(humanize.Time(bp.CreatedAt))
				p.raw("</td><td>")
				deleteButton(p, "/admin/blog-posts/"+id+"/delete/", pg.CSRF, "this post")
				p.raw("</td></tr>")
			}
			p.raw("</tbody></table>")
		}
		p.raw("</section>")
	})
}

func traffic(p *page, s analytics.Summary) {
	p.raw(`<section class="traffic"><h2>Traffic, last 30 days</h2>`)
	if s.Empty() {
		p.raw(`<p class="empty">No visits recorded yet.</p></section>`)
		return
	}
	p.raw("<p>", humanize.Comma(int64(s.Views)), " page views from ",
		humanize.Comma(int64(s.UniqueVisitors)), " visitors. ",
		humanize.Comma(int64(s.BotVisits)), " crawler visits not counted.</p>")
	counts(p, "Top pages", s.TopPages)
	counts(p, "Referrers", s.Referrers)
	counts(p, "Devices", s.Devices)
	p.raw("</section>")
}

func counts(p *page, title string, cs []analytics.Count) {
	if len(cs) == 0 {
		return
	}
	p.raw("<h3>", title, "</h3><table><tbody>")
	for _, c := range cs {
		p.raw("<tr><td>")
		p.text(c.Name)
		p.raw("</td><td>", humanize.Comma(int64(c.Count)), "</td></tr>")
	}
	p.raw("</tbody></table>")
}

func adminCaseStudyForm(pg showcase.CaseStudyFormPage) templ.Component {
	f := pg.Form
	return layout(pg.Meta, true, func(p *page) {
		action := "/admin/case-studies/"
		if pg.ID != "" {
			action += pathEscape(pg.ID) + "/"
			p.raw("<h1>Edit case study</h1>")
		} else {
			p.raw("<h1>New case study</h1>")
		}
		notice(p, pg.Notice)
		p.raw(`<form method="post" novalidate`, attr("action", action), ">")
		csrfField(p, pg.CSRF)
		input(p, field{name: "title", label: "Title", value: f.Title, required: true}, pg.Errors)
		textarea(p, field{name: "description", label: "Description", value: f.Description, required: true}, "3", pg.Errors)
		opts := make([]option, len(pg.Categories))
		for i, c := range pg.Categories {
			opts[i] = option{value: string(c), label: c.Label()}
		}
		selectField(p, "category", "Category", f.Category, opts)
		fieldError(p, pg.Errors, "category")
		input(p, field{name: "tags", label: "Tags (comma separated)", value: f.Tags}, pg.Errors)
		input(p, field{name: "client", label: "Client", value: f.Client}, pg.Errors)
		input(p, field{name: "duration", label: "Duration", value: f.Duration}, pg.Errors)
		input(p, field{name: "live_url", label: "Live URL", value: f.LiveURL, kind: "url"}, pg.Errors)
		input(p, field{name: "thumbnail", label: "Thumbnail URL", value: f.Thumbnail}, pg.Errors)
		input(p, field{name: "original_image", label: "Full-size image URL", value: f.OriginalImage}, pg.Errors)
		textarea(p, field{name: "results", label: "Results (one per line)", value: f.Results}, "4", pg.Errors)
		textarea(p, field{name: "content", label: "Content (Markdown)", value: f.Content}, "16", pg.Errors)
		p.raw(`<button type="submit">Save</button> <a href="/admin/">Cancel</a></form>`)
	})
}

func adminBlogPostForm(pg showcase.BlogPostFormPage) templ.Component {
	f := pg.Form
	return layout(pg.Meta, true, func(p *page) {
		action := "/admin/blog-posts/"
		if pg.ID != "" {
			action += pathEscape(pg.ID) + "/"
			p.raw("<h1>Edit blog post</h1>")
		} else {
			p.raw("<h1>New blog post</h1>")
		}
		notice(p, pg.Notice)
		p.raw(`<form method="post" novalidate`, attr("action", action), ">")
		csrfField(p, pg.CSRF)
		input(p, field{name: "title", label: "Title", value: f.Title, required: true}, pg.Errors)
		textarea(p, field{name: "excerpt", label: "Excerpt", value: f.Excerpt, required: true}, "3", pg.Errors)
		input(p, field{name: "author", label: "Author", value: f.Author}, pg.Errors)
		input(p, field{name: "tags", label: "Tags (comma separated)", value: f.Tags}, pg.Errors)
		input(p, field{name: "featured_image", label: "Featured image URL", value: f.FeaturedImage}, pg.Errors)
		textarea(p, field{name: "content", label: "Content (Markdown)", value: f.Content, required: true}, "20", pg.Errors)
		p.raw(`<label><input type="checkbox" name="published" value="on"`)
		if f.IsPublished() {
			p.raw(" checked")
		}
		p.raw(`> Published</label><button type="submit">Save</button> <a href="/admin/">Cancel</a></form>`)
	})
}

func adminContacts(pg showcase.ContactsPage) templ.Component {
	return layout(pg.Meta, true, func(p *page) {
		p.raw("<h1>Contact submissions</h1>")
		notice(p, pg.Notice)
		if len(pg.Submissions) == 0 {
			p.raw(`<p class="empty">No submissions yet.</p>`)
			return
		}
		for _, s := range pg.Submissions {
			contactCard(p, s, pg.CSRF)
		}
	})
}

func contactCard(p *page, s content.ContactSubmission, csrf string) {
	p.raw(`<article class="card"><h3>`)
	p.text(s.Name)
	p.raw(" &lt;<a", href("mailto:"+s.Email), ">")
	p.text(s.Email)
	p.raw("</a>&gt;</h3><p class=\"meta\">")
	p.text(joinNonEmpty(" · ", s.Company, s.Phone, humanize.Time(s.CreatedAt)))
	p.raw("</p><dl>")
	for _, kv := range [][2]string{
		{"Project", s.ProjectType.Label()},
		{"Budget", s.Budget.Label()},
		{"Timeline", s.Timeline.Label()},
		{"Found us via", s.Referral.Label()},
	} {
		if kv[1] == "" {
			continue
		}
		p.raw("<dt>", kv[0], "</dt><dd>")
		p.text(kv[1])
		p.raw("</dd>")
	}
	p.raw("</dl><p>")
	p.text(s.Message)
	p.raw("</p>")
	deleteButton(p, "/admin/contacts/"+pathEscape(s.ID)+"/delete/", csrf, "this submission")
	p.raw("</article>")
}

func adminImages(pg showcase.ImagesPage) templ.Component {
	return layout(pg.Meta, true, func(p *page) {
		p.raw("<h1>Images</h1>")
		notice(p, pg.Notice)
		p.raw(`<form method="post" action="/admin/images/" enctype="multipart/form-data">`)
		csrfField(p, pg.CSRF)
		p.raw(`<input type="file" name="image" accept="image/jpeg,image/png,image/gif" data-preview="upload-preview">`,
			`<img id="upload-preview" alt="" hidden><button type="submit">Upload</button></form>`)
		if len(pg.Images) == 0 {
			p.raw(`<p class="empty">No images uploaded yet.</p>`)
			return
		}
		p.raw(`<div class="grid">`)
		for _, img := range pg.Images {
			p.raw(`<figure class="card"><img`, src(img.URL()), attr("alt", img.OriginalName), ` loading="lazy"><figcaption><code>`)
			p.text(img.URL())
			p.raw("</code><br>")
			p.text(strconv.Itoa(img.Width) + "×" + strconv.Itoa(img.Height) + " · " + humanize.Bytes(uint64(img.Size)) + " · " + humanize.Time(img.UploadedAt))
			p.raw("</figcaption>")
			deleteButton(p, "/admin/images/"+pathEscape(img.Filename)+"/delete/", pg.CSRF, "this image")
			p.raw("</figure>")
		}
		p.raw("</div>")
	})
}
