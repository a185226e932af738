package showcase

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/showcase/content"
	"github.com/eringen/showcase/markdown"
)

const homeItems = 3

// DefaultPlans is the pricing shown when the App is not given its own.
var DefaultPlans = []PricingPlan{
	{
		Name:        "Starter",
		Price:       "$2,500",
		Description: "A fast marketing site for a new business.",
		Features:    []string{"Up to 5 pages", "Responsive design", "Contact form", "Basic SEO"},
	},
	{
		Name:        "Growth",
		Price:       "$7,500",
		Description: "A content-managed site that grows with you.",
		Features:    []string{"Up to 15 pages", "Blog and case studies", "Admin dashboard", "Analytics setup"},
		Highlighted: true,
	},
	{
		Name:        "Custom",
		Price:       "Let's talk",
		Description: "Web apps, stores and everything in between.",
		Features:    []string{"Custom features", "E-commerce", "Integrations", "Ongoing support"},
	},
}

func (a *App) meta(title, description string, path ...string) PageMeta {
	if description == "" {
		description = a.Config.Description
	}
	full := a.Config.Name
	if title != "" {
		full = title + " | " + a.Config.Name
	}
	return PageMeta{
		SiteName:    a.Config.Name,
		Title:       full,
		Description: description,
		URL:         BuildURL(a.Config.URL, path...),
		OGType:      "website",
	}
}

// failedNotice is shown when a public list could not be fetched. The page
// still renders, with the list empty.
func failedNotice(what string) Notice {
	return Notice{Kind: NoticeError, Message: "We couldn't load " + what + " right now. Please try again in a moment."}
}

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	page := HomePage{Meta: a.meta("", "")}
	page.Meta.JSONLD = WebsiteJSONLD(a.Config)

	var studies []content.CaseStudy
	var posts []content.BlogPost
	var studiesErr, postsErr error
	// Each list degrades on its own, so neither goroutine fails the group.
	var g errgroup.Group
	g.Go(func() error {
		studies, studiesErr = a.Public.CaseStudies(ctx)
		return nil
	})
	g.Go(func() error {
		posts, postsErr = a.Public.Posts(ctx)
		return nil
	})
	_ = g.Wait()

	if studiesErr != nil || postsErr != nil {
		a.Log.Warn("home: load content", zap.NamedError("case_studies", studiesErr), zap.NamedError("posts", postsErr))
		page.Notice = failedNotice("some of our latest work")
	}
	page.CaseStudies = head(orEmpty(studies), homeItems)
	page.Posts = head(orEmpty(posts), homeItems)
	return Render(c, a.Views.Home(page))
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func (a *App) handlePricing(c echo.Context) error {
	return Render(c, a.Views.Pricing(PricingPage{
		Meta:  a.meta("Pricing", "Packages and pricing.", "pricing"),
		Plans: a.Plans,
	}))
}

func (a *App) handleAbout(c echo.Context) error {
	return Render(c, a.Views.About(AboutPage{
		Meta: a.meta("About", "", "about"),
	}))
}

func criteriaFrom(c echo.Context) content.Criteria {
	return content.Criteria{
		Category: c.QueryParam("category"),
		Tag:      c.QueryParam("tag"),
		Search:   c.QueryParam("q"),
	}
}

func (a *App) handleCaseStudies(c echo.Context) error {
	page := CaseStudyListPage{
		Meta:     a.meta("Case studies", "Selected client work.", "case-studies"),
		Criteria: criteriaFrom(c),
	}
	all, err := a.Public.CaseStudies(c.Request().Context())
	if err != nil {
		a.Log.Warn("list case studies", zap.Error(err))
		page.Notice = failedNotice("case studies")
	}
	all = orEmpty(all)
	page.Items = content.Filter(all, page.Criteria)
	page.Total = len(all)
	page.State = listState(len(all), err != nil)
	page.Categories = content.DistinctCategories(all)
	page.Tags = content.DistinctTags(all)
	return Render(c, a.Views.CaseStudies(page))
}

func (a *App) handleCaseStudy(c echo.Context) error {
	ctx := c.Request().Context()
	cs, err := a.Public.CaseStudy(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	body, err := markdown.ToHTML(cs.Content)
	if err != nil {
		return err
	}
	page := CaseStudyPage{
		Meta:  a.meta(cs.Title, markdown.PlainText(cs.Description), "case-studies", cs.ID),
		Study: cs,
		Body:  body,
	}
	page.Meta.OGType = "article"
	page.Meta.JSONLD = CaseStudyJSONLD(cs, a.Config)
	if all, err := a.Public.CaseStudies(ctx); err == nil {
		others := content.Select[content.CaseStudy](all, func(o content.CaseStudy) bool { return o.ID != cs.ID })
		page.Related = head(content.Filter(others, content.Criteria{Category: string(cs.Category)}), homeItems)
	}
	return Render(c, a.Views.CaseStudy(page))
}

func (a *App) handleBlog(c echo.Context) error {
	criteria := criteriaFrom(c)
	criteria.Category = ""
	page := BlogListPage{
		Meta:     a.meta("Blog", "", "blog"),
		Criteria: criteria,
	}
	all, err := a.Public.Posts(c.Request().Context())
	if err != nil {
		a.Log.Warn("list blog posts", zap.Error(err))
		page.Notice = failedNotice("blog posts")
	}
	all = orEmpty(all)
	page.Posts = content.Filter(all, criteria)
	page.Total = len(all)
	page.State = listState(len(all), err != nil)
	page.Tags = content.DistinctTags(all)
	return Render(c, a.Views.Blog(page))
}

func (a *App) handleBlogPost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Public.Post(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		return err
	}
	page := BlogPostPage{
		Meta: a.meta(post.Title, markdown.PlainText(post.Excerpt), "blog", post.ID),
		Post: post,
		Body: body,
	}
	page.Meta.OGType = "article"
	page.Meta.JSONLD = BlogPostingJSONLD(post, a.Config)
	if posts, err := a.Public.Posts(ctx); err == nil {
		page.Related = content.Related(post, posts, homeItems)
	}
	return Render(c, a.Views.BlogPost(page))
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	studies, err := a.Public.CaseStudies(ctx)
	if err != nil {
		return err
	}
	posts, err := a.Public.Posts(ctx)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, studies, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Public.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.staticDir, "favicon.svg"))
}

// handleRobots serves the user's robots.txt, or a default that points at
// the sitemap and keeps crawlers out of the admin.
func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	body := "User-agent: *\nDisallow: /admin/\nDisallow: /api/\n\nSitemap: " + BuildURL(a.Config.URL) + "sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, content.ErrNotFound) {
		err = echo.ErrNotFound
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if !ok && content.KindOf(err) == content.KindNetwork {
		he, ok = echo.NewHTTPError(http.StatusServiceUnavailable).SetInternal(err), true
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		if !ok {
			a.Log.Error("api error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
			he = echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}
		a.Echo.DefaultHTTPErrorHandler(he, c)
		return
	}
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", zap.Int("status", code), zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
