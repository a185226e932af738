package showcase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/showcase/auth"
	"github.com/eringen/showcase/content"
)

// adminMessages maps the ?msg= codes used in post-redirect-get flows.
var adminMessages = map[string]string{
	"case-study-created": "Case study created.",
	"case-study-updated": "Case study updated.",
	"case-study-deleted": "Case study deleted.",
	"post-created":       "Blog post created.",
	"post-updated":       "Blog post updated.",
	"post-deleted":       "Blog post deleted.",
	"contact-deleted":    "Submission deleted.",
	"image-uploaded":     "Image uploaded.",
	"image-deleted":      "Image deleted.",
	"already-deleted":    "That item was already deleted.",
	"signed-out":         "You have been signed out.",
}

func adminNotice(c echo.Context) Notice {
	if msg, ok := adminMessages[c.QueryParam("msg")]; ok {
		return Notice{Kind: NoticeSuccess, Message: msg}
	}
	return Notice{}
}

func redirectAdmin(c echo.Context, path, msg string) error {
	if msg != "" {
		path += "?msg=" + url.QueryEscape(msg)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

func (a *App) renderLogin(c echo.Context, status int, page AdminLoginPage) error {
	title := "Sign in"
	if page.SignUp {
		title = "Create account"
	}
	page.Meta = a.meta(title, "", "admin")
	page.CSRF = CsrfToken(c)
	page.AllowSignUp = a.Config.AllowSignUp
	if page.Notice.Empty() {
		page.Notice = adminNotice(c)
	}
	return RenderStatus(c, status, a.Views.AdminLogin(page))
}

func (a *App) handleLoginPage(c echo.Context) error {
	if sessionManager(c).Current().Present() {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderLogin(c, http.StatusOK, AdminLoginPage{})
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return a.renderLogin(c, http.StatusTooManyRequests, AdminLoginPage{
			Notice: Notice{Kind: NoticeError, Message: "Too many sign-in attempts. Try again later."},
		})
	}
	email := strings.TrimSpace(c.FormValue("email"))
	err := sessionManager(c).SignIn(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		a.loginLimiter.Record(ip)
		return a.renderLogin(c, authStatus(err), AdminLoginPage{
			Email:  email,
			Notice: Notice{Kind: NoticeError, Message: authMessage(err)},
		})
	}
	a.loginLimiter.Reset(ip)
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleSignUpPage(c echo.Context) error {
	if !a.Config.AllowSignUp {
		return echo.ErrNotFound
	}
	return a.renderLogin(c, http.StatusOK, AdminLoginPage{SignUp: true})
}

func (a *App) handleSignUp(c echo.Context) error {
	if !a.Config.AllowSignUp {
		return echo.ErrNotFound
	}
	ip := c.RealIP()
	if !a.loginLimiter.Allow(ip) {
		return a.renderLogin(c, http.StatusTooManyRequests, AdminLoginPage{
			SignUp: true,
			Notice: Notice{Kind: NoticeError, Message: "Too many attempts. Try again later."},
		})
	}
	email := strings.TrimSpace(c.FormValue("email"))
	res, err := sessionManager(c).SignUp(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		return a.renderLogin(c, authStatus(err), AdminLoginPage{
			SignUp: true,
			Email:  email,
			Notice: Notice{Kind: NoticeError, Message: authMessage(err)},
		})
	}
	if res.ConfirmationPending {
		return a.renderLogin(c, http.StatusOK, AdminLoginPage{
			Email:  res.Actor.Email,
			Notice: Notice{Kind: NoticeInfo, Message: "Check your inbox for a link to confirm your account."},
		})
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleVerify(c echo.Context) error {
	actor, err := a.Users.Confirm(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return a.renderLogin(c, authStatus(err), AdminLoginPage{
			Notice: Notice{Kind: NoticeError, Message: authMessage(err)},
		})
	}
	return a.renderLogin(c, http.StatusOK, AdminLoginPage{
		Email:  actor.Email,
		Notice: Notice{Kind: NoticeSuccess, Message: "Email confirmed. You can sign in now."},
	})
}

func (a *App) handleLogout(c echo.Context) error {
	sessionManager(c).SignOut(c.Request().Context())
	return redirectAdmin(c, "/admin/login/", "signed-out")
}

func authStatus(err error) int {
	var ae *auth.AuthError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case auth.KindUnavailable:
		return http.StatusServiceUnavailable
	case auth.KindAccountExists:
		return http.StatusConflict
	case auth.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case auth.KindSignUpDisabled:
		return http.StatusForbidden
	case auth.KindInvalidToken:
		return http.StatusBadRequest
	}
	return http.StatusUnauthorized
}

func authMessage(err error) string {
	var ae *auth.AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return "Something went wrong. Please try again."
}

func (a *App) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	actor, _ := auth.ActorFrom(ctx)
	page := AdminDashboardPage{
		Meta:   a.meta("Dashboard", "", "admin"),
		Notice: adminNotice(c),
		CSRF:   CsrfToken(c),
		Actor:  actor,
	}

	var studies []content.CaseStudy
	var posts []content.BlogPost
	var contacts []content.ContactSubmission
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		studies, err = a.Store.CaseStudies.ListAll(gctx, content.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		posts, err = a.Store.BlogPosts.ListAll(gctx, content.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		contacts, err = a.Store.Contacts.ListAll(gctx, content.ListOptions{})
		return err
	})
	if a.Analytics != nil {
		// Traffic is optional on the dashboard; its failure is only logged.
		g.Go(func() error {
			sum, err := a.traffic(gctx, trafficDays)
			if err != nil {
				a.Log.Warn("dashboard: load traffic", zap.Error(err))
				return nil
			}
			page.Traffic = &sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.Log.Warn("dashboard: load content", zap.Error(err))
		page.Notice = Notice{Kind: NoticeError, Message: "Some content could not be loaded. Reload to try again."}
		studies, posts, contacts = nil, nil, nil
	}
	page.CaseStudies = orEmpty(studies)
	page.Posts = orEmpty(posts)
	page.Contacts = len(contacts)
	return Render(c, a.Views.AdminDashboard(page))
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// fieldErrors turns a Validation error into a field -> message map for the
// form templates.
func fieldErrors(err error) map[string]string {
	var se *content.StoreError
	if !errors.As(err, &se) || len(se.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(se.Fields))
	for _, f := range se.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// mutationNotice describes a failed create/update/delete for inline display.
func mutationNotice(err error) Notice {
	msg := "Something went wrong. Your changes were not saved."
	switch content.KindOf(err) {
	case content.KindValidation:
		msg = "Please fix the highlighted fields."
	case content.KindPermissionDenied:
		msg = "Your session has ended. Sign in again in another tab, then resubmit."
	case content.KindNetwork:
		msg = "The content store is unavailable. Your changes were not saved; try again."
	case content.KindNotFound:
		msg = "This item no longer exists."
	}
	return Notice{Kind: NoticeError, Message: msg}
}

// Case studies

func (a *App) renderCaseStudyForm(c echo.Context, status int, page CaseStudyFormPage) error {
	title := "New case study"
	if page.ID != "" {
		title = "Edit case study"
	}
	page.Meta = a.meta(title, "", "admin")
	page.CSRF = CsrfToken(c)
	page.Categories = content.Categories()
	return RenderStatus(c, status, a.Views.AdminCaseStudyForm(page))
}

func (a *App) handleNewCaseStudy(c echo.Context) error {
	return a.renderCaseStudyForm(c, http.StatusOK, CaseStudyFormPage{})
}

func (a *App) handleEditCaseStudy(c echo.Context) error {
	cs, err := a.Store.CaseStudies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return a.renderCaseStudyForm(c, http.StatusOK, CaseStudyFormPage{
		ID:   cs.ID,
		Form: content.CaseStudyFormFrom(cs),
	})
}

func (a *App) handleCreateCaseStudy(c echo.Context) error {
	var form content.CaseStudyForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()
	if _, err := a.Store.CaseStudies.Create(ctx, form.CaseStudy()); err != nil {
		return a.caseStudyFailed(c, "", form, err)
	}
	a.Public.Invalidate(ctx)
	return redirectAdmin(c, "/admin/", "case-study-created")
}

func (a *App) handleUpdateCaseStudy(c echo.Context) error {
	var form content.CaseStudyForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := a.Store.CaseStudies.Update(ctx, id, form.Patch()); err != nil {
		return a.caseStudyFailed(c, id, form, err)
	}
	a.Public.Invalidate(ctx)
	return redirectAdmin(c, "/admin/", "case-study-updated")
}

// caseStudyFailed re-renders the submitted form with the error so nothing
// typed is lost.
func (a *App) caseStudyFailed(c echo.Context, id string, form content.CaseStudyForm, err error) error {
	a.logMutation(c, "case study", err)
	return a.renderCaseStudyForm(c, storeStatus(err), CaseStudyFormPage{
		ID:     id,
		Form:   form,
		Errors: fieldErrors(err),
		Notice: mutationNotice(err),
	})
}

func (a *App) handleDeleteCaseStudy(c echo.Context) error {
	ctx := c.Request().Context()
	err := a.Store.CaseStudies.Delete(ctx, c.Param("id"))
	if errors.Is(err, content.ErrNotFound) {
		return redirectAdmin(c, "/admin/", "already-deleted")
	}
	if err != nil {
		return err
	}
	a.Public.Invalidate(ctx)
	return redirectAdmin(c, "/admin/", "case-study-deleted")
}

// Blog posts

func (a *App) renderBlogPostForm(c echo.Context, status int, page BlogPostFormPage) error {
	title := "New blog post"
	if page.ID != "" {
		title = "Edit blog post"
	}
	page.Meta = a.meta(title, "", "admin")
	page.CSRF = CsrfToken(c)
	return RenderStatus(c, status, a.Views.AdminBlogPostForm(page))
}

func (a *App) handleNewBlogPost(c echo.Context) error {
	return a.renderBlogPostForm(c, http.StatusOK, BlogPostFormPage{
		Form: content.BlogPostForm{Author: a.Config.Author},
	})
}

func (a *App) handleEditBlogPost(c echo.Context) error {
	bp, err := a.Store.BlogPosts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return a.renderBlogPostForm(c, http.StatusOK, BlogPostFormPage{
		ID:   bp.ID,
		Form: content.BlogPostFormFrom(bp),
	})
}

func (a *App) handleCreateBlogPost(c echo.Context) error {
	var form content.BlogPostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()
	if _, err := a.Store.BlogPosts.Create(ctx, form.BlogPost()); err != nil {
		return a.blogPostFailed(c, "", form, err)
	}
	a.Public.Invalidate(ctx)
	return redirectAdmin(c, "/admin/", "post-created")
}

func (a *App) handleUpdateBlogPost(c echo.Context) error {
	var form content.BlogPostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	if _, err := a.Store.BlogPosts.Update(ctx, id, form.Patch()); err != nil {
		return a.blogPostFailed(c, id, form, err)
	}
	a.Public.Invalidate(ctx)
	return redirectAdmin(c, "/admin/", "post-updated")
}

func (a *App) blogPostFailed(c echo.Context, id string, form content.BlogPostForm, err error) error {
	a.logMutation(c, "blog post", err)
	return a.renderBlogPostForm(c, storeStatus(err), BlogPostFormPage{
		ID:     id,
		Form:   form,
		Errors: fieldErrors(err),
		Notice: mutationNotice(err),
	})
}

func (a *App) handleDeleteBlogPost(c echo.Context) error {
	ctx := c.Request().Context()
	err := a.Store.BlogPosts.Delete(ctx, c.Param("id"))
	if errors.Is(err, content.ErrNotFound) {
		return redirectAdmin(c, "/admin/", "already-deleted")
	}
	if err != nil {
		return err
	}
	a.Public.Invalidate(ctx)
	return redirectAdmin(c, "/admin/", "post-deleted")
}

// Contact submissions

func (a *App) handleContacts(c echo.Context) error {
	page := ContactsPage{
		Meta:   a.meta("Contact submissions", "", "admin", "contacts"),
		Notice: adminNotice(c),
		CSRF:   CsrfToken(c),
	}
	items, err := a.Store.Contacts.ListAll(c.Request().Context(), content.ListOptions{})
	if err != nil {
		a.Log.Warn("list contact submissions", zap.Error(err))
		page.Notice = Notice{Kind: NoticeError, Message: "Submissions could not be loaded. Reload to try again."}
	}
	page.Submissions = orEmpty(items)
	return Render(c, a.Views.AdminContacts(page))
}

func (a *App) handleDeleteContact(c echo.Context) error {
	err := a.Store.Contacts.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, content.ErrNotFound) {
		return redirectAdmin(c, "/admin/contacts/", "already-deleted")
	}
	if err != nil {
		return err
	}
	return redirectAdmin(c, "/admin/contacts/", "contact-deleted")
}

func (a *App) logMutation(c echo.Context, what string, err error) {
	level := a.Log.Warn
	if k := content.KindOf(err); k == content.KindValidation || k == content.KindNotFound {
		level = a.Log.Debug
	}
	level("mutation failed",
		zap.String("entity", what),
		zap.String("path", c.Request().URL.Path),
		zap.String("actor", contextActor(c.Request().Context())),
		zap.Error(err))
}

func contextActor(ctx context.Context) string {
	if a, ok := auth.ActorFrom(ctx); ok {
		return a.Email
	}
	return ""
}
