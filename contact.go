package showcase

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/content"
)

func (a *App) renderContact(c echo.Context, status int, page ContactPage) error {
	page.Meta = a.meta("Contact", "Tell us about your project.", "contact")
	page.CSRF = CsrfToken(c)
	page.ProjectTypes = content.ProjectTypes()
	page.Budgets = content.Budgets()
	page.Timelines = content.Timelines()
	page.Referrals = content.Referrals()
	return RenderStatus(c, status, a.Views.Contact(page))
}

func (a *App) handleContactPage(c echo.Context) error {
	page := ContactPage{}
	if c.QueryParam("sent") == "1" {
		page.Sent = true
		page.Notice = Notice{Kind: NoticeSuccess, Message: "Thanks! We'll get back to you within two business days."}
	}
	return a.renderContact(c, http.StatusOK, page)
}

func (a *App) handleContactSubmit(c echo.Context) error {
	var form content.ContactForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if form.IsSpam() {
		a.Log.Debug("contact honeypot triggered", zap.String("ip", c.RealIP()))
		return c.Redirect(http.StatusSeeOther, "/contact/?sent=1")
	}
	if !a.contactLimiter.Allow(c.RealIP()) {
		return a.renderContact(c, http.StatusTooManyRequests, ContactPage{
			Form:   form,
			Notice: Notice{Kind: NoticeError, Message: "You've sent several messages already. Please try again later."},
		})
	}
	if _, err := a.Store.Contacts.Create(c.Request().Context(), form.Submission()); err != nil {
		a.logMutation(c, "contact submission", err)
		return a.renderContact(c, storeStatus(err), ContactPage{
			Form:   form,
			Errors: fieldErrors(err),
			Notice: contactNotice(err),
		})
	}
	return c.Redirect(http.StatusSeeOther, "/contact/?sent=1")
}

func contactNotice(err error) Notice {
	msg := "Your message could not be sent. Please try again."
	switch content.KindOf(err) {
	case content.KindValidation:
		msg = "Please fix the highlighted fields."
	case content.KindNetwork:
		msg = "We couldn't reach our inbox. Please try again in a moment."
	}
	return Notice{Kind: NoticeError, Message: msg}
}
