package showcase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/content"
)

type apiError struct {
	Error  string               `json:"error"`
	Fields []content.FieldError `json:"fields,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// storeStatus maps a content error to the HTTP status reported for it.
func storeStatus(err error) int {
	switch content.KindOf(err) {
	case content.KindNotFound:
		return http.StatusNotFound
	case content.KindPermissionDenied:
		return http.StatusUnauthorized
	case content.KindNetwork:
		return http.StatusServiceUnavailable
	case content.KindValidation:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func apiFailure(c echo.Context, err error) error {
	body := apiError{Error: content.KindOf(err).String()}
	var se *content.StoreError
	if errors.As(err, &se) {
		body.Fields = se.Fields
	}
	return c.JSON(storeStatus(err), body)
}

func (a *App) apiCaseStudies(c echo.Context) error {
	all, err := a.Public.CaseStudies(c.Request().Context())
	if err != nil {
		a.Log.Warn("api: list case studies", zap.Error(err))
		return apiFailure(c, err)
	}
	items := content.Filter(all, criteriaFrom(c))
	return c.JSON(http.StatusOK, listResponse[content.CaseStudy]{Items: orEmpty(items), Total: len(all)})
}

func (a *App) apiCaseStudy(c echo.Context) error {
	cs, err := a.Public.CaseStudy(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiFailure(c, err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (a *App) apiBlogPosts(c echo.Context) error {
	all, err := a.Public.Posts(c.Request().Context())
	if err != nil {
		a.Log.Warn("api: list blog posts", zap.Error(err))
		return apiFailure(c, err)
	}
	criteria := criteriaFrom(c)
	criteria.Category = ""
	items := content.Filter(all, criteria)
	return c.JSON(http.StatusOK, listResponse[content.BlogPost]{Items: orEmpty(items), Total: len(all)})
}

func (a *App) apiBlogPost(c echo.Context) error {
	post, err := a.Public.Post(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiFailure(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

func (a *App) apiContact(c echo.Context) error {
	var form content.ContactForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid request body"})
	}
	if form.IsSpam() {
		// Answer like a success so bots learn nothing.
		return c.JSON(http.StatusCreated, map[string]string{"status": "received"})
	}
	ip := c.RealIP()
	if !a.contactLimiter.Allow(ip) {
		return c.JSON(http.StatusTooManyRequests, apiError{Error: "too many messages, try again later"})
	}
	sub, err := a.Store.Contacts.Create(c.Request().Context(), form.Submission())
	if err != nil {
		a.logMutation(c, "contact submission", err)
		return apiFailure(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "received", "id": sub.ID})
}

// apiHealth reports whether the content database answers, for load
// balancers and uptime checks.
func (a *App) apiHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := a.Store.Ping(ctx); err != nil {
		a.Log.Error("health check failed", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
