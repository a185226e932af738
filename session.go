package showcase

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/showcase/auth"
)

const (
	sessionName = "admin_session"
	managerKey  = "auth.manager"
)

// withSession restores the request's auth.Manager from the session cookie
// and keeps the cookie in step with every later transition. When a session
// is present its actor is put into the request context, which is what the
// content repositories check.
func (a *App) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(sessionName, c)
		if err != nil {
			// A cookie signed with an old secret; start over.
			a.Log.Debug("discarding unreadable session", zap.Error(err))
		}
		m := auth.NewManager(a.Users, a.Log.Named("session"))

		actor, issued, ok := sessionActor(sess)
		expired := ok && time.Since(issued) > a.Config.SessionMaxAge
		if ok {
			switch err := a.Users.Validate(c.Request().Context(), actor, issued); {
			case errors.Is(err, auth.ErrSessionRevoked):
				ok = false
			case err != nil:
				return fmt.Errorf("validate session: %w", err)
			}
		}
		if ok {
			m.Restore(&actor)
		} else {
			m.Restore(nil)
			if sess != nil && sess.Values["uid"] != nil {
				a.saveSession(c, sess, auth.Session{State: auth.StateAbsent})
			}
		}

		unsubscribe := m.Subscribe(func(s auth.Session) {
			if s.State == auth.StatePending {
				return
			}
			a.saveSession(c, sess, s)
			ctx := c.Request().Context()
			if s.Present() {
				ctx = auth.WithActor(ctx, s.Actor)
			} else {
				ctx = auth.WithActor(ctx, auth.Actor{})
			}
			c.SetRequest(c.Request().WithContext(ctx))
		})
		defer unsubscribe()

		if expired {
			m.Expire()
		}
		if cur := m.Current(); cur.Present() {
			c.SetRequest(c.Request().WithContext(auth.WithActor(c.Request().Context(), cur.Actor)))
		}
		c.Set(managerKey, m)
		return next(c)
	}
}

func sessionActor(sess *sessions.Session) (auth.Actor, time.Time, bool) {
	if sess == nil {
		return auth.Actor{}, time.Time{}, false
	}
	id, _ := sess.Values["uid"].(string)
	email, _ := sess.Values["email"].(string)
	issued, _ := sess.Values["issued"].(int64)
	if id == "" || issued == 0 {
		return auth.Actor{}, time.Time{}, false
	}
	return auth.Actor{ID: id, Email: email}, time.Unix(0, issued), true
}

// saveSession writes s into the cookie. Failures are logged: the response
// is already being produced and the next request re-validates anyway.
func (a *App) saveSession(c echo.Context, sess *sessions.Session, s auth.Session) {
	if sess == nil {
		return
	}
	if s.Present() {
		sess.Values["uid"] = s.Actor.ID
		sess.Values["email"] = s.Actor.Email
		sess.Values["issued"] = time.Now().UnixNano()
		sess.Options.MaxAge = int(a.Config.SessionMaxAge / time.Second)
	} else {
		delete(sess.Values, "uid")
		delete(sess.Values, "email")
		delete(sess.Values, "issued")
		sess.Options.MaxAge = -1
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		a.Log.Warn("save session", zap.Error(err))
	}
}

// sessionManager returns the Manager restored by withSession.
func sessionManager(c echo.Context) *auth.Manager {
	m, _ := c.Get(managerKey).(*auth.Manager)
	return m
}

// requireActor is the route guard of the admin surface. Protected content
// is only rendered once the guard reports authenticated; otherwise the
// sign-in page is shown in its place.
func (a *App) requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		m := sessionManager(c)
		if m == nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "session middleware missing")
		}
		var state auth.GuardState
		g := auth.NewGuard(m, func(s auth.GuardState) { state = s })
		defer g.Close()

		switch state {
		case auth.GuardAuthenticated:
			return next(c)
		case auth.GuardLoading:
			return echo.NewHTTPError(http.StatusServiceUnavailable, "session not resolved")
		}
		return a.renderLogin(c, http.StatusUnauthorized, AdminLoginPage{
			Notice: Notice{Kind: NoticeInfo, Message: "Please sign in to continue."},
		})
	}
}
