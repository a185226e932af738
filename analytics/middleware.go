package analytics

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RecorderConfig configures Recorder.
type RecorderConfig struct {
	// SiteHost is the site's own host name; referrers from it are Direct.
	SiteHost string
	// Skip excludes paths from recording. Admin, API, asset and file
	// paths are always excluded.
	Skip func(path string) bool
}

// Recorder returns middleware that records successful GET page views
// after the handler ran. Requests sending DNT: 1 or Sec-GPC: 1 are not
// recorded. Failures to record are logged and never affect the response.
func (s *Store) Recorder(cfg RecorderConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			req := c.Request()
			if err != nil || req.Method != http.MethodGet || c.Response().Status != http.StatusOK {
				return err
			}
			p := req.URL.Path
			if !trackable(p) || (cfg.Skip != nil && cfg.Skip(p)) {
				return nil
			}
			if req.Header.Get("DNT") == "1" || req.Header.Get("Sec-GPC") == "1" {
				return nil
			}
			// The request context may be cancelled once the response is out.
			ctx, cancel := context.WithTimeout(context.WithoutCancel(req.Context()), 2*time.Second)
			defer cancel()
			s.observe(ctx, p, c.RealIP(), req.UserAgent(), req.Referer(), cfg.SiteHost)
			return nil
		}
	}
}

func (s *Store) observe(ctx context.Context, p, ip, ua, ref, siteHost string) {
	if bot := BotName(ua); bot != "" {
		if err := s.RecordBot(ctx, BotVisit{Bot: bot, Path: p}); err != nil {
			s.log.Warn("record bot visit", zap.String("path", p), zap.Error(err))
		}
		return
	}
	browser, os, device := ParseUserAgent(ua)
	v := Visit{
		VisitorID: s.hash.visitorID(ip, ua),
		Path:      p,
		Browser:   browser,
		OS:        os,
		Device:    device,
		Referrer:  Referrer(ref, siteHost),
	}
	if err := s.Record(ctx, v); err != nil {
		s.log.Warn("record visit", zap.String("path", p), zap.Error(err))
	}
}

func trackable(p string) bool {
	for _, prefix := range []string{"/admin", "/api/", "/assets/", "/public/"} {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	return path.Ext(p) == ""
}
