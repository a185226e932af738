package showcase

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/showcase/analytics"
)

const (
	trafficDays    = 30
	maxTrafficDays = 366
)

// traffic summarizes the last days days, today included.
func (a *App) traffic(ctx context.Context, days int) (analytics.Summary, error) {
	now := time.Now().UTC()
	to := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)
	return a.Analytics.Summarize(ctx, to.AddDate(0, 0, -days), to)
}

// handleTraffic serves the visit summary as JSON for ?days=N (default 30).
func (a *App) handleTraffic(c echo.Context) error {
	if a.Analytics == nil {
		return echo.ErrNotFound
	}
	days := trafficDays
	if v := c.QueryParam("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTrafficDays {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be between 1 and 366")
		}
		days = n
	}
	sum, err := a.traffic(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}
