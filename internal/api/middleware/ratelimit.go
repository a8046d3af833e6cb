package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/citypulse/report-system/internal/api/metrics"
	redisdb "github.com/citypulse/report-system/internal/infrastructure/db/redis"
)

// LoginRateLimit throttles login attempts per phone (falling back to the
// client IP when the body carries no phone). The underlying counter fails
// open: if Redis is unreachable the request proceeds.
func LoginRateLimit(attempts *redisdb.AttemptCounter, maxPerMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	if maxPerMinute <= 0 {
		maxPerMinute = 5
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if attempts == nil {
				return next(c)
			}

			key := peekPhone(c)
			if key == "" {
				key = c.RealIP()
			}

			count, err := attempts.Bump(c.Request().Context(), key)
			if err != nil {
				log.Warn().Err(err).Msg("login throttle unavailable, failing open")
				return next(c)
			}

			if count > int64(maxPerMinute) {
				metrics.LoginThrottledTotal.Inc()
				log.Warn().Str("key", key).Int64("attempts", count).Msg("login throttled")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
			}

			return next(c)
		}
	}
}

// peekPhone reads the phone field from the JSON body without consuming it, so
// the handler's bind still works.
func peekPhone(c echo.Context) string {
	req := c.Request()
	if req.Body == nil {
		return ""
	}

	body, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return ""
	}
	req.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Phone
}
