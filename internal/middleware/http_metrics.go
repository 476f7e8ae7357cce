package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// MetricsRecorder is the slice of the metrics surface the HTTP layer needs.
type MetricsRecorder interface {
	IncrementCounter(name string, tags map[string]string)
}

// HTTPMetrics counts every request by route and response status. Errors are
// passed through untouched; their status is read from the echo error before
// the error handler commits it.
func HTTPMetrics(recorder MetricsRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}

			recorder.IncrementCounter("http.request", map[string]string{
				"handler": c.Path(),
				"status":  strconv.Itoa(status),
			})

			return err
		}
	}
}
