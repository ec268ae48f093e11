package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler writes every error as a plain-text status line such as
// "Not Found".  Server-side failures are logged; their details never reach
// the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"error", err,
		)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.String(code, http.StatusText(code))
	}
	if werr != nil {
		slog.Error("Failed to write error response", "error", werr)
	}
}
