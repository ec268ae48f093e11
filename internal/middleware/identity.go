package middleware

// identity.go stores and retrieves the acting user for the current request.
// RequireSession is the only writer; handlers read it through Identity.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trackforge/internal/model"
)

// IdentityKey is the echo.Context key holding the model.Identity.
const IdentityKey = "identity"

// Identity returns the acting user set by RequireSession.  ok is false on
// routes that are not wrapped by it.
func Identity(c echo.Context) (model.Identity, bool) {
	id, ok := c.Get(IdentityKey).(model.Identity)
	return id, ok
}
