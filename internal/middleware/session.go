package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trackforge/internal/model"
	"github.com/iliyamo/trackforge/internal/repository"
	"github.com/iliyamo/trackforge/internal/session"
)

// UserLookup resolves a session username to its stored user.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// RequireSession returns a middleware that only lets requests with a live
// session through.  Requests without one are redirected to redirectTo.  A
// session naming a user that no longer exists is cleared and redirected to
// /login.  On success the acting user is stored under IdentityKey.
func RequireSession(mgr session.Manager, users UserLookup, redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, err := mgr.Username(c.Request())
			if errors.Is(err, session.ErrNoSession) {
				return c.Redirect(http.StatusFound, redirectTo)
			}
			if err != nil {
				return err
			}

			u, err := users.GetByUsername(c.Request().Context(), username)
			if errors.Is(err, repository.ErrUserNotFound) {
				slog.Warn("Session references unknown user, invalidating", "username", username)
				if err := mgr.Logout(c.Response(), c.Request()); err != nil {
					return err
				}
				return c.Redirect(http.StatusFound, "/login")
			}
			if err != nil {
				return err
			}

			c.Set(IdentityKey, model.Identity{UserID: u.ID, Username: u.Username})
			return next(c)
		}
	}
}
