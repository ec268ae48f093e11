package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trackforge/internal/metrics"
	"github.com/iliyamo/trackforge/internal/model"
	"github.com/iliyamo/trackforge/internal/repository"
	"github.com/iliyamo/trackforge/internal/session"
	"github.com/iliyamo/trackforge/internal/utils"
)

// MinPasswordLength applies to password changes made from the profile page.
const MinPasswordLength = 6

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Users      *repository.UserRepo
	Sessions   session.Manager
	Metrics    *metrics.DomainMetrics
	BcryptCost int
}

func NewAuthHandler(users *repository.UserRepo, sessions session.Manager, m *metrics.DomainMetrics, bcryptCost int) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, Metrics: m, BcryptCost: bcryptCost}
}

// profilePage is the data behind profile.html.
type profilePage struct {
	User    model.User
	Error   string
	Success string
}

// Register shows the sign-up form and creates accounts.  A taken username is
// reported as plain text and nothing is inserted.  Email and password are
// stored as given apart from hashing.
func (h *AuthHandler) Register(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "register.html", nil)
	}
	f, err := formFields(c, "username", "password", "email")
	if err != nil {
		return err
	}
	username, password, email := f[0], f[1], f[2]

	ctx := c.Request().Context()
	exists, err := h.Users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		h.Metrics.Auth(metrics.EventRegister, false)
		return c.String(http.StatusOK, msgUserExists)
	}

	if _, err := h.Users.Create(ctx, username, email, password, h.BcryptCost); err != nil {
		return err
	}
	if err := h.Sessions.Login(c.Response(), c.Request(), username); err != nil {
		return err
	}
	h.Metrics.Auth(metrics.EventRegister, true)
	slog.Info("User registered", "username", username)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Login checks credentials and starts a session.  Unknown users and wrong
// passwords get the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "login.html", nil)
	}
	f, err := formFields(c, "username", "password")
	if err != nil {
		return err
	}
	username, password := f[0], f[1]

	u, err := h.Users.GetByUsername(c.Request().Context(), username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}
	if err != nil || !utils.VerifyPassword(u.Password, password) {
		h.Metrics.Auth(metrics.EventLogin, false)
		slog.Info("Login failed", "username", username)
		return c.String(http.StatusOK, msgInvalidCredentials)
	}

	if err := h.Sessions.Login(c.Response(), c.Request(), u.Username); err != nil {
		return err
	}
	h.Metrics.Auth(metrics.EventLogin, true)
	slog.Info("User logged in", "username", u.Username)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session, if any, and returns to the home page.
func (h *AuthHandler) Logout(c echo.Context) error {
	_, err := h.Sessions.Username(c.Request())
	hadSession := err == nil
	if err := h.Sessions.Logout(c.Response(), c.Request()); err != nil {
		return err
	}
	if hadSession {
		h.Metrics.Auth(metrics.EventLogout, true)
	}
	return c.Redirect(http.StatusFound, "/")
}

// Profile shows the account and changes its password.  An empty password
// leaves everything unchanged; a short one re-renders the form with an error.
func (h *AuthHandler) Profile(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, ident.UserID)
	if err != nil {
		return err
	}
	page := profilePage{User: u}

	if c.Request().Method == http.MethodPost {
		f, err := formFields(c, "password")
		if err != nil {
			return err
		}
		newPassword := f[0]

		if newPassword != "" {
			if utf8.RuneCountInString(newPassword) < MinPasswordLength {
				h.Metrics.Auth(metrics.EventPasswordChange, false)
				page.Error = "Password must be at least 6 characters"
				return c.Render(http.StatusOK, "profile.html", page)
			}
			if err := h.Users.UpdatePassword(ctx, u.ID, newPassword, h.BcryptCost); err != nil {
				return err
			}
			h.Metrics.Auth(metrics.EventPasswordChange, true)
			slog.Info("Password changed", "username", u.Username)
			page.Success = "Password updated successfully"
		}
	}
	return c.Render(http.StatusOK, "profile.html", page)
}

// Forgot overwrites the password of the named user without any proof of
// identity.  Anyone who knows a username can take over that account.
func (h *AuthHandler) Forgot(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "forgot.html", nil)
	}
	f, err := formFields(c, "username", "password")
	if err != nil {
		return err
	}
	username, password := f[0], f[1]

	ctx := c.Request().Context()
	u, err := h.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		h.Metrics.Auth(metrics.EventPasswordReset, false)
		return c.String(http.StatusOK, msgUserNotFound)
	}
	if err != nil {
		return err
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, password, h.BcryptCost); err != nil {
		return err
	}
	h.Metrics.Auth(metrics.EventPasswordReset, true)
	slog.Warn("Password reset without verification", "username", username)
	return c.Redirect(http.StatusFound, "/login")
}
