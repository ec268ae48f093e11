package handler // handler holds the HTTP handlers behind every route

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trackforge/internal/middleware"
	"github.com/iliyamo/trackforge/internal/model"
	"github.com/iliyamo/trackforge/internal/repository"
)

// Plain-text bodies returned, with status 200, for the non-HTML outcomes.
const (
	msgUnauthorized       = "Unauthorized"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
)

// identityFrom returns the acting user stored by middleware.RequireSession.
func identityFrom(c echo.Context) (model.Identity, error) {
	id, ok := middleware.Identity(c)
	if !ok {
		return model.Identity{}, errors.New("route is missing the session middleware")
	}
	return id, nil
}

// formFields returns the posted values for names in order.  A field that is
// absent from the body, as opposed to present but empty, is a 400.
func formFields(c echo.Context, names ...string) ([]string, error) {
	if _, err := c.FormParams(); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form body").SetInternal(err)
	}
	form := c.Request().PostForm
	out := make([]string, len(names))
	for i, name := range names {
		v, ok := form[name]
		if !ok || len(v) == 0 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("missing form field %q", name))
		}
		out[i] = v[0]
	}
	return out, nil
}

// parseID reads the :id path parameter.  Row ids are positive signed 64-bit
// integers, so anything outside 1..MaxInt64 cannot name a record and is a 404.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.ErrNotFound
	}
	return uint64(id), nil
}

// loadOwned fetches the record named by :id and applies the ownership check.
// When ok is false the caller must return err as is: it is either a failure
// to propagate or nil after the unauthorized response has been written.
func loadOwned[T model.Owned](c echo.Context, get func(context.Context, uint64) (T, error)) (rec T, ok bool, err error) {
	var zero T
	id, err := parseID(c)
	if err != nil {
		return zero, false, err
	}
	ident, err := identityFrom(c)
	if err != nil {
		return zero, false, err
	}

	rec, err = get(c.Request().Context(), id)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return zero, false, echo.ErrNotFound
	}
	if err != nil {
		return zero, false, err
	}
	if !model.Owns(rec, ident.UserID) {
		return zero, false, c.String(http.StatusOK, msgUnauthorized)
	}
	return rec, true, nil
}
