// Package repository holds the data access layer for users, study sessions
// and job applications.  Every repo is a thin struct over *sql.DB using `?`
// placeholders, which both the sqlite and mysql drivers accept.  Lookups that
// find nothing return one of the sentinel errors below so that handlers can
// tell "missing" apart from a storage failure.
package repository

import "errors"

// ErrUserNotFound is returned when no user matches the requested username or
// id.  Handlers translate it into "Invalid credentials", "User not found" or
// a redirect to the login page depending on the route.
var ErrUserNotFound = errors.New("user not found")

// ErrRecordNotFound is returned when a study session or application id does
// not exist.  Handlers translate it into an HTTP 404 response.
var ErrRecordNotFound = errors.New("record not found")
