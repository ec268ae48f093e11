// Package session tracks which username, if any, a browser is logged in as.
// All backends use a single cookie named "session"; they differ in what the
// cookie carries and where the authoritative state lives.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/trackforge/internal/config"
)

// CookieName is the name of the cookie every backend reads and writes.
const CookieName = "session"

// ErrNoSession is returned by Manager.Username when the request carries no
// valid session.  Tampered, expired and logged-out cookies all map to it.
var ErrNoSession = errors.New("no session")

// Manager establishes, reads and clears login sessions.
type Manager interface {
	// Username returns the logged-in username or ErrNoSession.  Any other
	// error is a failure of the backing store.
	Username(r *http.Request) (string, error)
	// Login binds the response's session to username, replacing any previous one.
	Login(w http.ResponseWriter, r *http.Request, username string) error
	// Logout clears the session.  It is safe to call without a session.
	Logout(w http.ResponseWriter, r *http.Request) error
}

// Options are shared by every backend.
type Options struct {
	Secret string
	// MaxAge bounds how long a session is accepted by the server.  The cookie
	// itself carries no Max-Age and ends with the browser session.
	MaxAge time.Duration
	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// New builds the Manager selected by cfg.SessionBackend.  rdb is only used,
// and must be non-nil, for the redis backend.
func New(cfg *config.Config, rdb *redis.Client) (Manager, error) {
	opts := Options{
		Secret: cfg.SecretKey,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.IsProduction(),
	}
	switch cfg.SessionBackend {
	case config.SessionCookie:
		return NewCookieManager(opts), nil
	case config.SessionJWT:
		return NewJWTManager(opts), nil
	case config.SessionRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis session backend requires a redis client")
		}
		return NewRedisManager(opts, rdb), nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.SessionBackend)
	}
}

// baseCookie returns the attributes shared by every cookie this package sets.
func (o Options) baseCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expireCookie tells the browser to drop the session cookie.
func (o Options) expireCookie(w http.ResponseWriter) {
	c := o.baseCookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}
