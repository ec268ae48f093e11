package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// valueUser is the key under which the username is kept in the cookie.
const valueUser = "user"

// CookieManager keeps the username inside a signed gorilla/sessions cookie.
// There is no server-side state, so Logout can only ask the browser to drop
// the cookie.
type CookieManager struct {
	store *sessions.CookieStore
}

func NewCookieManager(opts Options) *CookieManager {
	store := sessions.NewCookieStore([]byte(opts.Secret))
	// Sets the signature validity window; the cookie attribute is reset below.
	store.MaxAge(int(opts.MaxAge.Seconds()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieManager{store: store}
}

func (m *CookieManager) Username(r *http.Request) (string, error) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return "", ErrNoSession
	}
	username, ok := sess.Values[valueUser].(string)
	if !ok {
		return "", ErrNoSession
	}
	return username, nil
}

func (m *CookieManager) Login(w http.ResponseWriter, r *http.Request, username string) error {
	// A broken cookie yields a fresh session alongside the error.
	sess, _ := m.store.Get(r, CookieName)
	sess.Values[valueUser] = username
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *CookieManager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, CookieName)
	delete(sess.Values, valueUser)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
