package session

import (
	"errors"
	"net/http"

	"github.com/iliyamo/trackforge/internal/utils"
)

// JWTManager stores an HS256 token whose subject is the username.  Like the
// cookie backend it is stateless: a token stays valid until it expires.
type JWTManager struct {
	opts Options
}

func NewJWTManager(opts Options) *JWTManager {
	return &JWTManager{opts: opts}
}

func (m *JWTManager) Username(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", ErrNoSession
	}
	username, err := utils.ParseSessionToken(m.opts.Secret, c.Value)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidToken) {
			return "", ErrNoSession
		}
		return "", err
	}
	return username, nil
}

func (m *JWTManager) Login(w http.ResponseWriter, _ *http.Request, username string) error {
	token, err := utils.NewSessionToken(m.opts.Secret, username, m.opts.MaxAge)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.opts.baseCookie(token))
	return nil
}

func (m *JWTManager) Logout(w http.ResponseWriter, _ *http.Request) error {
	m.opts.expireCookie(w)
	return nil
}
