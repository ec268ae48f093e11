package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session entries in Redis: session:<uuid> -> username.
const keyPrefix = "session:"

// RedisManager keeps the username in Redis under a random session id.  The
// cookie only carries the signed id, so logging out revokes the session on
// the server as well.
type RedisManager struct {
	opts  Options
	rdb   *redis.Client
	codec *securecookie.SecureCookie
}

func NewRedisManager(opts Options, rdb *redis.Client) *RedisManager {
	codec := securecookie.New([]byte(opts.Secret), nil)
	codec.MaxAge(int(opts.MaxAge.Seconds()))
	return &RedisManager{opts: opts, rdb: rdb, codec: codec}
}

// sessionID returns the verified id from the request cookie, or "" when the
// cookie is missing or fails verification.
func (m *RedisManager) sessionID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	var id string
	if err := m.codec.Decode(CookieName, c.Value, &id); err != nil {
		return ""
	}
	return id
}

func (m *RedisManager) Username(r *http.Request) (string, error) {
	id := m.sessionID(r)
	if id == "" {
		return "", ErrNoSession
	}
	username, err := m.rdb.Get(r.Context(), keyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return username, nil
}

func (m *RedisManager) Login(w http.ResponseWriter, r *http.Request, username string) error {
	// Drop the previous session, if any, so ids are never reused across logins.
	if old := m.sessionID(r); old != "" {
		if err := m.rdb.Del(r.Context(), keyPrefix+old).Err(); err != nil {
			return fmt.Errorf("drop previous session: %w", err)
		}
	}

	id := uuid.NewString()
	if err := m.rdb.Set(r.Context(), keyPrefix+id, username, m.opts.MaxAge).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	encoded, err := m.codec.Encode(CookieName, id)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, m.opts.baseCookie(encoded))
	return nil
}

func (m *RedisManager) Logout(w http.ResponseWriter, r *http.Request) error {
	if id := m.sessionID(r); id != "" {
		if err := m.rdb.Del(r.Context(), keyPrefix+id).Err(); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	m.opts.expireCookie(w)
	return nil
}
