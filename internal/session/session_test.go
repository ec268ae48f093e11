package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trackforge/internal/config"
)

var testOpts = Options{Secret: "test-secret", MaxAge: time.Hour}

func newRedisManager(t *testing.T) (*RedisManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisManager(testOpts, rdb), mr
}

// login runs m.Login and returns the session cookie it set.
func login(t *testing.T, m Manager, username string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, m.Login(rec, req, username))
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("response did not set the %q cookie", CookieName)
	return nil
}

func requestWith(c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	if c != nil {
		req.AddCookie(c)
	}
	return req
}

func managers(t *testing.T) map[string]Manager {
	rm, _ := newRedisManager(t)
	return map[string]Manager{
		"cookie": NewCookieManager(testOpts),
		"jwt":    NewJWTManager(testOpts),
		"redis":  rm,
	}
}

func TestManagers_LoginThenUsername(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			c := login(t, m, "alice")

			assert.True(t, c.HttpOnly)
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
			assert.Zero(t, c.MaxAge, "session cookie must not persist past the browser session")

			username, err := m.Username(requestWith(c))
			require.NoError(t, err)
			assert.Equal(t, "alice", username)
		})
	}
}

func TestManagers_EmptyUsername(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			c := login(t, m, "")

			username, err := m.Username(requestWith(c))
			require.NoError(t, err)
			assert.Equal(t, "", username)
		})
	}
}

func TestManagers_NoCookie(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := m.Username(requestWith(nil))
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestManagers_TamperedCookie(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			c := login(t, m, "alice")
			c.Value = "AAAA" + c.Value

			_, err := m.Username(requestWith(c))
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestManagers_ForeignSecret(t *testing.T) {
	other := Options{Secret: "other-secret", MaxAge: time.Hour}
	rm, _ := newRedisManager(t)
	pairs := map[string][2]Manager{
		"cookie": {NewCookieManager(testOpts), NewCookieManager(other)},
		"jwt":    {NewJWTManager(testOpts), NewJWTManager(other)},
		"redis":  {rm, NewRedisManager(other, rm.rdb)},
	}
	for name, p := range pairs {
		t.Run(name, func(t *testing.T) {
			c := login(t, p[0], "alice")
			_, err := p[1].Username(requestWith(c))
			assert.ErrorIs(t, err, ErrNoSession)
		})
	}
}

func TestManagers_LogoutExpiresCookie(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			c := login(t, m, "alice")

			rec := httptest.NewRecorder()
			require.NoError(t, m.Logout(rec, requestWith(c)))
			cleared := sessionCookie(t, rec)
			assert.Less(t, cleared.MaxAge, 0)
		})
	}
}

func TestManagers_LogoutWithoutSession(t *testing.T) {
	for name, m := range managers(t) {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			assert.NoError(t, m.Logout(rec, requestWith(nil)))
			assert.NoError(t, m.Logout(httptest.NewRecorder(), requestWith(nil)))
		})
	}
}

func TestRedisManager_LogoutRevokesServerSide(t *testing.T) {
	m, mr := newRedisManager(t)
	c := login(t, m, "alice")
	require.Len(t, mr.Keys(), 1)

	require.NoError(t, m.Logout(httptest.NewRecorder(), requestWith(c)))
	assert.Empty(t, mr.Keys())

	// Replaying the old cookie no longer works.
	_, err := m.Username(requestWith(c))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisManager_SessionExpires(t *testing.T) {
	m, mr := newRedisManager(t)
	c := login(t, m, "alice")

	key := mr.Keys()[0]
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(time.Hour + time.Second)
	_, err := m.Username(requestWith(c))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRedisManager_ReloginReplacesSession(t *testing.T) {
	m, mr := newRedisManager(t)
	first := login(t, m, "alice")

	rec := httptest.NewRecorder()
	require.NoError(t, m.Login(rec, requestWith(first), "bob"))
	second := sessionCookie(t, rec)

	assert.Len(t, mr.Keys(), 1)
	_, err := m.Username(requestWith(first))
	assert.ErrorIs(t, err, ErrNoSession)

	username, err := m.Username(requestWith(second))
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
}

func TestRedisManager_StoreFailure(t *testing.T) {
	m, mr := newRedisManager(t)
	c := login(t, m, "alice")
	mr.Close()

	_, err := m.Username(requestWith(c))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestCookieManager_SecureInProduction(t *testing.T) {
	opts := testOpts
	opts.Secure = true
	c := login(t, NewCookieManager(opts), "alice")
	assert.True(t, c.Secure)
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	base := config.Config{SecretKey: "k", SessionMaxAge: time.Hour}

	tests := []struct {
		backend string
		rdb     *redis.Client
		want    any
		wantErr bool
	}{
		{config.SessionCookie, nil, &CookieManager{}, false},
		{config.SessionJWT, nil, &JWTManager{}, false},
		{config.SessionRedis, rdb, &RedisManager{}, false},
		{config.SessionRedis, nil, nil, true},
		{"memcache", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := base
			cfg.SessionBackend = tt.backend
			m, err := New(&cfg, tt.rdb)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, m)
		})
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager(Options{Secret: "s", MaxAge: -time.Minute})
	c := login(t, m, "alice")
	_, err := m.Username(requestWith(c))
	assert.ErrorIs(t, err, ErrNoSession)
}
