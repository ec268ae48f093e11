package router // package router wires handlers, middleware and rendering onto Echo

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/trackforge/internal/handler"
	"github.com/iliyamo/trackforge/internal/metrics"
	"github.com/iliyamo/trackforge/internal/middleware"
	"github.com/iliyamo/trackforge/internal/repository"
	"github.com/iliyamo/trackforge/internal/session"
	"github.com/iliyamo/trackforge/web"
)

// Deps are the long-lived collaborators every route draws from.
type Deps struct {
	DB         *sql.DB
	Sessions   session.Manager
	Registry   *prometheus.Registry
	BcryptCost int
}

// New builds a ready-to-serve Echo instance: renderer, error handler,
// global middleware and the full route table.
func New(d Deps) (*echo.Echo, error) {
	renderer, err := NewRenderer(web.TemplateFiles)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(metrics.NewHTTPMetrics(d.Registry).Middleware())

	domain := metrics.NewDomainMetrics(d.Registry)
	users := repository.NewUserRepo(d.DB)
	auth := handler.NewAuthHandler(users, d.Sessions, domain, d.BcryptCost)
	tracker := handler.NewTrackerHandler(
		repository.NewStudySessionRepo(d.DB),
		repository.NewApplicationRepo(d.DB),
		domain,
	)

	RegisterRoutes(e, d.DB, d.Registry)
	RegisterAuth(e, auth, d.Sessions, users)
	RegisterTracker(e, tracker, d.Sessions, users)
	return e, nil
}

// RegisterRoutes registers the public pages and operational endpoints.
func RegisterRoutes(e *echo.Echo, db *sql.DB, reg *prometheus.Registry) {
	e.GET("/", handler.Home)
	e.GET("/about", handler.About)
	e.GET("/help", handler.Help)

	e.GET("/healthz", handler.Health(db))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))
}

// RegisterAuth registers the account routes.  Only /profile needs a session;
// without one it sends the browser to the home page.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, mgr session.Manager, users middleware.UserLookup) {
	e.Match(getPost, "/register", a.Register)
	e.Match(getPost, "/login", a.Login)
	e.GET("/logout", a.Logout)
	e.Match(getPost, "/forgot", a.Forgot)

	e.Match(getPost, "/profile", a.Profile, middleware.RequireSession(mgr, users, "/"))
}

// RegisterTracker registers the dashboard and record routes.  The dashboard
// redirects anonymous visitors home; the record routes send them to /login.
func RegisterTracker(e *echo.Echo, h *handler.TrackerHandler, mgr session.Manager, users middleware.UserLookup) {
	e.GET("/dashboard", h.Dashboard, middleware.RequireSession(mgr, users, "/"))

	toLogin := middleware.RequireSession(mgr, users, "/login")
	e.Match(getPost, "/add_session", h.AddSession, toLogin)
	e.Match(getPost, "/edit_session/:id", h.EditSession, toLogin)
	e.GET("/delete_session/:id", h.DeleteSession, toLogin)

	e.Match(getPost, "/application_tracker", h.ApplicationTracker, toLogin)
	e.Match(getPost, "/edit_application/:id", h.EditApplication, toLogin)
	e.GET("/delete_application/:id", h.DeleteApplication, toLogin)
}

var getPost = []string{http.MethodGet, http.MethodPost}
