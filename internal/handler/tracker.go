package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/trackforge/internal/metrics"
	"github.com/iliyamo/trackforge/internal/model"
	"github.com/iliyamo/trackforge/internal/repository"
)

// TrackerHandler serves the dashboard and the study session and application
// CRUD routes.  Every route runs behind middleware.RequireSession.
type TrackerHandler struct {
	Sessions     *repository.StudySessionRepo
	Applications *repository.ApplicationRepo
	Metrics      *metrics.DomainMetrics
}

func NewTrackerHandler(s *repository.StudySessionRepo, a *repository.ApplicationRepo, m *metrics.DomainMetrics) *TrackerHandler {
	return &TrackerHandler{Sessions: s, Applications: a, Metrics: m}
}

// dashboardPage is the data behind dashboard.html.
type dashboardPage struct {
	Username      string
	Sessions      []model.StudySession
	Applications  []model.Application
	TotalSessions int
	TotalApps     int
}

// Dashboard lists every record owned by the acting user in insertion order.
func (h *TrackerHandler) Dashboard(c echo.Context) error {
	ident, err := identityFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	sessions, err := h.Sessions.ListByUser(ctx, ident.UserID)
	if err != nil {
		return err
	}
	apps, err := h.Applications.ListByUser(ctx, ident.UserID)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "dashboard.html", dashboardPage{
		Username:      ident.Username,
		Sessions:      sessions,
		Applications:  apps,
		TotalSessions: len(sessions),
		TotalApps:     len(apps),
	})
}

// ----- study sessions -----

// AddSession creates a study session from the form.  Hours and date are kept
// exactly as typed.
func (h *TrackerHandler) AddSession(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "add_session.html", nil)
	}
	ident, err := identityFrom(c)
	if err != nil {
		return err
	}
	f, err := formFields(c, "subject", "hours", "date", "notes")
	if err != nil {
		return err
	}

	s := &model.StudySession{UserID: ident.UserID, Subject: f[0], Hours: f[1], Dates: f[2], Notes: f[3]}
	if err := h.Sessions.Create(c.Request().Context(), s); err != nil {
		return err
	}
	h.Metrics.RecordMutation(metrics.KindStudySession, metrics.OpCreate)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// EditSession renders the pre-filled form on GET and overwrites every field
// on POST.
func (h *TrackerHandler) EditSession(c echo.Context) error {
	s, ok, err := loadOwned(c, h.Sessions.GetByID)
	if !ok {
		return err
	}
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "edit_session.html", s)
	}

	f, err := formFields(c, "subject", "hours", "date", "notes")
	if err != nil {
		return err
	}
	s.Subject, s.Hours, s.Dates, s.Notes = f[0], f[1], f[2], f[3]
	if err := h.Sessions.Update(c.Request().Context(), s); err != nil {
		return err
	}
	h.Metrics.RecordMutation(metrics.KindStudySession, metrics.OpUpdate)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteSession removes the session.  It is reached through a plain link.
func (h *TrackerHandler) DeleteSession(c echo.Context) error {
	s, ok, err := loadOwned(c, h.Sessions.GetByID)
	if !ok {
		return err
	}
	if err := h.Sessions.Delete(c.Request().Context(), s.ID); err != nil {
		return err
	}
	h.Metrics.RecordMutation(metrics.KindStudySession, metrics.OpDelete)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// ----- applications -----

// ApplicationTracker creates a job application from the form.
func (h *TrackerHandler) ApplicationTracker(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "application_tracker.html", nil)
	}
	ident, err := identityFrom(c)
	if err != nil {
		return err
	}
	f, err := formFields(c, "company_name", "role", "status")
	if err != nil {
		return err
	}

	a := &model.Application{UserID: ident.UserID, CompanyName: f[0], Role: f[1], Status: f[2]}
	if err := h.Applications.Create(c.Request().Context(), a); err != nil {
		return err
	}
	h.Metrics.RecordMutation(metrics.KindApplication, metrics.OpCreate)
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *TrackerHandler) EditApplication(c echo.Context) error {
	a, ok, err := loadOwned(c, h.Applications.GetByID)
	if !ok {
		return err
	}
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "edit_application.html", a)
	}

	f, err := formFields(c, "company_name", "role", "status")
	if err != nil {
		return err
	}
	a.CompanyName, a.Role, a.Status = f[0], f[1], f[2]
	if err := h.Applications.Update(c.Request().Context(), a); err != nil {
		return err
	}
	h.Metrics.RecordMutation(metrics.KindApplication, metrics.OpUpdate)
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *TrackerHandler) DeleteApplication(c echo.Context) error {
	a, ok, err := loadOwned(c, h.Applications.GetByID)
	if !ok {
		return err
	}
	if err := h.Applications.Delete(c.Request().Context(), a.ID); err != nil {
		return err
	}
	h.Metrics.RecordMutation(metrics.KindApplication, metrics.OpDelete)
	return c.Redirect(http.StatusFound, "/dashboard")
}
