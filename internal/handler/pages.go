package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home renders the landing page.
func Home(c echo.Context) error { return c.Render(http.StatusOK, "home.html", nil) }

// About renders the static about page.
func About(c echo.Context) error { return c.Render(http.StatusOK, "about.html", nil) }

// Help renders the static help page.
func Help(c echo.Context) error { return c.Render(http.StatusOK, "help.html", nil) }
