package server

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/angple/internal/theme"
)

//go:embed themes/*/theme.css
var themeFiles embed.FS

func (s *Server) handleThemeCSS(c echo.Context) error {
	id := c.Param("id")
	if !theme.IsValid(id) {
		return failure(c, http.StatusNotFound, "Theme not found")
	}

	data, err := themeFiles.ReadFile("themes/" + id + "/theme.css")
	if err != nil {
		return serverError(c, "Failed to load theme", err)
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", data)
}
