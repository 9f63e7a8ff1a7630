package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func HealthCheck(c echo.Context) error {
	return respond(c, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "playshelf-api",
	})
}
