package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/services"
)

// respondError maps the domain error taxonomy onto HTTP status codes.
func respondError(c echo.Context, err error) error {
	if ae, ok := services.IsAuthError(err); ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error":  "authentication failed",
			"reason": ae.Reason,
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrReferenceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}
