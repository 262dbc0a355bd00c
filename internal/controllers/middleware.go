package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

const staffContextKey = "staff"

// SessionAuth validates the bearer session token on every request and puts
// the resolved staff account on the echo context.
func SessionAuth(sessions services.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			staff, err := sessions.Authenticate(c.Request().Context(), token)
			if err != nil {
				return respondError(c, err)
			}

			c.Set(staffContextKey, staff)
			return next(c)
		}
	}
}

// currentStaff returns the staff account the middleware attached.
func currentStaff(c echo.Context) *models.StaffAccount {
	staff, _ := c.Get(staffContextKey).(*models.StaffAccount)
	return staff
}
