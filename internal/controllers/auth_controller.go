package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// AuthController handles login and logout.
type AuthController struct {
	svc services.SessionService
}

func NewAuthController(svc services.SessionService) *AuthController {
	return &AuthController{svc: svc}
}

// Register associates the auth routes. Login must stay outside the session
// middleware; logout sits inside it like every other route.
func (ctrl *AuthController) Register(public, protected *echo.Group) {
	public.POST("/auth/login", ctrl.Login)
	protected.POST("/auth/logout", ctrl.Logout)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	req := new(models.LoginRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := ctrl.svc.Login(c.Request().Context(), req.StaffID, req.Password, c.RealIP())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, _ := strings.CutPrefix(header, "Bearer ")

	if err := ctrl.svc.Logout(c.Request().Context(), token); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}
