package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// StaffController handles the admin-side staff account operations.
type StaffController struct {
	svc services.StaffService
}

func NewStaffController(svc services.StaffService) *StaffController {
	return &StaffController{svc: svc}
}

func (ctrl *StaffController) Register(g *echo.Group) {
	g.POST("/staff", ctrl.CreateStaff)
	g.PATCH("/staff/:id/deactivate", ctrl.Deactivate)
	g.PATCH("/staff/:id/activate", ctrl.Activate)
	g.PATCH("/staff/:id/password", ctrl.ResetPassword)
}

func (ctrl *StaffController) CreateStaff(c echo.Context) error {
	req := new(models.CreateStaffRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	staff, err := ctrl.svc.CreateStaff(c.Request().Context(), req, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, staff)
}

func (ctrl *StaffController) Deactivate(c echo.Context) error {
	if err := ctrl.svc.Deactivate(c.Request().Context(), c.Param("id"), currentStaff(c).StaffID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deactivated"})
}

func (ctrl *StaffController) Activate(c echo.Context) error {
	if err := ctrl.svc.Activate(c.Request().Context(), c.Param("id"), currentStaff(c).StaffID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "activated"})
}

func (ctrl *StaffController) ResetPassword(c echo.Context) error {
	req := new(models.ResetPasswordRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := ctrl.svc.ResetPassword(c.Request().Context(), c.Param("id"), req.NewPassword, currentStaff(c).StaffID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "password reset"})
}
