package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// ReferenceController handles complainant and crime-type registration.
type ReferenceController struct {
	svc services.ReferenceService
}

func NewReferenceController(svc services.ReferenceService) *ReferenceController {
	return &ReferenceController{svc: svc}
}

func (ctrl *ReferenceController) Register(g *echo.Group) {
	g.POST("/complainants", ctrl.CreateComplainant)
	g.POST("/crime-types", ctrl.CreateCrimeType)
}

func (ctrl *ReferenceController) CreateComplainant(c echo.Context) error {
	req := new(models.CreateComplainantRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	complainant, err := ctrl.svc.CreateComplainant(c.Request().Context(), req, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, complainant)
}

func (ctrl *ReferenceController) CreateCrimeType(c echo.Context) error {
	req := new(models.CreateCrimeTypeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	crimeType, err := ctrl.svc.CreateCrimeType(c.Request().Context(), req, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, crimeType)
}
