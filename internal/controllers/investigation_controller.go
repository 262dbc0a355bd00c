package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// InvestigationController handles investigator note routes.
type InvestigationController struct {
	svc services.InvestigationService
}

func NewInvestigationController(svc services.InvestigationService) *InvestigationController {
	return &InvestigationController{svc: svc}
}

func (ctrl *InvestigationController) Register(g *echo.Group) {
	g.POST("/cases/:id/investigations", ctrl.AddInvestigation)
	g.PATCH("/investigations/:id", ctrl.UpdateNote)
}

func (ctrl *InvestigationController) AddInvestigation(c echo.Context) error {
	req := new(models.AddInvestigationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	inv, err := ctrl.svc.AddInvestigation(c.Request().Context(), c.Param("id"), currentStaff(c).StaffID, req.Type, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (ctrl *InvestigationController) UpdateNote(c echo.Context) error {
	investigationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid investigation id"})
	}

	req := new(models.UpdateInvestigationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err = ctrl.svc.UpdateNote(c.Request().Context(), uint(investigationID), req.Note, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}
