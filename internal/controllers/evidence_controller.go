package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// EvidenceController handles evidence intake and custody routes.
type EvidenceController struct {
	svc services.EvidenceService
}

func NewEvidenceController(svc services.EvidenceService) *EvidenceController {
	return &EvidenceController{svc: svc}
}

func (ctrl *EvidenceController) Register(g *echo.Group) {
	g.POST("/cases/:id/evidence", ctrl.AddEvidence)
	g.POST("/evidence/:id/transfer", ctrl.TransferEvidence)
	g.PATCH("/evidence/:id/status", ctrl.UpdateStatus)
}

func (ctrl *EvidenceController) AddEvidence(c echo.Context) error {
	req := new(models.AddEvidenceRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ev, err := ctrl.svc.AddEvidence(c.Request().Context(), c.Param("id"), req, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (ctrl *EvidenceController) TransferEvidence(c echo.Context) error {
	evidenceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid evidence id"})
	}

	req := new(models.TransferEvidenceRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err = ctrl.svc.TransferEvidence(c.Request().Context(), uint(evidenceID), currentStaff(c).StaffID, req.ToStaffID, req.NewLocation, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "transferred"})
}

func (ctrl *EvidenceController) UpdateStatus(c echo.Context) error {
	evidenceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid evidence id"})
	}

	req := new(models.UpdateEvidenceStatusRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err = ctrl.svc.UpdateStatus(c.Request().Context(), uint(evidenceID), req.Status, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}
