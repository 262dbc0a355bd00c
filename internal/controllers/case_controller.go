package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// CaseController handles the case lifecycle and query routes.
type CaseController struct {
	svc services.CaseService
}

func NewCaseController(svc services.CaseService) *CaseController {
	return &CaseController{svc: svc}
}

func (ctrl *CaseController) Register(g *echo.Group) {
	g.POST("/cases", ctrl.CreateCase)
	g.GET("/cases", ctrl.ListCases)
	g.GET("/cases/search", ctrl.SearchCases)
	g.PATCH("/cases/:id", ctrl.UpdateCase)
	g.POST("/cases/:id/assign", ctrl.AssignCase)
	g.POST("/cases/:id/close", ctrl.CloseCase)
	g.GET("/dashboard/stats", ctrl.DashboardStats)
}

func (ctrl *CaseController) CreateCase(c echo.Context) error {
	req := new(models.CreateCaseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	created, err := ctrl.svc.CreateCase(c.Request().Context(), req, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (ctrl *CaseController) AssignCase(c echo.Context) error {
	req := new(models.AssignCaseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err := ctrl.svc.AssignCase(c.Request().Context(), c.Param("id"), req.OfficerStaffID, req.Reason, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "assigned"})
}

func (ctrl *CaseController) UpdateCase(c echo.Context) error {
	req := new(models.UpdateCaseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err := ctrl.svc.UpdateCase(c.Request().Context(), c.Param("id"), req.Status, req.Priority, currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (ctrl *CaseController) CloseCase(c echo.Context) error {
	req := new(models.CloseCaseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	err := ctrl.svc.CloseCase(c.Request().Context(), c.Param("id"), currentStaff(c).StaffID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "closed"})
}

func (ctrl *CaseController) SearchCases(c echo.Context) error {
	keyword := c.QueryParam("q")
	if keyword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing query parameter q"})
	}

	results, err := ctrl.svc.SearchCases(c.Request().Context(), keyword)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func (ctrl *CaseController) ListCases(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))
	if pageSize == 0 {
		pageSize = 20
	}

	paged, err := ctrl.svc.ListCases(c.Request().Context(), page, pageSize, c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, paged)
}

func (ctrl *CaseController) DashboardStats(c echo.Context) error {
	stats, err := ctrl.svc.DashboardStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
