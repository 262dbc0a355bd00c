package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sivamiruthula/crime-management/internal/models"
	"github.com/sivamiruthula/crime-management/internal/services"
)

// NotificationController handles the recipient-facing notification routes.
type NotificationController struct {
	svc services.NotificationService
}

func NewNotificationController(svc services.NotificationService) *NotificationController {
	return &NotificationController{svc: svc}
}

func (ctrl *NotificationController) Register(g *echo.Group) {
	g.GET("/notifications", ctrl.List)
	g.GET("/notifications/unread-count", ctrl.UnreadCount)
	g.POST("/notifications/mark-read", ctrl.MarkRead)
}

func (ctrl *NotificationController) List(c echo.Context) error {
	onlyUnread := c.QueryParam("unread") == "true"

	notifications, err := ctrl.svc.List(c.Request().Context(), currentStaff(c).StaffID, onlyUnread)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (ctrl *NotificationController) UnreadCount(c echo.Context) error {
	count, err := ctrl.svc.UnreadCount(c.Request().Context(), currentStaff(c).StaffID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": count})
}

func (ctrl *NotificationController) MarkRead(c echo.Context) error {
	req := new(models.MarkReadRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := ctrl.svc.MarkRead(c.Request().Context(), currentStaff(c).StaffID, req.NotificationIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "marked read"})
}
