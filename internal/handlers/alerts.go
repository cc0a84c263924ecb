package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/service"
)

type AlertsHandler struct {
	alertService service.AlertService
}

// NewAlertsHandler creates a new pattern alerts handler
func NewAlertsHandler(alertService service.AlertService) *AlertsHandler {
	return &AlertsHandler{
		alertService: alertService,
	}
}

// ListActive handles GET /api/v1/alerts
func (h *AlertsHandler) ListActive(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	alerts, err := h.alertService.ListActive(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	if alerts == nil {
		alerts = []models.PatternAlert{}
	}
	c.JSON(http.StatusOK, alerts)
}

// Dismiss handles POST /api/v1/alerts/:id/dismiss
func (h *AlertsHandler) Dismiss(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	alertID := c.Param("id")
	alert, err := h.alertService.Dismiss(c.Request.Context(), userID, alertID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Alert", alertID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, alert)
}
