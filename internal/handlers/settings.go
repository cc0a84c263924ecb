package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/service"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new user settings handler
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/v1/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid settings request"))
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrThresholdOutOfRange) {
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{
					Field: "intervention_threshold",
					Message: fmt.Sprintf("must be between %d and %d",
						models.MinInterventionThreshold, models.MaxInterventionThreshold),
					Code: "out_of_range",
				},
			}))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, settings)
}
