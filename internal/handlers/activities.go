package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/repository"
)

type ActivitiesHandler struct {
	activityRepo repository.ActivityRepository
}

// NewActivitiesHandler creates a new activity catalog handler
func NewActivitiesHandler(activityRepo repository.ActivityRepository) *ActivitiesHandler {
	return &ActivitiesHandler{
		activityRepo: activityRepo,
	}
}

// List handles GET /api/v1/activities
func (h *ActivitiesHandler) List(c *gin.Context) {
	activities, err := h.activityRepo.ListAll(c.Request.Context())
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, activities)
}
