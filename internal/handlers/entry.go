package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/service"
)

type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new mood entry handler
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

// requireUser pulls the authenticated user ID set by the auth
// middleware, writing a 401 problem when it is missing.
func requireUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return "", false
	}
	return userID.(string), true
}

// CreateEntry handles POST /api/v1/entries
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid entry request"))
		return
	}

	var fieldErrors []apierror.FieldError
	if req.AudioPath == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "audio_path",
			Message: "is required",
			Code:    "required",
		})
	}
	if req.DurationSeconds < 0 {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "duration_seconds",
			Message: "must not be negative",
			Code:    "out_of_range",
		})
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	entry, err := h.entryService.CreateFromRecording(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrDuplicateEntry) {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "An entry for today already exists"))
			return
		}
		if errors.Is(err, service.ErrClassifierUnavailable) {
			apierror.WriteProblem(c, apierror.NewServiceUnavailableError(requestID, 30))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetEntry handles GET /api/v1/entries/:id
func (h *EntryHandler) GetEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	entry, err := h.entryService.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, entry)
}

// FinalizeEntry handles POST /api/v1/entries/:id/finalize
func (h *EntryHandler) FinalizeEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req models.FinalizeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid finalize request"))
		return
	}

	if req.SelectedEmoji == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "selected_emoji", Message: "is required", Code: "required"},
		}))
		return
	}

	entryID := c.Param("id")
	entry, err := h.entryService.FinalizeEntry(c.Request.Context(), userID, entryID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
		case errors.Is(err, service.ErrUnknownActivity):
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "activity_keys", Message: "contains an unknown activity key", Code: "unknown_activity"},
			}))
		default:
			apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	if err := h.entryService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}

// DeleteAudio handles DELETE /api/v1/entries/:id/audio
func (h *EntryHandler) DeleteAudio(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entryID := c.Param("id")
	if err := h.entryService.DeleteAudio(c.Request.Context(), userID, entryID); err != nil {
		requestID := apierror.GetRequestID(c)
		if errors.Is(err, service.ErrNotFound) {
			apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "Mood entry", entryID))
			return
		}
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "audio deleted"})
}
