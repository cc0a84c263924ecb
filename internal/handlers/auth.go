package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/models"
	"github.com/moodwave/backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid login request"))
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
		return
	}

	c.JSON(http.StatusOK, authResp)
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid signup request"))
		return
	}

	authResp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, "signup failed", "Could not create the account"))
		return
	}

	c.JSON(http.StatusCreated, authResp)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// Supabase invalidates tokens client side; nothing to clean up here.
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "User", userID))
		return
	}

	c.JSON(http.StatusOK, user)
}
