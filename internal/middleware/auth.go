package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moodwave/backend/internal/apierror"
	"github.com/moodwave/backend/internal/logger"
	"github.com/moodwave/backend/pkg/supabase"
)

// Auth verifies the Bearer token against Supabase Auth and stores the
// resulting user ID in both the gin context (for handlers) and the
// request context (for log correlation).
func Auth(client *supabase.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			log.Debug("authentication failed: missing or malformed authorization header")
			unauthorized(c)
			return
		}

		user, err := client.VerifyToken(token)
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			unauthorized(c)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID))
	c.Abort()
}
