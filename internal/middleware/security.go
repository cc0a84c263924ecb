package middleware

import (
	"os"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the standard hardening headers on every
// response. The API serves JSON only, so framing, scripting, and
// browser features are all locked down, and responses carrying mood
// data are marked uncacheable.
func SecurityHeaders() gin.HandlerFunc {
	isProduction := os.Getenv("MOODWAVE_SERVER_ENV") == "production"

	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		// HSTS only makes sense where TLS terminates in front of us.
		if isProduction {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
