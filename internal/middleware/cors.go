package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowedHeaders = "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID"
	corsAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// wildcardOrigin matches origins of the form scheme://<label>suffix,
// where label is a single hostname label. Used for per-deployment
// preview domains such as https://*.moodwave-app.pages.dev.
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses a pattern like "https://*.example.com".
// Returns nil when the pattern is not a valid wildcard origin.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	var scheme string
	switch {
	case strings.HasPrefix(pattern, "https://"):
		scheme = "https://"
	case strings.HasPrefix(pattern, "http://"):
		scheme = "http://"
	default:
		return nil
	}

	host := pattern[len(scheme):]
	if !strings.HasPrefix(host, "*.") {
		return nil
	}

	suffix := host[1:]
	if strings.Contains(suffix, "*") {
		return nil
	}
	// The fixed part needs at least two labels so "*.com" cannot match
	// an entire TLD.
	if strings.Count(suffix, ".") < 2 {
		return nil
	}

	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) || !strings.HasSuffix(origin, w.suffix) {
		return false
	}
	label := origin[len(w.scheme) : len(origin)-len(w.suffix)]
	return label != "" && !strings.Contains(label, ".")
}

// CORS restricts cross-origin requests to the origins listed in the
// CORS_ALLOWED_ORIGINS environment variable (comma separated). Entries
// may be exact origins or single-label wildcards like
// https://*.moodwave-app.pages.dev. When the variable is unset every
// origin is allowed, which is only acceptable in development.
func CORS() gin.HandlerFunc {
	exact := make(map[string]bool)
	var wildcards []*wildcardOrigin
	for _, entry := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if w := parseWildcardOrigin(entry); w != nil {
			wildcards = append(wildcards, w)
		} else {
			exact[entry] = true
		}
	}
	allowAll := len(exact) == 0 && len(wildcards) == 0

	originAllowed := func(origin string) bool {
		if exact[origin] {
			return true
		}
		for _, w := range wildcards {
			if w.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case originAllowed(origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		case c.Request.Method == "OPTIONS":
			// Preflight from an unknown origin gets refused outright.
			c.AbortWithStatus(403)
			return
		}

		c.Header("Access-Control-Allow-Headers", corsAllowedHeaders)
		c.Header("Access-Control-Allow-Methods", corsAllowedMethods)
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
