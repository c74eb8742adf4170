package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/response"
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// AllowedOrigins should match the CORS allow-list.
	AllowedOrigins []string
}

// CSRF validates Origin/Referer headers on state-changing requests.
// Requests without either header (non-browser API clients) pass through;
// a present header from an unknown origin is rejected with 403.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowedSet := make(map[string]bool, len(config.AllowedOrigins))
	for _, origin := range config.AllowedOrigins {
		normalized := strings.TrimSuffix(strings.ToLower(origin), "/")
		allowedSet[normalized] = true
	}

	return func(c *gin.Context) {
		// Only state-changing methods need protection
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin != "" {
			if !isAllowedOrigin(origin, allowedSet) {
				response.Forbidden(c, "CSRF validation failed: invalid origin")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		// Fall back to Referer when Origin is absent
		referer := c.GetHeader("Referer")
		if referer != "" {
			if !isAllowedOrigin(extractOrigin(referer), allowedSet) {
				response.Forbidden(c, "CSRF validation failed: invalid referer")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func isAllowedOrigin(origin string, allowedSet map[string]bool) bool {
	normalized := strings.TrimSuffix(strings.ToLower(origin), "/")
	return allowedSet[normalized]
}

func extractOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
