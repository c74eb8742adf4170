package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/config"
)

// SecurityHeaders enforces transport security at the router edge:
// plain-HTTP requests are redirected when ForceHTTPS is on, and every
// response carries HSTS plus standard hardening headers.
func SecurityHeaders(cfg config.SecurityConfig) gin.HandlerFunc {
	hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
	if cfg.HSTSIncludeSubdomains {
		hsts += "; includeSubDomains"
	}

	return func(c *gin.Context) {
		if cfg.ForceHTTPS && !requestIsSecure(c.Request) {
			target := "https://" + c.Request.Host + c.Request.URL.RequestURI()
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}

		header := c.Writer.Header()
		if cfg.ForceHTTPS {
			header.Set("Strict-Transport-Security", hsts)
		}
		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("Referrer-Policy", "same-origin")

		c.Next()
	}
}

// requestIsSecure accounts for TLS-terminating reverse proxies.
func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}
