package middlewares

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imgdose/imgdose-api/config"
)

// CORSMiddleware answers cross-origin and pre-flight requests. With no
// allow-list configured any origin is allowed; otherwise a request's
// Origin is echoed back only when listed, with credentials permitted.
func CORSMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       24 * time.Hour,
	}

	domains := strings.TrimSpace(cfg.CORS.AllowDomains)
	if domains == "" || domains == "*" {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	origins := make([]string, 0)
	for _, domain := range strings.Split(domains, ",") {
		if trimmed := strings.TrimSpace(domain); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true

	return cors.New(corsConfig)
}
