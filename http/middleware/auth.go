package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/imgdose/imgdose-api/config"
	"github.com/imgdose/imgdose-api/utils"
)

// AuthMiddleware gates the image routes behind the admin session token.
// When no admin password is configured the gate is open; there is no
// credential a token could prove.
func AuthMiddleware(cfg *config.EnvConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Auth.AdminPassword == "" {
			c.Next()
			return
		}

		tokenString := utils.ExtractToken(c)
		if tokenString == "" {
			utils.JSON401(c, "Unauthorized: missing token")
			c.Abort()
			return
		}

		token, err := utils.ParseToken(tokenString, cfg)
		if err != nil || !token.Valid {
			utils.JSON401(c, "Unauthorized: invalid token")
			c.Abort()
			return
		}

		c.Next()
	}
}
