package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/entity"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/utils"
)

// SuperadminMiddleware guards the mutating file routes. It accepts the
// access token from cookie or bearer header, rejects tokens revoked by
// logout, and requires the superadmin role.
func SuperadminMiddleware(cfg *config.EnvConfig, redis *infra.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.ExtractToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			c.Abort()
			return
		}

		if redis != nil {
			revoked, err := redis.Exists(c.Request.Context(), "token:revoked:"+tokenStr)
			if err == nil && revoked {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				c.Abort()
				return
			}
		}

		parsedToken, err := utils.ParseToken(tokenStr, cfg)
		if err != nil || !parsedToken.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := parsedToken.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		if err := utils.InjectClaimsToContext(c, claims); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid claims"})
			c.Abort()
			return
		}

		if c.GetString("role") != entity.RoleSuperadmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Superadmin role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
