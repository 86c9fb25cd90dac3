package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pizzeria-app/utils"
)

// RequireRole allows only the listed roles through. Admin always passes.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, utils.ErrNoPermission.Status, utils.ErrNoPermission)
			c.Abort()
			return
		}

		if userRole == "admin" {
			c.Next()
			return
		}
		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, utils.ErrNoPermission.Status, utils.ErrNoPermission)
		c.Abort()
	}
}
