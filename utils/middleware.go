package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware guards the mutating café routes. Requests without a valid
// admin marker cookie are rejected with 403.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(AdminCookieName)
		if err != nil || cookie == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		if err := ValidateAdminToken(cookie); err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
