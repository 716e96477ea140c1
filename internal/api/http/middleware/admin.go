package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const HeaderAdminPassword = "X-Admin-Password"

// CheckPassword compares in constant time. An empty expected password never
// matches, which keeps the admin editor closed when none is configured.
func CheckPassword(expected, given string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

// AdminPassword gates the site text editor behind the configured password.
// It is a UI gate, not an authentication system.
func AdminPassword(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"ok":    false,
				"error": "admin editor disabled",
			})
			return
		}

		if !CheckPassword(expected, c.GetHeader(HeaderAdminPassword)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid admin password",
			})
			return
		}

		c.Next()
	}
}
