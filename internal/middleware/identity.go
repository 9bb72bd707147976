package middleware

import (
	"net/http"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// CallerIdentity reads the identity the authentication collaborator attached
// to the request and stores it in the gin context. No verification happens
// here; the upstream proxy has already authenticated the caller.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-Id")
		if id != "" {
			c.Set(callerKey, domain.Caller{
				ID:   id,
				Role: c.GetHeader("X-User-Role"),
			})
		}
		c.Next()
	}
}

// GetCaller returns the caller stored by CallerIdentity, if any.
func GetCaller(c *gin.Context) (domain.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return domain.Caller{}, false
	}
	caller, ok := v.(domain.Caller)
	return caller, ok
}

// RequireAuth aborts with 401 when no caller identity is present.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCaller(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller holds one of the given
// roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if ok {
			for _, role := range roles {
				if caller.Role == role {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You do not have permission to access this resource",
		})
	}
}
