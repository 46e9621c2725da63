package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fixitnow/models"
)

// Headers asserted by the upstream authentication gateway. The core
// trusts them as given; it never issues or validates credentials.
const (
	HeaderPrincipalID     = "X-Principal-Id"
	HeaderPrincipalRole   = "X-Principal-Role"
	HeaderPrincipalStatus = "X-Principal-Status"
)

const principalKey = "principal"

// PrincipalMiddleware extracts the authenticated caller from the gateway
// headers and stores it in the request context. Requests without a
// complete principal are rejected.
func PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderPrincipalID)
		role := c.GetHeader(HeaderPrincipalRole)
		status := c.GetHeader(HeaderPrincipalStatus)

		if id == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing principal headers"})
			return
		}
		if !models.ValidRole(role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown principal role"})
			return
		}
		if status == "" {
			status = models.StatusActive
		}

		c.Set(principalKey, models.Principal{
			ID:     id,
			Role:   models.Role(role),
			Status: status,
		})
		c.Next()
	}
}

// GetPrincipal retrieves the caller set by PrincipalMiddleware.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
