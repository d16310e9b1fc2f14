package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"invoscan/internal/service"
)

const (
	ContextKeyClient = "client_name"
	ContextKeyClaims = "claims"
)

// AuthMiddleware returns Gin middleware that validates JWT tokens issued by
// the API-key exchange and injects the client context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyClient, claims.ClientName)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClientName extracts the authenticated client name from the Gin context.
func GetClientName(c *gin.Context) string {
	val, exists := c.Get(ContextKeyClient)
	if !exists {
		return ""
	}
	return val.(string)
}
