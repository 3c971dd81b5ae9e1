package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nanotasks/internal/models"
)

// AuthMiddleware validates JWT tokens and protects routes
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format. Expected: Bearer <token>",
			})
			c.Abort()
			return
		}

		tokenString := parts[1]

		// Validate token
		claims, err := ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Set principal information in context
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		c.Abort()
	}
}

// GetPrincipal retrieves the authenticated principal from the context
func GetPrincipal(c *gin.Context) (Principal, bool) {
	email, exists := c.Get("email")
	if !exists {
		return Principal{}, false
	}

	role, exists := c.Get("role")
	if !exists {
		return Principal{}, false
	}

	emailStr, ok := email.(string)
	if !ok {
		return Principal{}, false
	}

	roleVal, ok := role.(models.Role)
	if !ok {
		return Principal{}, false
	}

	return Principal{Email: emailStr, Role: roleVal}, true
}
