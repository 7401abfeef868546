package auth

import (
	"context"
	"net/http"

	firebase "firebase.google.com/go/v4"

	"github.com/gin-gonic/gin"
)

// Portal roles carried as the "role" custom claim on Firebase tokens.
const (
	RoleAdmin       = "admin"
	RoleStudentHead = "student_head"
	RoleStudent     = "student"
)

func AuthMiddleware(firebaseApp *firebase.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		idToken := authHeader[len("Bearer "):]

		ctx := context.Background()
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize Firebase Auth"})
			c.Abort()
			return
		}

		token, err := authClient.VerifyIDToken(ctx, idToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		// Attach token and role to the context
		c.Set("token", token)
		role := RoleStudent
		if claim, ok := token.Claims["role"].(string); ok && claim != "" {
			role = claim
		}
		c.Set("role", role)

		c.Next()
	}
}

// RequireRoles gates a route on the caller's portal role. It must run after
// AuthMiddleware on the same chain.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		c.Abort()
	}
}
