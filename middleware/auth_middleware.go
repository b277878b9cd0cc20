package middleware

import (
	"errors"
	"net/http"

	"storefront-service/clients"

	"github.com/gin-gonic/gin"
)

// UserContextKey is the gin context key holding the caller's user ID.
const UserContextKey = "userID"

// AuthMiddleware requires a user identity and forwards it, together with the
// caller's Authorization header, on every upstream call made for this request.
// Tokens are passed through untouched.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			// Fallback to cookie-based user_id (set by API gateway)
			if v, err := c.Cookie("user_id"); err == nil && v != "" {
				userID = v
			}
		}

		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Missing User ID"})
			return
		}

		forward := http.Header{"X-User-ID": {userID}}
		if auth := c.GetHeader("Authorization"); auth != "" {
			forward.Set("Authorization", auth)
		}

		c.Set(UserContextKey, userID)
		c.Request = c.Request.WithContext(clients.WithHeaders(c.Request.Context(), forward))
		c.Next()
	}
}

// GetUserID returns the identity stored by AuthMiddleware.
func GetUserID(c *gin.Context) (string, error) {
	val, exists := c.Get(UserContextKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", errors.New("user ID has invalid type in context")
	}
	return userID, nil
}
