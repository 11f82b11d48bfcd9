package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey = "user_id"
	// UserRoleKey is the context key for the authenticated user role
	UserRoleKey = "user_role"
)

// Claims are the JWT claims issued by the auth service
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth extracts the viewer identity from a Bearer token when present.
// Requests without a token proceed as anonymous consumers; an invalid
// token is rejected.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "error": gin.H{
				"code": "UNAUTHORIZED", "message": "malformed authorization header",
			}})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "error": gin.H{
				"code": "UNAUTHORIZED", "message": "invalid token",
			}})
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose viewer role is not in the allowed
// set. It must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "error": gin.H{
				"code": "UNAUTHORIZED", "message": "authentication required",
			}})
			return
		}
		if !allowed[role] {
			c.AbortWithStatusJSON(403, gin.H{"success": false, "error": gin.H{
				"code": "FORBIDDEN", "message": "insufficient role",
			}})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user ID, empty for anonymous requests
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetUserRole returns the authenticated role, empty for anonymous requests
func GetUserRole(c *gin.Context) string {
	if v, exists := c.Get(UserRoleKey); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
