package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vendora/pkg/utils"
)

func JWTAuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(secret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("vendor_id", claims.VendorID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func RoleMiddleware(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// VendorScopeMiddleware pins vendor routes carrying a :vendor_id param
// to the authenticated vendor. Finance actors pass through.
func VendorScopeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") == utils.RoleFinance {
			c.Next()
			return
		}
		if param := c.Param("vendor_id"); param != "" && param != c.GetString("vendor_id") {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: vendor mismatch")
			c.Abort()
			return
		}
		c.Next()
	}
}
