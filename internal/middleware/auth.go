package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/service"
	"debate_hub/internal/utils"
)

// AdminAuth 驗證管理員的 JWT token，通過後把 adminID 放進上下文
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// 檢查 Authorization 頭的格式
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Next()
	}
}

// ClerkAuth 依 X-Clerk-User-Id 請求頭查出已同步的用戶，放進上下文。
// 身份驗證本身委託給 Clerk，後端只認同步過的用戶記錄
func ClerkAuth(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clerkID := c.GetHeader("X-Clerk-User-Id")
		if clerkID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未提供 Clerk 用戶識別"})
			c.Abort()
			return
		}

		user, err := userService.GetByClerkID(clerkID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": service.ErrUserNotFound.Error()})
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}
