package middleware

import (
	"net/http"
	"strings"

	"ledger/auth"
	"ledger/models"
	"ledger/service"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextRole     = "role"
)

// TokenValidator 校验 token 并返回载荷
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// JWTAuth 认证中间件
// 要求 Authorization: Bearer <token>，通过后将用户信息写入上下文
func JWTAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, http.StatusUnauthorized, "access denied: no token provided")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortWithError(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole 角色不符返回 403，需在 JWTAuth 之后使用
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentRole(c) != role {
			abortWithError(c, http.StatusForbidden, "forbidden: insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetCurrentUserID 获取当前用户ID
func GetCurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get(ContextUserID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetCurrentRole 获取当前角色
func GetCurrentRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

// GetCurrentEmail 获取当前邮箱
func GetCurrentEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

// GetCurrentUsername 获取当前用户名
func GetCurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// CallerScope 管理员不限范围，其余角色仅本人数据
func CallerScope(c *gin.Context) service.Scope {
	if GetCurrentRole(c) == models.RoleAdmin {
		return service.Unrestricted()
	}
	return service.OwnedBy(GetCurrentUserID(c))
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
