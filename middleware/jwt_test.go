package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledger/auth"
	"ledger/config"
	"ledger/models"
	"ledger/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() (*auth.TokenManager, TokenValidator) {
	tokens := auth.NewTokenManager(config.JWTConfig{Secret: "test-jwt-secret-key", ExpireTime: time.Hour})
	return tokens, service.NewCredentialService(nil, tokens)
}

func TestJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, validator := newTestValidator()

	router := gin.New()
	router.Use(JWTAuth(validator))
	router.GET("/protected", func(c *gin.Context) {
		c.String(200, "id:%d role:%s email:%s", GetCurrentUserID(c), GetCurrentRole(c), GetCurrentEmail(c))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// 无 token
	w := do("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"access denied: no token provided"}`, w.Body.String())

	// 非 Bearer
	assert.Equal(t, http.StatusUnauthorized, do("Basic xyz").Code)

	// 仅 Bearer 无 token
	assert.Equal(t, http.StatusUnauthorized, do("Bearer ").Code)

	// 无效 token
	w = do("Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())

	// 有效 token
	token, err := tokens.Generate(42, "user42", "u42@example.com", models.RoleUser)
	require.NoError(t, err)
	w = do("Bearer " + token)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "id:42 role:user email:u42@example.com", w.Body.String())
}

func TestJWTAuth_Expired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, validator := newTestValidator()

	router := gin.New()
	router.Use(JWTAuth(validator))
	router.GET("/protected", func(c *gin.Context) { c.Status(200) })

	claims := auth.Claims{
		UserID: 1,
		Role:   models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-jwt-secret-key"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextRole, c.GetHeader("X-Test-Role"))
		c.Next()
	})
	router.GET("/admin", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(200) })

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-Test-Role", models.RoleUser)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("X-Test-Role", models.RoleAdmin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetCurrentUserID(c))

	c.Set(ContextUserID, uint(99))
	assert.Equal(t, uint(99), GetCurrentUserID(c))
}

func TestCallerScope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(ContextUserID, uint(7))
	c.Set(ContextRole, models.RoleAdmin)
	assert.False(t, CallerScope(c).Restricted())

	c.Set(ContextRole, models.RoleUser)
	scope := CallerScope(c)
	assert.True(t, scope.Restricted())
	assert.Equal(t, uint(7), scope.UserID())

	// 未知角色按普通用户处理
	c.Set(ContextRole, "")
	assert.True(t, CallerScope(c).Restricted())
}
