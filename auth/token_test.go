package auth

import (
	"testing"
	"time"

	"ledger/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(config.JWTConfig{Secret: "test-jwt-secret-key", ExpireTime: ttl})
}

func TestGenerateToken(t *testing.T) {
	m := newTestManager(24 * time.Hour)

	token, err := m.Generate(1, "alice", "alice@example.com", "user")
	require.NoError(t, err)
	assert.Greater(t, len(token), 20)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestParseToken_Invalid(t *testing.T) {
	m := newTestManager(time.Hour)

	_, err := m.Parse("")
	assert.ErrorIs(t, err, ErrEmptyToken)

	_, err = m.Parse("not.a.valid.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("eyJhbGciOiJmb29iIn0.xxxx.yyyy")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 其他密钥签发
	other := NewTokenManager(config.JWTConfig{Secret: "another-secret", ExpireTime: time.Hour})
	foreign, err := other.Generate(1, "alice", "a@x.com", "admin")
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager(time.Hour)

	claims := Claims{
		UserID: 7,
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-jwt-secret-key"))
	require.NoError(t, err)

	_, err = m.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: 1}).
		SignedString([]byte("test-jwt-secret-key"))
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	h1, err := HashPassword("secret123")
	require.NoError(t, err)
	h2, err := HashPassword("secret123")
	require.NoError(t, err)

	// 随机盐：同一密码两次哈希不同
	assert.NotEqual(t, h1, h2)
	assert.True(t, CheckPassword(h1, "secret123"))
	assert.True(t, CheckPassword(h2, "secret123"))
	assert.False(t, CheckPassword(h1, "wrong"))
}
