package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestParseTokenRoundTrip(t *testing.T) {
	tokenString := signToken(t, &Claims{
		UserID: "user123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}, testSecret)

	claims, err := ParseToken(tokenString, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenString := signToken(t, &Claims{
		UserID: "user123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	_, err := ParseToken(tokenString, "a-different-secret")

	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	tokenString := signToken(t, &Claims{
		UserID: "user123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)

	_, err := ParseToken(tokenString, testSecret)

	assert.Error(t, err)
}

func TestRateLimiterDeniesOverLimit(t *testing.T) {
	rl := NewIPRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other IPs are unaffected
	assert.True(t, rl.Allow("5.6.7.8"))
}
