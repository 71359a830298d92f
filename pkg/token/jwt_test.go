package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	m := NewJWTManager("secret", 1, 1)

	tok, err := m.GenerateToken(42, "a@b.c", "PATIENT")
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "PATIENT", claims.Role)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	tok, err := NewJWTManager("secret", 1, 1).GenerateToken(1, "a@b.c", "PATIENT")
	require.NoError(t, err)

	_, err = NewJWTManager("other", 1, 1).VerifyToken(tok)
	assert.Error(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", 1, 1)
	claims := CustomClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.VerifyToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTManager_RefreshTokenRejectedAsAccess(t *testing.T) {
	m := NewJWTManager("secret", 1, 1)
	refresh, err := m.GenerateRefreshToken(7, "r@b.c", "RESEARCHER")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.VerifyToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TypeRefresh, claims.TokenType)
}

func TestJWTManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := CustomClaims{UserID: 1}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", 1, 1).VerifyToken(tok)
	assert.Error(t, err)
}

func TestJWTManager_TokensAreUnique(t *testing.T) {
	m := NewJWTManager("secret", 1, 1)
	a, err := m.GenerateRefreshToken(1, "a@b.c", "PATIENT")
	require.NoError(t, err)
	b, err := m.GenerateRefreshToken(1, "a@b.c", "PATIENT")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
