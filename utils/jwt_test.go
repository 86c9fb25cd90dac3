package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveJWTSecretFromEnv(t *testing.T) {
	// The secret must come from the environment as it stands at first use,
	// after .env loading, not from package init.
	t.Setenv("JWT_SECRET", "from-env-1945")
	assert.Equal(t, []byte("from-env-1945"), resolveJWTSecret())

	t.Setenv("JWT_SECRET", "")
	assert.Equal(t, []byte("PizzeriaDevSecret1945"), resolveJWTSecret())
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "staff@pizzeria.test", "staff")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "staff@pizzeria.test", claims.Email)
	assert.Equal(t, "staff", claims.Role)
}

func TestParseTokenExpired(t *testing.T) {
	claims := &CustomClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JWTSecret())
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTokenWrongKey(t *testing.T) {
	claims := &CustomClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-else"))
	require.NoError(t, err)

	_, err = ParseToken(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
