package auth

import (
	"testing"
	"time"

	"cms-platform/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")

	token, err := GenerateToken("admin")
	require.NoError(t, err)

	username, appErr := ParseToken(token)
	require.Nil(t, appErr)
	assert.Equal(t, "admin", username)
}

func TestParseTokenExpired(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")

	claims := jwt.MapClaims{
		"username": "admin",
		"exp":      time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, appErr := ParseToken(expired)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeTokenExpired, appErr.Code)
	assert.Equal(t, 401, appErr.HTTPStatus)
}

func TestParseTokenWrongSecret(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	token, err := GenerateToken("admin")
	require.NoError(t, err)

	viper.Set("JWT_SECRET", "another-secret")
	_, appErr := ParseToken(token)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeTokenInvalid, appErr.Code)
}

func TestParseTokenMalformed(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, appErr := ParseToken(tok)
		require.NotNil(t, appErr, "token %q accepted", tok)
		assert.Equal(t, apperrors.ErrCodeTokenInvalid, appErr.Code)
	}
}

func TestParseTokenMissingUsername(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, appErr := ParseToken(anonymous)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeTokenInvalid, appErr.Code)
}
