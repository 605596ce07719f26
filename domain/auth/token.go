package auth

import (
	"errors"
	"time"

	"cms-platform/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// TokenExpiry is how long an issued bearer token stays valid.
const TokenExpiry = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(viper.GetString("JWT_SECRET"))
}

// GenerateToken issues a signed bearer token embedding the username and an
// absolute expiry. The token carries no other claims: every request
// re-resolves the username against the store, so there is nothing to revoke.
func GenerateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(TokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a bearer token's signature and expiry and returns the
// embedded username. It deliberately does NOT vouch for the user still
// existing or being active; the auth middleware re-resolves the username on
// every request.
func ParseToken(tokenString string) (string, *apperrors.AppError) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.NewUnauthorized(apperrors.ErrCodeTokenExpired, "Token expired.")
		}
		return "", apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token.")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token.")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token.")
	}

	return username, nil
}
