package middleware

import (
	"database/sql"
	"errors"
	"strings"

	"cms-platform/domain/auth"
	"cms-platform/domain/user"
	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the bearer token and loads the authenticated user.
// The embedded username is re-resolved against the users table on EVERY
// request rather than trusted as a cache: a renamed or deactivated account
// invalidates its outstanding tokens immediately.
func JWTMiddleware(db *sqlx.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenMalformed, "Missing or invalid token.")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			username, appErr := auth.ParseToken(tokenString)
			if appErr != nil {
				return appErr
			}

			u, err := user.GetByUsername(c.Request().Context(), db, username)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token.")
				}
				return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
			}
			if !u.IsActive {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Invalid token.")
			}

			c.Set("username", u.Username)
			c.Set("current_user", u)
			c.SetRequest(c.Request().WithContext(
				logger.WithUsernameContext(c.Request().Context(), u.Username)))

			return next(c)
		}
	}
}

// OptionalJWTMiddleware loads the authenticated user when a valid bearer
// token is present and lets anonymous requests through. Routes behind it can
// widen their behavior for authenticated callers without requiring a token.
func OptionalJWTMiddleware(db *sqlx.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return next(c)
			}

			username, appErr := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if appErr != nil {
				return next(c)
			}

			u, err := user.GetByUsername(c.Request().Context(), db, username)
			if err != nil || !u.IsActive {
				return next(c)
			}

			c.Set("username", u.Username)
			c.Set("current_user", u)
			c.SetRequest(c.Request().WithContext(
				logger.WithUsernameContext(c.Request().Context(), u.Username)))
			return next(c)
		}
	}
}
