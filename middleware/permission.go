package middleware

import (
	"cms-platform/domain/user"
	"cms-platform/pkg/apperrors"

	"github.com/labstack/echo/v4"
)

// RequirePermission gates a route on a dotted permission path. Must run after
// JWTMiddleware. The evaluation order lives in user.HasPermission: inactive
// deny, then owner bypass, then the stored flag.
func RequirePermission(path string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := user.CurrentUser(c)
			if u == nil {
				return apperrors.NewUnauthorized(apperrors.ErrCodeTokenInvalid, "Authentication required.")
			}

			if appErr := user.RequirePermission(u, path); appErr != nil {
				return appErr
			}

			return next(c)
		}
	}
}
