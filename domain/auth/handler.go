package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"cms-platform/domain/user"
	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"
	"cms-platform/utils"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves login, profile and credential rotation.
type Handler struct {
	DB *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{DB: db}
}

// LoginHandler verifies a username/password pair and issues a bearer token.
// Inactive accounts fail exactly like unknown ones.
func (h *Handler) LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	invalid := apperrors.NewUnauthorized(apperrors.ErrCodeInvalidCredentials, "Invalid credentials.")

	u, err := user.GetByUsername(c.Request().Context(), h.DB, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Login with unknown username", logger.Username(req.Username), logger.RemoteIP(c.RealIP()))
			return invalid
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	if !u.IsActive || !utils.CheckPasswordHash(req.Password, u.PasswordHash) {
		log.Warn("Login failed", logger.Username(req.Username), logger.RemoteIP(c.RealIP()))
		return invalid
	}

	token, err := GenerateToken(u.Username)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", err)
	}

	if err := user.TouchLastLogin(c.Request().Context(), h.DB, u.ID); err != nil {
		log.Warn("Failed to update last login", logger.Err(err))
	}

	log.Info("Login succeeded", logger.Username(u.Username))
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:        token,
		TokenType:          "bearer",
		MustChangePassword: u.MustChangePassword,
	})
}

// MeHandler returns the authenticated user's profile, permissions included.
func (h *Handler) MeHandler(c echo.Context) error {
	u := user.CurrentUser(c)
	return c.JSON(http.StatusOK, u.ToProfile())
}

// ChangeCredentialsHandler rotates the caller's username and/or password.
// Accepts form fields old_password, new_username (optional) and new_password.
// On success the response carries a fresh token for the new username: the old
// token dies on its own because verification re-resolves the username.
func (h *Handler) ChangeCredentialsHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	u := user.CurrentUser(c)

	oldPassword := c.FormValue("old_password")
	newUsername := strings.TrimSpace(c.FormValue("new_username"))
	newPassword := c.FormValue("new_password")

	if oldPassword == "" || newPassword == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "Old and new passwords are required.")
	}

	updated, appErr := user.RotateCredentials(c.Request().Context(), h.DB, u, oldPassword, newUsername, newPassword)
	if appErr != nil {
		return appErr
	}

	token, err := GenerateToken(updated.Username)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", err)
	}

	log.Info("Credentials rotated", logger.Username(updated.Username))
	return c.JSON(http.StatusOK, ChangeCredentialsResponse{
		Message:     "Credentials updated successfully.",
		AccessToken: token,
		TokenType:   "bearer",
	})
}
