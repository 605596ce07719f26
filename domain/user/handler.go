package user

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the account administration endpoints.
type Handler struct {
	DB *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{DB: db}
}

// CurrentUser returns the authenticated user placed in the context by the
// auth middleware.
func CurrentUser(c echo.Context) *User {
	u, _ := c.Get("current_user").(*User)
	return u
}

// ListHandler returns all accounts.
func (h *Handler) ListHandler(c echo.Context) error {
	users, err := List(c.Request().Context(), h.DB)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}
	return c.JSON(http.StatusOK, profiles)
}

// GetHandler returns a single account by id.
func (h *Handler) GetHandler(c echo.Context) error {
	u, err := GetByID(c.Request().Context(), h.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "User not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, u.ToProfile())
}

// CreateHandler creates a non-owner account.
func (h *Handler) CreateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	req := new(CreateUserRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "Username, email and password are required.")
	}

	actor := CurrentUser(c)
	u, appErr := Create(c.Request().Context(), h.DB, *req, actor.ID)
	if appErr != nil {
		return appErr
	}

	log.Info("User created", logger.Username(actor.Username), logger.EntityID(u.ID))
	return c.JSON(http.StatusCreated, u.ToProfile())
}

// UpdateHandler applies a partial update to an account.
func (h *Handler) UpdateHandler(c echo.Context) error {
	req := new(UpdateUserRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	u, appErr := Update(c.Request().Context(), h.DB, c.Param("id"), *req)
	if appErr != nil {
		return appErr
	}
	return c.JSON(http.StatusOK, u.ToProfile())
}

// DeleteHandler removes an account. Deleting the owner always fails.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	if appErr := Delete(c.Request().Context(), h.DB, c.Param("id")); appErr != nil {
		return appErr
	}

	log.Info("User deleted", logger.EntityID(c.Param("id")))
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully."})
}
