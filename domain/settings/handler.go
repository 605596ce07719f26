package settings

import (
	"net/http"

	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler serves the settings endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// GetHandler returns the full settings document (admin only).
func (h *Handler) GetHandler(c echo.Context) error {
	current, err := h.Service.Get(c.Request().Context())
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, current)
}

// UpdateHandler applies a partial update; only supplied fields change.
func (h *Handler) UpdateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("settings")

	req := new(UpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	if err := h.Service.Update(c.Request().Context(), *req); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	log.Info("Settings updated")
	return c.JSON(http.StatusOK, map[string]string{"message": "Settings updated successfully."})
}

// PublicHandler returns the display-safe subset without authentication.
func (h *Handler) PublicHandler(c echo.Context) error {
	current, err := h.Service.Get(c.Request().Context())
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, current.Public())
}
