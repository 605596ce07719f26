package contact

import (
	"net/http"
	"strconv"
	"strings"

	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the contact-form endpoints. The public create route sits
// behind the cooldown middleware; everything else requires permission.
type Handler struct {
	DB *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{DB: db}
}

// CreateHandler stores a public contact-form submission.
func (h *Handler) CreateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("contact")

	req := new(CreateMessageRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "Name, email and message are required.")
	}

	m, appErr := Create(c.Request().Context(), h.DB, *req, c.RealIP())
	if appErr != nil {
		return appErr
	}

	log.Info("Contact message received", logger.EntityID(m.ID), logger.RemoteIP(m.IPAddress))
	return c.JSON(http.StatusCreated, map[string]string{"message": "Message sent successfully."})
}

// ListHandler returns messages with optional search.
func (h *Handler) ListHandler(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := List(c.Request().Context(), h.DB, c.QueryParam("search"), page, limit)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteHandler removes a message.
func (h *Handler) DeleteHandler(c echo.Context) error {
	if appErr := Delete(c.Request().Context(), h.DB, c.Param("id")); appErr != nil {
		return appErr
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message deleted successfully."})
}
