package page

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cms-platform/domain/analytics"
	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the page endpoints. The tracker records visits on the
// public read path only.
type Handler struct {
	DB      *sqlx.DB
	Tracker *analytics.Tracker
}

func NewHandler(db *sqlx.DB, tracker *analytics.Tracker) *Handler {
	return &Handler{DB: db, Tracker: tracker}
}

// ListHandler returns all pages, paginated.
func (h *Handler) ListHandler(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := List(c.Request().Context(), h.DB, page, limit)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHandler returns a single page by id.
func (h *Handler) GetHandler(c echo.Context) error {
	p, err := GetByID(c.Request().Context(), h.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Page not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GetBySlugHandler returns a page by slug without authentication and records
// the visit.
func (h *Handler) GetBySlugHandler(c echo.Context) error {
	slug := c.Param("slug")

	p, err := GetBySlug(c.Request().Context(), h.DB, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Page not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	h.Tracker.Track(c, "/"+p.Slug)
	return c.JSON(http.StatusOK, p)
}

// CreateHandler creates a page.
func (h *Handler) CreateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("page")

	req := new(CreatePageRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "Title is required.")
	}

	p, appErr := Create(c.Request().Context(), h.DB, *req)
	if appErr != nil {
		return appErr
	}

	log.Info("Page created", logger.EntityID(p.ID), logger.Slug(p.Slug))
	return c.JSON(http.StatusCreated, p)
}

// UpdateHandler applies a partial update to a page.
func (h *Handler) UpdateHandler(c echo.Context) error {
	req := new(UpdatePageRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	p, appErr := Update(c.Request().Context(), h.DB, c.Param("id"), *req)
	if appErr != nil {
		return appErr
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteHandler removes a page. Deleting the homepage always fails.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("page")

	if appErr := Delete(c.Request().Context(), h.DB, c.Param("id")); appErr != nil {
		return appErr
	}

	log.Info("Page deleted", logger.EntityID(c.Param("id")))
	return c.JSON(http.StatusOK, map[string]string{"message": "Page deleted successfully."})
}
