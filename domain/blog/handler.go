package blog

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"cms-platform/domain/analytics"
	"cms-platform/domain/settings"
	"cms-platform/domain/user"
	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the blog endpoints.
type Handler struct {
	DB       *sqlx.DB
	Settings *settings.Service
	Tracker  *analytics.Tracker
}

func NewHandler(db *sqlx.DB, svc *settings.Service, tracker *analytics.Tracker) *Handler {
	return &Handler{DB: db, Settings: svc, Tracker: tracker}
}

// ListHandler returns all posts, drafts included.
func (h *Handler) ListHandler(c echo.Context) error {
	return h.list(c, false)
}

// PublicListHandler returns published posts only.
func (h *Handler) PublicListHandler(c echo.Context) error {
	return h.list(c, true)
}

func (h *Handler) list(c echo.Context, publishedOnly bool) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit == 0 {
		limit = h.Settings.PostsPerPage(c.Request().Context())
	}

	resp, err := List(c.Request().Context(), h.DB, page, limit, publishedOnly)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetHandler returns a single post by id.
func (h *Handler) GetHandler(c echo.Context) error {
	p, err := GetByID(c.Request().Context(), h.DB, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Post not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, p)
}

// GetBySlugHandler returns a published post by slug without authentication
// and records the visit. Drafts stay invisible on this surface.
func (h *Handler) GetBySlugHandler(c echo.Context) error {
	p, err := GetBySlug(c.Request().Context(), h.DB, c.Param("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Post not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if !p.Published {
		return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Post not found.")
	}

	h.Tracker.Track(c, "/blog/"+p.Slug)
	return c.JSON(http.StatusOK, p)
}

// SearchHandler filters posts and optionally highlights matches. Anonymous
// callers only see published posts regardless of the requested filter.
func (h *Handler) SearchHandler(c echo.Context) error {
	req := new(SearchRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	if user.CurrentUser(c) == nil {
		published := true
		req.Published = &published
	}

	resp, err := Search(c.Request().Context(), h.DB, *req)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateHandler creates a post.
func (h *Handler) CreateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")

	req := new(CreatePostRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return apperrors.NewBadRequest(apperrors.ErrCodeMissingField, "Title is required.")
	}

	excerptLength := h.Settings.ExcerptLength(c.Request().Context())
	p, appErr := Create(c.Request().Context(), h.DB, *req, excerptLength)
	if appErr != nil {
		return appErr
	}

	log.Info("Post created", logger.EntityID(p.ID), logger.Slug(p.Slug))
	return c.JSON(http.StatusCreated, p)
}

// UpdateHandler applies a partial update to a post.
func (h *Handler) UpdateHandler(c echo.Context) error {
	req := new(UpdatePostRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.NewBadRequest(apperrors.ErrCodeValidationFailed, "Invalid request payload.")
	}

	excerptLength := h.Settings.ExcerptLength(c.Request().Context())
	p, appErr := Update(c.Request().Context(), h.DB, c.Param("id"), *req, excerptLength)
	if appErr != nil {
		return appErr
	}
	return c.JSON(http.StatusOK, p)
}

// DeleteHandler removes a post.
func (h *Handler) DeleteHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")

	if appErr := Delete(c.Request().Context(), h.DB, c.Param("id")); appErr != nil {
		return appErr
	}

	log.Info("Post deleted", logger.EntityID(c.Param("id")))
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully."})
}
