package seo

import (
	"net/http"
	"time"

	"cms-platform/domain/settings"
	"cms-platform/pkg/apperrors"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// Handler serves the crawler-facing endpoints.
type Handler struct {
	DB       *sqlx.DB
	Settings *settings.Service
}

func NewHandler(db *sqlx.DB, svc *settings.Service) *Handler {
	return &Handler{DB: db, Settings: svc}
}

// RobotsHandler serves robots.txt derived from the configured site URL.
func (h *Handler) RobotsHandler(c echo.Context) error {
	current, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return c.String(http.StatusOK, BuildRobots(current.SiteURL))
}

type contentRow struct {
	Slug      string    `db:"slug"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SitemapHandler serves sitemap.xml listing every page and published post.
func (h *Handler) SitemapHandler(c echo.Context) error {
	ctx := c.Request().Context()

	current, err := h.Settings.Get(ctx)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	builder := NewSitemapBuilder(current.SiteURL)
	builder.AddHomepage()

	pages := []contentRow{}
	if err := h.DB.SelectContext(ctx, &pages,
		`SELECT slug, updated_at FROM pages WHERE NOT is_homepage ORDER BY slug`); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	for _, p := range pages {
		builder.AddPage(Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	posts := []contentRow{}
	if err := h.DB.SelectContext(ctx, &posts,
		`SELECT slug, updated_at FROM blog_posts WHERE published ORDER BY slug`); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	for _, p := range posts {
		builder.AddPost(Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
	}

	body, err := builder.Build()
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", err)
	}
	return c.Blob(http.StatusOK, "application/xml", body)
}
