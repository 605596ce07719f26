package page

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/pagination"
	"cms-platform/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const pageColumns = "id, title, slug, content, is_homepage, created_at, updated_at"

// GetByID fetches a page by id. Returns sql.ErrNoRows when absent.
func GetByID(ctx context.Context, db *sqlx.DB, id string) (*Page, error) {
	var p Page
	err := db.GetContext(ctx, &p,
		`SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug fetches a page by slug. The literal slug "home" additionally
// resolves to whichever page carries the homepage flag, so the homepage is
// reachable under both its own slug and /home.
func GetBySlug(ctx context.Context, db *sqlx.DB, slug string) (*Page, error) {
	var p Page
	err := db.GetContext(ctx, &p,
		`SELECT `+pageColumns+` FROM pages WHERE slug = $1`, slug)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) || slug != "home" {
		return nil, err
	}

	err = db.GetContext(ctx, &p,
		`SELECT `+pageColumns+` FROM pages WHERE is_homepage = TRUE`)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns pages ordered by creation time, newest first.
func List(ctx context.Context, db *sqlx.DB, page, limit int) (*ListResponse, error) {
	params := pagination.Normalize(page, limit, 50, 200)

	var total int
	if err := db.GetContext(ctx, &total, `SELECT COUNT(*) FROM pages`); err != nil {
		return nil, err
	}

	pages := []Page{}
	err := db.SelectContext(ctx, &pages, `
		SELECT `+pageColumns+` FROM pages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Pages: pages,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}

// Create inserts a page. The slug defaults to a slugified title; the
// duplicate pre-check is a fast path and pages_slug_idx remains the
// authoritative guard.
func Create(ctx context.Context, db *sqlx.DB, req CreatePageRequest) (*Page, *apperrors.AppError) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if !utils.IsValidSlug(slug) {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidSlug, "Invalid slug.")
	}

	var exists bool
	if err := db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1)`, slug); err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if exists {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateSlug, "A page with this slug already exists.")
	}

	if req.IsHomepage {
		if appErr := clearHomepage(ctx, db); appErr != nil {
			return nil, appErr
		}
	}

	now := time.Now().UTC()
	p := Page{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		IsHomepage: req.IsHomepage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO pages (id, title, slug, content, is_homepage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Title, p.Slug, p.Content, p.IsHomepage, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err, "pages_slug_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateSlug, "A page with this slug already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	return &p, nil
}

// Update applies a partial update. Promoting a page to homepage demotes the
// previous one so the single-homepage index never trips.
func Update(ctx context.Context, db *sqlx.DB, id string, req UpdatePageRequest) (*Page, *apperrors.AppError) {
	p, err := GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Page not found.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != p.Slug {
		if !utils.IsValidSlug(*req.Slug) {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidSlug, "Invalid slug.")
		}
		p.Slug = *req.Slug
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.IsHomepage != nil {
		if p.IsHomepage && !*req.IsHomepage {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeForbiddenDelete, "The homepage flag can only move to another page.")
		}
		if !p.IsHomepage && *req.IsHomepage {
			if appErr := clearHomepage(ctx, db); appErr != nil {
				return nil, appErr
			}
		}
		p.IsHomepage = *req.IsHomepage
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = db.ExecContext(ctx, `
		UPDATE pages
		SET title = $1, slug = $2, content = $3, is_homepage = $4, updated_at = $5
		WHERE id = $6`,
		p.Title, p.Slug, p.Content, p.IsHomepage, p.UpdatedAt, p.ID)
	if err != nil {
		if utils.IsUniqueViolation(err, "pages_slug_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateSlug, "A page with this slug already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	return p, nil
}

// Delete removes a page. The homepage is deletion-immune.
func Delete(ctx context.Context, db *sqlx.DB, id string) *apperrors.AppError {
	p, err := GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Page not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if p.IsHomepage {
		return apperrors.NewBadRequest(apperrors.ErrCodeForbiddenDelete, "The homepage cannot be deleted.")
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return nil
}

func clearHomepage(ctx context.Context, db *sqlx.DB) *apperrors.AppError {
	if _, err := db.ExecContext(ctx, `UPDATE pages SET is_homepage = FALSE WHERE is_homepage`); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return nil
}
