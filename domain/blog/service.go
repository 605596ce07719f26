package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/pagination"
	"cms-platform/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const postColumns = "id, title, slug, content, excerpt, tags, author, featured_image, published, created_at, updated_at"

// GetByID fetches a post by id. Returns sql.ErrNoRows when absent.
func GetByID(ctx context.Context, db *sqlx.DB, id string) (*BlogPost, error) {
	var p BlogPost
	err := db.GetContext(ctx, &p,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug fetches a post by slug. Returns sql.ErrNoRows when absent.
func GetBySlug(ctx context.Context, db *sqlx.DB, slug string) (*BlogPost, error) {
	var p BlogPost
	err := db.GetContext(ctx, &p,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = $1`, slug)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns posts newest first. publishedOnly hides drafts on the public
// surface.
func List(ctx context.Context, db *sqlx.DB, page, limit int, publishedOnly bool) (*ListResponse, error) {
	params := pagination.Normalize(page, limit, 10, 100)

	where := ""
	if publishedOnly {
		where = " WHERE published"
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM blog_posts"+where); err != nil {
		return nil, err
	}

	posts := []BlogPost{}
	err := db.SelectContext(ctx, &posts, fmt.Sprintf(`
		SELECT %s FROM blog_posts%s
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, postColumns, where), params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Posts: posts,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}

// Search filters posts by the request and optionally highlights the query in
// the returned title and excerpt.
func Search(ctx context.Context, db *sqlx.DB, req SearchRequest) (*ListResponse, error) {
	where, args := buildSearch(req)
	params := pagination.Normalize(req.Page, req.Limit, 10, 100)

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM blog_posts"+where, args...); err != nil {
		return nil, err
	}

	posts := []BlogPost{}
	pageArgs := append(append([]interface{}{}, args...), params.Limit, params.Offset())
	err := db.SelectContext(ctx, &posts, fmt.Sprintf(`
		SELECT %s FROM blog_posts%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, postColumns, where, len(args)+1, len(args)+2), pageArgs...)
	if err != nil {
		return nil, err
	}

	if req.Highlight && req.Query != "" {
		for i := range posts {
			posts[i] = highlightPost(posts[i], req.Query)
		}
	}

	return &ListResponse{
		Posts: posts,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}

// Create inserts a post. The slug defaults to a slugified title and the
// excerpt is derived from content when not supplied.
func Create(ctx context.Context, db *sqlx.DB, req CreatePostRequest, excerptLength int) (*BlogPost, *apperrors.AppError) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if !utils.IsValidSlug(slug) {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidSlug, "Invalid slug.")
	}

	var exists bool
	if err := db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM blog_posts WHERE slug = $1)`, slug); err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if exists {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateSlug, "A post with this slug already exists.")
	}

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = Excerpt(req.Content, excerptLength)
	}

	author := req.Author
	if author == "" {
		author = "Admin"
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	p := BlogPost{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Slug:          slug,
		Content:       req.Content,
		Excerpt:       excerpt,
		Tags:          tags,
		Author:        author,
		FeaturedImage: req.FeaturedImage,
		Published:     published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO blog_posts (id, title, slug, content, excerpt, tags, author,
		                        featured_image, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.Tags, p.Author,
		p.FeaturedImage, p.Published, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err, "blog_posts_slug_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateSlug, "A post with this slug already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	return &p, nil
}

// Update applies a partial update. Changing content without supplying an
// excerpt re-derives it so the two never drift apart silently.
func Update(ctx context.Context, db *sqlx.DB, id string, req UpdatePostRequest, excerptLength int) (*BlogPost, *apperrors.AppError) {
	p, err := GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Post not found.")
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
		if req.Excerpt == nil {
			p.Excerpt = Excerpt(p.Content, excerptLength)
		}
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.Author != nil {
		p.Author = *req.Author
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = req.FeaturedImage
	}
	if req.Published != nil {
		p.Published = *req.Published
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = db.ExecContext(ctx, `
		UPDATE blog_posts
		SET title = $1, slug = $2, content = $3, excerpt = $4, tags = $5, author = $6,
		    featured_image = $7, published = $8, updated_at = $9
		WHERE id = $10`,
		p.Title, p.Slug, p.Content, p.Excerpt, p.Tags, p.Author,
		p.FeaturedImage, p.Published, p.UpdatedAt, p.ID)
	if err != nil {
		if utils.IsUniqueViolation(err, "blog_posts_slug_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateSlug, "A post with this slug already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	return p, nil
}

// Delete removes a post by id.
func Delete(ctx context.Context, db *sqlx.DB, id string) *apperrors.AppError {
	res, err := db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Post not found.")
	}
	return nil
}
