package page

import (
	"time"

	"cms-platform/pkg/pagination"
)

// Page is a static site page addressed by slug.
type Page struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Slug       string    `db:"slug" json:"slug"`
	Content    string    `db:"content" json:"content"`
	IsHomepage bool      `db:"is_homepage" json:"is_homepage"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreatePageRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content"`
	IsHomepage bool   `json:"is_homepage"`
}

// UpdatePageRequest carries a partial update; nil fields keep their value.
type UpdatePageRequest struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	IsHomepage *bool   `json:"is_homepage"`
}

// ListResponse is one page of results with pagination metadata.
type ListResponse struct {
	Pages []Page `json:"pages"`
	pagination.Meta
}
