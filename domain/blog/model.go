package blog

import (
	"time"

	"cms-platform/pkg/pagination"

	"github.com/lib/pq"
)

// BlogPost is one blog entry. Excerpt is derived from content when the
// author does not supply one.
type BlogPost struct {
	ID            string         `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Slug          string         `db:"slug" json:"slug"`
	Content       string         `db:"content" json:"content"`
	Excerpt       string         `db:"excerpt" json:"excerpt"`
	Tags          pq.StringArray `db:"tags" json:"tags"`
	Author        string         `db:"author" json:"author"`
	FeaturedImage *string        `db:"featured_image" json:"featured_image"`
	Published     bool           `db:"published" json:"published"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
	Author        string   `json:"author"`
	FeaturedImage *string  `json:"featured_image"`
	Published     *bool    `json:"published"`
}

// UpdatePostRequest carries a partial update; nil fields keep their value.
type UpdatePostRequest struct {
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	Tags          *[]string `json:"tags"`
	Author        *string   `json:"author"`
	FeaturedImage *string   `json:"featured_image"`
	Published     *bool     `json:"published"`
}

// SearchRequest filters the post collection. Query matches title, content,
// excerpt and tags as a case-insensitive substring.
type SearchRequest struct {
	Query     string     `json:"query"`
	Tags      []string   `json:"tags"`
	Author    string     `json:"author"`
	Published *bool      `json:"published"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Highlight bool       `json:"highlight"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}

// ListResponse is one page of posts with pagination metadata.
type ListResponse struct {
	Posts []BlogPost `json:"posts"`
	pagination.Meta
}
