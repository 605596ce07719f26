package contact

import (
	"time"

	"cms-platform/pkg/pagination"
)

// Message is one contact-form submission. Write-only from the public side.
type Message struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ListResponse is one page of messages with pagination metadata.
type ListResponse struct {
	Messages []Message `json:"messages"`
	pagination.Meta
}
