package contact

import (
	"context"
	"fmt"
	"time"

	"cms-platform/pkg/apperrors"
	"cms-platform/pkg/pagination"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Create stores a submission with the sender's address for abuse review.
func Create(ctx context.Context, db *sqlx.DB, req CreateMessageRequest, ip string) (*Message, *apperrors.AppError) {
	m := Message{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO contact_messages (id, name, email, message, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Name, m.Email, m.Message, m.IPAddress, m.CreatedAt)
	if err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return &m, nil
}

// List returns messages newest first, optionally filtered by a search term
// matching name, email or body.
func List(ctx context.Context, db *sqlx.DB, search string, page, limit int) (*ListResponse, error) {
	params := pagination.Normalize(page, limit, 20, 100)

	where := ""
	args := []interface{}{}
	if search != "" {
		where = " WHERE name ILIKE $1 OR email ILIKE $1 OR message ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM contact_messages"+where, args...); err != nil {
		return nil, err
	}

	messages := []Message{}
	pageArgs := append(append([]interface{}{}, args...), params.Limit, params.Offset())
	err := db.SelectContext(ctx, &messages, fmt.Sprintf(`
		SELECT id, name, email, message, ip_address, created_at
		FROM contact_messages%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2), pageArgs...)
	if err != nil {
		return nil, err
	}

	return &ListResponse{
		Messages: messages,
		Meta:     pagination.NewMeta(params, total),
	}, nil
}

// Delete removes a message by id.
func Delete(ctx context.Context, db *sqlx.DB, id string) *apperrors.AppError {
	res, err := db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "Message not found.")
	}
	return nil
}
