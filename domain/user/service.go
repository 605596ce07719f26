package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cms-platform/pkg/apperrors"
	"cms-platform/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// GetByUsername fetches a user by username. Returns sql.ErrNoRows when absent.
func GetByUsername(ctx context.Context, db *sqlx.DB, username string) (*User, error) {
	var u User
	err := db.GetContext(ctx, &u, `
		SELECT id, username, email, password_hash, display_name, is_owner,
		       is_active, must_change_password, permissions, created_by,
		       created_at, last_login
		FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id. Returns sql.ErrNoRows when absent.
func GetByID(ctx context.Context, db *sqlx.DB, id string) (*User, error) {
	var u User
	err := db.GetContext(ctx, &u, `
		SELECT id, username, email, password_hash, display_name, is_owner,
		       is_active, must_change_password, permissions, created_by,
		       created_at, last_login
		FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by creation time.
func List(ctx context.Context, db *sqlx.DB) ([]User, error) {
	users := []User{}
	err := db.SelectContext(ctx, &users, `
		SELECT id, username, email, password_hash, display_name, is_owner,
		       is_active, must_change_password, permissions, created_by,
		       created_at, last_login
		FROM users ORDER BY created_at`)
	return users, err
}

// Create inserts a new non-owner user. The duplicate pre-checks are a fast
// path; the unique indexes remain the authoritative guard and their
// violations map to the same errors.
func Create(ctx context.Context, db *sqlx.DB, req CreateUserRequest, createdBy string) (*User, *apperrors.AppError) {
	var exists bool
	if err := db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, req.Username); err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if exists {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateUsername, "Username already exists.")
	}
	if err := db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, req.Email); err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if exists {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateEmail, "Email already exists.")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", err)
	}

	u := User{
		ID:                 uuid.New().String(),
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       hashed,
		DisplayName:        req.DisplayName,
		IsOwner:            false,
		IsActive:           true,
		MustChangePassword: true,
		Permissions:        req.Permissions,
		CreatedBy:          &createdBy,
		CreatedAt:          time.Now().UTC(),
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, display_name, is_owner,
		                   is_active, must_change_password, permissions, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.DisplayName, u.IsOwner,
		u.IsActive, u.MustChangePassword, u.Permissions, u.CreatedBy, u.CreatedAt)
	if err != nil {
		if utils.IsUniqueViolation(err, "users_username_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateUsername, "Username already exists.")
		}
		if utils.IsUniqueViolation(err, "users_email_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateEmail, "Email already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	return &u, nil
}

// RotateCredentials verifies the old password, then updates the username
// and/or password, clears must_change_password and bumps last_login. A
// username change implicitly invalidates outstanding tokens because token
// verification re-resolves the embedded username on every request.
func RotateCredentials(ctx context.Context, db *sqlx.DB, u *User, oldPassword, newUsername, newPassword string) (*User, *apperrors.AppError) {
	if !utils.CheckPasswordHash(oldPassword, u.PasswordHash) {
		return nil, apperrors.NewBadRequest(apperrors.ErrCodeInvalidCredentials, "Invalid old password.")
	}

	username := u.Username
	if newUsername != "" && newUsername != u.Username {
		var exists bool
		if err := db.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, newUsername); err != nil {
			return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
		}
		if exists {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateUsername, "Username already exists.")
		}
		username = newUsername
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return nil, apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", err)
	}

	now := time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		UPDATE users
		SET username = $1, password_hash = $2, must_change_password = FALSE, last_login = $3
		WHERE id = $4`,
		username, hashed, now, u.ID)
	if err != nil {
		if utils.IsUniqueViolation(err, "users_username_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateUsername, "Username already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	updated := *u
	updated.Username = username
	updated.PasswordHash = hashed
	updated.MustChangePassword = false
	updated.LastLogin = &now
	return &updated, nil
}

// TouchLastLogin records a successful login.
func TouchLastLogin(ctx context.Context, db *sqlx.DB, id string) error {
	_, err := db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, time.Now().UTC(), id)
	return err
}

// Update applies a partial update to an account. Owner flags are immutable:
// the owner can never be deactivated here and is_owner is not updatable at all.
func Update(ctx context.Context, db *sqlx.DB, id string, req UpdateUserRequest) (*User, *apperrors.AppError) {
	u, err := GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound(apperrors.ErrCodeNotFound, "User not found.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.DisplayName != nil {
		u.DisplayName = *req.DisplayName
	}
	if req.IsActive != nil {
		if u.IsOwner && !*req.IsActive {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeForbiddenDelete, "The owner account cannot be deactivated.")
		}
		u.IsActive = *req.IsActive
	}
	if req.Permissions != nil {
		u.Permissions = *req.Permissions
	}
	if req.Password != nil {
		hashed, hashErr := utils.HashPassword(*req.Password)
		if hashErr != nil {
			return nil, apperrors.NewInternal(apperrors.ErrCodeUnexpectedError, "Internal server error.", hashErr)
		}
		u.PasswordHash = hashed
	}

	_, err = db.ExecContext(ctx, `
		UPDATE users
		SET email = $1, display_name = $2, is_active = $3, permissions = $4, password_hash = $5
		WHERE id = $6`,
		u.Email, u.DisplayName, u.IsActive, u.Permissions, u.PasswordHash, u.ID)
	if err != nil {
		if utils.IsUniqueViolation(err, "users_email_idx") {
			return nil, apperrors.NewBadRequest(apperrors.ErrCodeDuplicateEmail, "Email already exists.")
		}
		return nil, apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}

	return u, nil
}

// Delete removes an account. The owner account is deletion-immune.
func Delete(ctx context.Context, db *sqlx.DB, id string) *apperrors.AppError {
	u, err := GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound(apperrors.ErrCodeNotFound, "User not found.")
		}
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	if u.IsOwner {
		return apperrors.NewBadRequest(apperrors.ErrCodeForbiddenDelete, "The owner account cannot be deleted.")
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Internal server error.", err)
	}
	return nil
}
