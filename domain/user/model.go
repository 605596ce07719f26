package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User represents an account able to authenticate against the API.
type User struct {
	ID                 string      `db:"id" json:"id"`
	Username           string      `db:"username" json:"username"`
	Email              string      `db:"email" json:"email"`
	PasswordHash       string      `db:"password_hash" json:"-"`
	DisplayName        string      `db:"display_name" json:"display_name"`
	IsOwner            bool        `db:"is_owner" json:"is_owner"`
	IsActive           bool        `db:"is_active" json:"is_active"`
	MustChangePassword bool        `db:"must_change_password" json:"must_change_password"`
	Permissions        Permissions `db:"permissions" json:"permissions"`
	CreatedBy          *string     `db:"created_by" json:"created_by,omitempty"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	LastLogin          *time.Time  `db:"last_login" json:"last_login,omitempty"`
}

// BlogPermissions covers blog post management.
type BlogPermissions struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// PagePermissions covers page management.
type PagePermissions struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// SettingsPermissions covers site settings access.
type SettingsPermissions struct {
	View bool `json:"view"`
	Edit bool `json:"edit"`
}

// UserPermissions covers account administration.
type UserPermissions struct {
	View   bool `json:"view"`
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

// FilePermissions covers uploads.
type FilePermissions struct {
	Upload bool `json:"upload"`
	Delete bool `json:"delete"`
}

// AnalyticsPermissions covers visit analytics.
type AnalyticsPermissions struct {
	View bool `json:"view"`
}

// ContactPermissions covers contact message handling.
type ContactPermissions struct {
	View   bool `json:"view"`
	Delete bool `json:"delete"`
}

// Permissions is the fixed-shape capability record stored per user. One field
// per capability area; unknown dotted paths resolve to false, never an error.
type Permissions struct {
	Blog      BlogPermissions      `json:"blog"`
	Pages     PagePermissions      `json:"pages"`
	Settings  SettingsPermissions  `json:"settings"`
	Users     UserPermissions      `json:"users"`
	Files     FilePermissions      `json:"files"`
	Analytics AnalyticsPermissions `json:"analytics"`
	Contact   ContactPermissions   `json:"contact"`
}

// AllPermissions returns a record with every capability granted. Used to
// render the owner's effective permissions, which ignore stored flags.
func AllPermissions() Permissions {
	return Permissions{
		Blog:      BlogPermissions{Create: true, Edit: true, Delete: true},
		Pages:     PagePermissions{Create: true, Edit: true, Delete: true},
		Settings:  SettingsPermissions{View: true, Edit: true},
		Users:     UserPermissions{View: true, Create: true, Edit: true, Delete: true},
		Files:     FilePermissions{Upload: true, Delete: true},
		Analytics: AnalyticsPermissions{View: true},
		Contact:   ContactPermissions{View: true, Delete: true},
	}
}

// Value implements driver.Valuer so Permissions persist as JSONB.
func (p Permissions) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner. Keys absent from the stored document stay at
// their zero value, so permissions added later default to denied.
func (p *Permissions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = Permissions{}
		return nil
	default:
		return fmt.Errorf("unsupported permissions type %T", src)
	}
}

// CreateUserRequest is the payload for creating an account.
type CreateUserRequest struct {
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	DisplayName string      `json:"display_name"`
	Permissions Permissions `json:"permissions"`
}

// UpdateUserRequest is the payload for updating an account. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	Email       *string      `json:"email"`
	DisplayName *string      `json:"display_name"`
	IsActive    *bool        `json:"is_active"`
	Password    *string      `json:"password"`
	Permissions *Permissions `json:"permissions"`
}

// Profile is the API representation of a user, with the owner's effective
// permissions substituted for the stored record.
type Profile struct {
	ID                 string      `json:"id"`
	Username           string      `json:"username"`
	Email              string      `json:"email"`
	DisplayName        string      `json:"display_name"`
	IsOwner            bool        `json:"is_owner"`
	IsActive           bool        `json:"is_active"`
	MustChangePassword bool        `json:"must_change_password"`
	Permissions        Permissions `json:"permissions"`
	CreatedBy          *string     `json:"created_by,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	LastLogin          *time.Time  `json:"last_login,omitempty"`
}

// ToProfile converts a stored user to its API representation.
func (u *User) ToProfile() Profile {
	perms := u.Permissions
	if u.IsOwner {
		perms = AllPermissions()
	}
	return Profile{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		IsOwner:            u.IsOwner,
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword,
		Permissions:        perms,
		CreatedBy:          u.CreatedBy,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}
