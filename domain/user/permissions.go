package user

import (
	"fmt"

	"cms-platform/pkg/apperrors"
)

// permissionPaths maps dotted capability paths to field accessors. An
// explicit registry keeps "unknown path resolves to false" a lookup miss
// rather than a reflection failure.
var permissionPaths = map[string]func(Permissions) bool{
	"blog.create":    func(p Permissions) bool { return p.Blog.Create },
	"blog.edit":      func(p Permissions) bool { return p.Blog.Edit },
	"blog.delete":    func(p Permissions) bool { return p.Blog.Delete },
	"pages.create":   func(p Permissions) bool { return p.Pages.Create },
	"pages.edit":     func(p Permissions) bool { return p.Pages.Edit },
	"pages.delete":   func(p Permissions) bool { return p.Pages.Delete },
	"settings.view":  func(p Permissions) bool { return p.Settings.View },
	"settings.edit":  func(p Permissions) bool { return p.Settings.Edit },
	"users.view":     func(p Permissions) bool { return p.Users.View },
	"users.create":   func(p Permissions) bool { return p.Users.Create },
	"users.edit":     func(p Permissions) bool { return p.Users.Edit },
	"users.delete":   func(p Permissions) bool { return p.Users.Delete },
	"files.upload":   func(p Permissions) bool { return p.Files.Upload },
	"files.delete":   func(p Permissions) bool { return p.Files.Delete },
	"analytics.view": func(p Permissions) bool { return p.Analytics.View },
	"contact.view":   func(p Permissions) bool { return p.Contact.View },
	"contact.delete": func(p Permissions) bool { return p.Contact.Delete },
}

// Resolve returns the stored flag for a dotted permission path, or false for
// paths that do not name a known capability.
func (p Permissions) Resolve(path string) bool {
	if accessor, ok := permissionPaths[path]; ok {
		return accessor(p)
	}
	return false
}

// HasPermission evaluates a permission path for a user. The order is fixed:
// inactive users are denied before the owner bypass is considered, so an
// inactive owner is denied; an active owner is allowed regardless of stored
// flags; everyone else gets exactly the stored flag.
func HasPermission(u *User, path string) bool {
	if !u.IsActive {
		return false
	}
	if u.IsOwner {
		return true
	}
	return u.Permissions.Resolve(path)
}

// RequirePermission returns an authorization error naming the denied path
// when HasPermission is false. Callers must surface it, never degrade.
func RequirePermission(u *User, path string) *apperrors.AppError {
	if HasPermission(u, path) {
		return nil
	}
	return apperrors.NewForbidden(
		apperrors.ErrCodePermissionDenied,
		fmt.Sprintf("You don't have the %q permission.", path),
	)
}
