package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPaths() []string {
	paths := make([]string, 0, len(permissionPaths))
	for p := range permissionPaths {
		paths = append(paths, p)
	}
	return paths
}

func TestHasPermissionOwnerBypass(t *testing.T) {
	// Owner with every stored flag false is still allowed everywhere.
	owner := &User{IsOwner: true, IsActive: true, Permissions: Permissions{}}

	for _, path := range allPaths() {
		assert.True(t, HasPermission(owner, path), "owner denied %s", path)
	}
}

func TestHasPermissionInactiveDeniedFirst(t *testing.T) {
	// The is_active gate runs before the owner bypass: an inactive owner is
	// denied everything.
	inactiveOwner := &User{IsOwner: true, IsActive: false, Permissions: AllPermissions()}
	inactiveUser := &User{IsOwner: false, IsActive: false, Permissions: AllPermissions()}

	for _, path := range allPaths() {
		assert.False(t, HasPermission(inactiveOwner, path), "inactive owner allowed %s", path)
		assert.False(t, HasPermission(inactiveUser, path), "inactive user allowed %s", path)
	}
}

func TestHasPermissionStoredFlags(t *testing.T) {
	u := &User{
		IsActive: true,
		Permissions: Permissions{
			Blog:    BlogPermissions{Create: true},
			Contact: ContactPermissions{View: true},
		},
	}

	assert.True(t, HasPermission(u, "blog.create"))
	assert.True(t, HasPermission(u, "contact.view"))
	assert.False(t, HasPermission(u, "blog.delete"))
	assert.False(t, HasPermission(u, "users.create"))
	assert.False(t, HasPermission(u, "contact.delete"))
}

func TestHasPermissionUnknownPath(t *testing.T) {
	u := &User{IsActive: true, Permissions: AllPermissions()}

	// Unknown capability paths resolve to false, not an error.
	assert.False(t, HasPermission(u, "gallery.create"))
	assert.False(t, HasPermission(u, "blog"))
	assert.False(t, HasPermission(u, "blog.publish"))
	assert.False(t, HasPermission(u, ""))
}

func TestRequirePermission(t *testing.T) {
	u := &User{IsActive: true, Permissions: Permissions{Pages: PagePermissions{Edit: true}}}

	assert.Nil(t, RequirePermission(u, "pages.edit"))

	err := RequirePermission(u, "pages.delete")
	require.NotNil(t, err)
	assert.Equal(t, 403, err.HTTPStatus)
	assert.Contains(t, err.Message, "pages.delete")
}

func TestAllPermissionsCoversRegistry(t *testing.T) {
	all := AllPermissions()
	for _, path := range allPaths() {
		assert.True(t, all.Resolve(path), "AllPermissions misses %s", path)
	}
}

func TestPermissionsScanPartialDocument(t *testing.T) {
	// Capability keys absent from the stored JSON default to denied.
	var p Permissions
	require.NoError(t, p.Scan([]byte(`{"blog":{"create":true}}`)))

	assert.True(t, p.Blog.Create)
	assert.False(t, p.Blog.Edit)
	assert.False(t, p.Users.View)
}
