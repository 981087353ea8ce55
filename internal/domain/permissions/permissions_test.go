package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"yamdb/proj/internal/domain/models"
)

var (
	anonymous = models.AnonymousUser
	regular   = &models.User{ID: 1, Username: "alice", Role: models.RoleUser}
	moderator = &models.User{ID: 2, Username: "mod", Role: models.RoleModerator}
	admin     = &models.User{ID: 3, Username: "root", Role: models.RoleAdmin}
	staff     = &models.User{ID: 4, Username: "staff", Role: models.RoleUser, IsStaff: true}
	superuser = &models.User{ID: 5, Username: "super", Role: models.RoleUser, IsSuperuser: true}
)

func TestIsSafeMethod(t *testing.T) {
	assert.True(t, IsSafeMethod(http.MethodGet))
	assert.True(t, IsSafeMethod(http.MethodHead))
	assert.True(t, IsSafeMethod(http.MethodOptions))
	assert.False(t, IsSafeMethod(http.MethodPost))
	assert.False(t, IsSafeMethod(http.MethodPatch))
	assert.False(t, IsSafeMethod(http.MethodDelete))
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name    string
		user    *models.User
		allowed bool
	}{
		{"anonymous", anonymous, false},
		{"regular user", regular, false},
		{"moderator", moderator, false},
		{"admin role", admin, true},
		{"staff flag", staff, true},
		{"superuser flag", superuser, true},
		{"nil user", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.allowed, AdminOnly(c.user))
		})
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	// reads pass regardless of authentication
	assert.True(t, AdminOrReadOnly(anonymous, http.MethodGet))
	assert.True(t, AdminOrReadOnly(regular, http.MethodGet))

	assert.False(t, AdminOrReadOnly(anonymous, http.MethodPost))
	assert.False(t, AdminOrReadOnly(regular, http.MethodPost))
	assert.False(t, AdminOrReadOnly(moderator, http.MethodDelete))
	assert.True(t, AdminOrReadOnly(admin, http.MethodPost))
	assert.True(t, AdminOrReadOnly(superuser, http.MethodDelete))
}

func TestAuthorModeratorAdminOrReadOnly(t *testing.T) {
	assert.True(t, AuthorModeratorAdminOrReadOnly(anonymous, http.MethodGet))
	assert.False(t, AuthorModeratorAdminOrReadOnly(anonymous, http.MethodPost))
	assert.True(t, AuthorModeratorAdminOrReadOnly(regular, http.MethodPost))
}

func TestCanModifyObject(t *testing.T) {
	const authorID = 1
	cases := []struct {
		name    string
		user    *models.User
		method  string
		allowed bool
	}{
		{"anonymous read", anonymous, http.MethodGet, true},
		{"anonymous patch", anonymous, http.MethodPatch, false},
		{"author patch", regular, http.MethodPatch, true},
		{"author delete", regular, http.MethodDelete, true},
		{"other user patch", &models.User{ID: 42, Role: models.RoleUser}, http.MethodPatch, false},
		{"moderator patch", moderator, http.MethodPatch, true},
		{"admin delete", admin, http.MethodDelete, true},
		{"staff patch", staff, http.MethodPatch, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.allowed, CanModifyObject(c.user, authorID, c.method))
		})
	}
}
