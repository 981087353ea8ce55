// Package permissions holds the access policies evaluated per request as
// pure predicates over (user, verb, ownership).
package permissions

import (
	"net/http"

	"yamdb/proj/internal/domain/models"
)

// IsSafeMethod reports whether the verb is read-only. Safe verbs are never
// blocked regardless of authentication state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOnly allows only authenticated admin-tier users.
func AdminOnly(u *models.User) bool {
	return !u.IsAnonymous() && u.IsAdmin()
}

// AdminOrReadOnly allows any read-only verb unconditionally and write verbs
// to admin tier only.
func AdminOrReadOnly(u *models.User, method string) bool {
	return IsSafeMethod(method) || AdminOnly(u)
}

// AuthorModeratorAdminOrReadOnly is the request-level check: read-only verbs
// pass for anyone including anonymous, write verbs require authentication.
// Object ownership is checked separately via CanModifyObject once a target
// resource is identified.
func AuthorModeratorAdminOrReadOnly(u *models.User, method string) bool {
	return IsSafeMethod(method) || !u.IsAnonymous()
}

// CanModifyObject is the object-level check for existing reviews and
// comments: the author may mutate their own resource, moderators and admins
// may mutate anything.
func CanModifyObject(u *models.User, authorID int64, method string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if u.IsAnonymous() {
		return false
	}
	return u.ID == authorID || u.IsModerator() || u.IsAdmin()
}
