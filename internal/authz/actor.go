package authz

import "github.com/artwork-tools/artwork-admin/internal/models"

// Actor is the authenticated principal of a request. It is resolved once per
// request and passed explicitly to every service call.
type Actor struct {
	UserID      uint64
	Email       string
	Roles       []string
	Superuser   bool
	permissions map[string]struct{}
}

// NewActor builds an actor from a user whose Roles, Roles.Permissions and
// Permissions associations are preloaded. The permission set is the union of
// direct and role-derived permissions.
func NewActor(user *models.User) *Actor {
	a := &Actor{
		UserID:      user.ID,
		Email:       user.Email,
		Roles:       make([]string, 0, len(user.Roles)),
		permissions: make(map[string]struct{}),
	}

	for _, role := range user.Roles {
		a.Roles = append(a.Roles, role.Name)
		if role.Superuser {
			a.Superuser = true
		}
		for _, p := range role.Permissions {
			a.permissions[p.Name] = struct{}{}
		}
	}
	for _, p := range user.Permissions {
		a.permissions[p.Name] = struct{}{}
	}

	return a
}

// HasPermission reports whether the actor holds the named permission directly or through a role.
func (a *Actor) HasPermission(name string) bool {
	if a == nil {
		return false
	}
	if a.Superuser {
		return true
	}
	_, ok := a.permissions[name]
	return ok
}

// HasRole reports whether the actor holds the named role.
func (a *Actor) HasRole(name string) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}
