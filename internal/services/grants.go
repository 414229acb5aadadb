package services

import (
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/models"
)

// rolesByName indexes the role catalog, permissions included.
func rolesByName(roles []models.Role) map[string]models.Role {
	byName := make(map[string]models.Role, len(roles))
	for _, r := range roles {
		byName[r.Name] = r
	}
	return byName
}

// roleGrantError returns a message when actor may not hand out role: a
// superuser role, or a role bundling a permission the actor lacks.
func roleGrantError(actor *authz.Actor, role models.Role) string {
	if actor.Superuser {
		return ""
	}
	if role.Superuser {
		return fmt.Sprintf("You may not grant the %q role.", role.Name)
	}
	for _, p := range role.Permissions {
		if !actor.HasPermission(p.Name) {
			return fmt.Sprintf("You may not grant the %q role.", role.Name)
		}
	}
	return ""
}
