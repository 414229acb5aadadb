package authz

import (
	"testing"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/stretchr/testify/assert"
)

func actorWith(id uint64, superuser bool, perms ...string) *Actor {
	user := &models.User{ID: id}
	for _, p := range perms {
		user.Permissions = append(user.Permissions, models.Permission{Name: p})
	}
	if superuser {
		user.Roles = []models.Role{{Name: "admin", Superuser: true}}
	}
	return NewActor(user)
}

func TestNewActor_UnionOfGrants(t *testing.T) {
	user := &models.User{
		ID: 1,
		Roles: []models.Role{{
			Name:        "user",
			Permissions: []models.Permission{{Name: PermViewProjects}},
		}},
		Permissions: []models.Permission{{Name: PermViewUsers}},
	}

	actor := NewActor(user)
	assert.True(t, actor.HasPermission(PermViewProjects))
	assert.True(t, actor.HasPermission(PermViewUsers))
	assert.False(t, actor.HasPermission(PermDeleteUsers))
	assert.True(t, actor.HasRole("user"))
	assert.False(t, actor.Superuser)
}

func TestPolicy_Kinds(t *testing.T) {
	p := NewPolicy()
	actor := actorWith(1, false, PermInviteUsers, PermManageAreas)

	assert.True(t, p.Can(actor, ActionInvite, KindUsers))
	assert.True(t, p.Can(actor, ActionManage, KindAreas))
	assert.False(t, p.Can(actor, ActionCreate, KindProjects))
	assert.False(t, p.Can(nil, ActionView, KindUsers))
	assert.True(t, p.Can(actorWith(2, true), ActionDelete, KindChecklists))
	assert.False(t, p.Can(actor, ActionView, "users"))
}

func TestPolicy_Users(t *testing.T) {
	p := NewPolicy()
	admin := &models.User{ID: 10, Roles: []models.Role{{Name: "admin", Superuser: true}}}
	member := &models.User{ID: 11, Roles: []models.Role{{Name: "user"}}}

	self := actorWith(11, false)
	manager := actorWith(12, false, PermViewUsers, PermUpdateUsers, PermDeleteUsers)
	super := actorWith(13, true)

	tests := []struct {
		name   string
		actor  *Actor
		action Action
		target *models.User
		want   bool
	}{
		{"self view", self, ActionView, member, true},
		{"self update", self, ActionUpdate, member, true},
		{"self delete", self, ActionDelete, member, false},
		{"other view without permission", self, ActionView, admin, false},
		{"manager updates member", manager, ActionUpdate, member, true},
		{"manager cannot update admin", manager, ActionUpdate, admin, false},
		{"manager deletes member", manager, ActionDelete, member, true},
		{"manager cannot delete admin", manager, ActionDelete, admin, false},
		{"superuser deletes admin", super, ActionDelete, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Can(tt.actor, tt.action, tt.target))
		})
	}
}

func TestPolicy_Projects(t *testing.T) {
	p := NewPolicy()
	project := &models.Project{
		ID: 1,
		Members: []models.ProjectUser{
			{UserID: 1, IsAdmin: true},
			{UserID: 2},
		},
	}

	projectAdmin := actorWith(1, false, PermViewProjects)
	member := actorWith(2, false, PermViewProjects)
	outsider := actorWith(3, false, PermViewProjects)
	manager := actorWith(4, false, PermViewProjects, PermUpdateProjects)

	assert.True(t, p.Can(member, ActionView, project))
	assert.False(t, p.Can(outsider, ActionView, project))
	assert.True(t, p.Can(manager, ActionView, project))

	assert.True(t, p.Can(projectAdmin, ActionUpdate, project))
	assert.False(t, p.Can(member, ActionUpdate, project))
	assert.True(t, p.Can(manager, ActionUpdate, project))

	assert.False(t, p.Can(projectAdmin, ActionDelete, project))
	assert.True(t, p.Can(actorWith(5, false, PermDeleteProjects), ActionDelete, project))
}

func TestPolicy_Checklists(t *testing.T) {
	p := NewPolicy()
	checklist := &models.Checklist{ID: 1, Users: []models.User{{ID: 2}}}

	assert.True(t, p.Can(actorWith(2, false), ActionView, checklist))
	assert.False(t, p.Can(actorWith(3, false), ActionView, checklist))
	assert.True(t, p.Can(actorWith(3, false, PermViewChecklists), ActionView, checklist))
	assert.False(t, p.Can(actorWith(2, false), ActionUpdate, checklist))
	assert.True(t, p.Can(actorWith(3, false, PermUpdateChecklists), ActionUpdate, checklist))
}

func TestAuthorize(t *testing.T) {
	p := NewPolicy()
	assert.ErrorIs(t, Authorize(p, actorWith(1, false), ActionView, KindDepartments), ErrForbidden)
	assert.NoError(t, Authorize(p, actorWith(1, false, PermViewDepartments), ActionView, &models.Department{ID: 1}))
	assert.False(t, p.Can(actorWith(1, false, PermInviteUsers), ActionUpdate, &models.Area{}))
	assert.True(t, p.Can(actorWith(1, false, PermManageAreas), ActionUpdate, &models.Room{}))
}
