package authz

import (
	"errors"

	"github.com/artwork-tools/artwork-admin/internal/models"
)

// ErrForbidden is returned by services when a capability check fails.
var ErrForbidden = errors.New("forbidden")

// Authorizer answers capability questions. Resources are either a Kind for
// class-level checks or a model pointer for record-level checks.
type Authorizer interface {
	Can(actor *Actor, action Action, resource any) bool
}

// Policy is the default Authorizer.
type Policy struct{}

// NewPolicy creates the default policy set.
func NewPolicy() *Policy {
	return &Policy{}
}

// Can reports whether actor may perform action on resource.
func (p *Policy) Can(actor *Actor, action Action, resource any) bool {
	if actor == nil {
		return false
	}

	switch r := resource.(type) {
	case Kind:
		return actor.HasPermission(PermissionName(action, r))
	case *models.User:
		return p.canUser(actor, action, r)
	case *models.Project:
		return p.canProject(actor, action, r)
	case *models.Checklist:
		return p.canChecklist(actor, action, r)
	case *models.Department:
		return actor.HasPermission(PermissionName(action, KindDepartments))
	case *models.Invitation:
		return actor.HasPermission(PermInviteUsers)
	case *models.Area, *models.Room:
		return actor.HasPermission(PermManageAreas)
	default:
		return false
	}
}

// Authorize is Can returning ErrForbidden on denial.
func Authorize(a Authorizer, actor *Actor, action Action, resource any) error {
	if !a.Can(actor, action, resource) {
		return ErrForbidden
	}
	return nil
}

func (p *Policy) canUser(actor *Actor, action Action, target *models.User) bool {
	self := actor.UserID == target.ID

	switch action {
	case ActionView:
		return self || actor.HasPermission(PermViewUsers)
	case ActionUpdate:
		if self {
			return true
		}
		return actor.HasPermission(PermUpdateUsers) && p.outranks(actor, target)
	case ActionDelete:
		if self {
			return false
		}
		return actor.HasPermission(PermDeleteUsers) && p.outranks(actor, target)
	default:
		return actor.HasPermission(PermissionName(action, KindUsers))
	}
}

// outranks protects superuser accounts from actors that are not superusers themselves.
// Target roles must be preloaded.
func (p *Policy) outranks(actor *Actor, target *models.User) bool {
	if actor.Superuser {
		return true
	}
	for _, r := range target.Roles {
		if r.Superuser {
			return false
		}
	}
	return true
}

func (p *Policy) canProject(actor *Actor, action Action, project *models.Project) bool {
	switch action {
	case ActionView:
		return actor.HasPermission(PermViewProjects) &&
			(project.HasMember(actor.UserID) || actor.HasPermission(PermUpdateProjects))
	case ActionUpdate:
		return actor.HasPermission(PermUpdateProjects) || project.HasAdmin(actor.UserID)
	default:
		return actor.HasPermission(PermissionName(action, KindProjects))
	}
}

func (p *Policy) canChecklist(actor *Actor, action Action, checklist *models.Checklist) bool {
	if action == ActionView {
		return actor.HasPermission(PermViewChecklists) || checklist.HasUser(actor.UserID)
	}
	return actor.HasPermission(PermissionName(action, KindChecklists))
}
