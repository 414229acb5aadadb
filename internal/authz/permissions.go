package authz

import "fmt"

// Action is the verb half of a capability.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionInvite Action = "invite"
	ActionManage Action = "manage"
)

// Kind names a class of resources for checks that do not target a single record.
type Kind string

const (
	KindUsers       Kind = "users"
	KindDepartments Kind = "departments"
	KindProjects    Kind = "projects"
	KindChecklists  Kind = "checklists"
	KindAreas       Kind = "areas"
)

// PermissionName returns the stored permission name for an action on a kind, e.g. "invite users".
func PermissionName(action Action, kind Kind) string {
	return fmt.Sprintf("%s %s", action, kind)
}

// Permission names used across the application.
var (
	PermInviteUsers = PermissionName(ActionInvite, KindUsers)
	PermViewUsers   = PermissionName(ActionView, KindUsers)
	PermUpdateUsers = PermissionName(ActionUpdate, KindUsers)
	PermDeleteUsers = PermissionName(ActionDelete, KindUsers)

	PermViewDepartments   = PermissionName(ActionView, KindDepartments)
	PermCreateDepartments = PermissionName(ActionCreate, KindDepartments)
	PermUpdateDepartments = PermissionName(ActionUpdate, KindDepartments)
	PermDeleteDepartments = PermissionName(ActionDelete, KindDepartments)

	PermViewProjects   = PermissionName(ActionView, KindProjects)
	PermCreateProjects = PermissionName(ActionCreate, KindProjects)
	PermUpdateProjects = PermissionName(ActionUpdate, KindProjects)
	PermDeleteProjects = PermissionName(ActionDelete, KindProjects)

	PermViewChecklists   = PermissionName(ActionView, KindChecklists)
	PermCreateChecklists = PermissionName(ActionCreate, KindChecklists)
	PermUpdateChecklists = PermissionName(ActionUpdate, KindChecklists)
	PermDeleteChecklists = PermissionName(ActionDelete, KindChecklists)

	PermManageAreas = PermissionName(ActionManage, KindAreas)
)
