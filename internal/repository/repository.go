package repository

import (
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Count returns the number of registered users
	Count() (int64, error)

	// CreateWithRole creates a user and assigns a role in one transaction
	CreateWithRole(user *models.User, role string) error

	// CreateFromInvitation provisions a user from an invitation: the user row,
	// role, direct permissions and departments are written and the invitation
	// deleted within a single transaction.
	CreateFromInvitation(user *models.User, invitation *models.Invitation) error

	// FindByID finds a user by ID, roles preloaded
	FindByID(id uint64) (*models.User, error)

	// FindWithGrants finds a user with roles, role permissions and direct permissions
	FindWithGrants(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByIDs loads the given users with roles. Missing ids are reported
	// through ErrUsersNotFound.
	FindByIDs(ids []uint64) ([]models.User, error)

	// ExistingEmails returns which of the given emails already belong to a user
	ExistingEmails(emails []string) ([]string, error)

	// List retrieves a page of users
	List(params utils.PaginationParams) ([]models.User, int64, error)

	// All returns every user ordered by name, for assignment pickers
	All() ([]models.User, error)

	// Update writes profile fields and, when non-nil, replaces roles and direct permissions
	Update(user *models.User, fields map[string]any, grants *UserGrants) error

	// Delete hard-deletes a user and every association row
	Delete(id uint64) error
}

// UserGrants are replacement role and permission sets. A nil slice leaves the
// corresponding set untouched.
type UserGrants struct {
	Roles       []string
	Permissions []string
}

// RoleRepository defines the interface for the role and permission catalog
type RoleRepository interface {
	ListRoles() ([]models.Role, error)
	ListPermissions() ([]models.Permission, error)
	RoleExists(name string) (bool, error)

	// MissingPermissions returns the names that are not in the catalog
	MissingPermissions(names []string) ([]string, error)
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// CreateMany stores all invitations and binds them to the departments atomically
	CreateMany(invitations []*models.Invitation, departments []models.Department) error

	// FindByID finds an invitation with its departments
	FindByID(id uint64) (*models.Invitation, error)

	// FindByEmail finds an invitation with its departments by plaintext email
	FindByEmail(email string) (*models.Invitation, error)

	// ExistingEmails returns which of the given emails already have an invitation
	ExistingEmails(emails []string) ([]string, error)

	// List retrieves a page of invitations with departments, newest first
	List(params utils.PaginationParams) ([]models.Invitation, int64, error)

	// Update writes fields and, when non-nil, replaces departments in one transaction
	Update(invitation *models.Invitation, fields map[string]any, departments []models.Department) error

	// Delete removes an invitation and its department links
	Delete(id uint64) error
}

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	Create(department *models.Department, users []models.User) error
	FindByID(id uint64) (*models.Department, error)

	// FindByIDs loads the given departments; missing ids yield ErrDepartmentsNotFound
	FindByIDs(ids []uint64) ([]models.Department, error)

	List(params utils.PaginationParams) ([]models.Department, int64, error)
	All() ([]models.Department, error)

	// Update writes fields and, when users is non-nil, replaces members in one transaction
	Update(department *models.Department, fields map[string]any, users []models.User) error

	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project, members []models.ProjectUser, departments []models.Department) error
	FindByID(id uint64) (*models.Project, error)

	// List returns projects; when memberID is non-nil only projects the user belongs to
	List(params utils.PaginationParams, memberID *uint64) ([]models.Project, int64, error)

	// Update writes fields and replaces members/departments when non-nil, atomically
	Update(project *models.Project, fields map[string]any, members []models.ProjectUser, departments []models.Department) error

	Delete(id uint64) error
}

// ChecklistRepository defines the interface for checklist and task data access
type ChecklistRepository interface {
	Create(checklist *models.Checklist, tasks []models.Task, users []models.User) error
	FindByID(id uint64) (*models.Checklist, error)
	ListAssignedTo(userID uint64) ([]models.Checklist, error)

	// Update writes fields, appends tasks and replaces users when non-nil, atomically
	Update(checklist *models.Checklist, fields map[string]any, tasks []models.Task, users []models.User) error

	Delete(id uint64) error

	FindTask(id uint64) (*models.Task, error)
	UpdateTask(task *models.Task, fields map[string]any) error
	DeleteTask(id uint64) error
}

// AreaRepository defines the interface for area and room data access
type AreaRepository interface {
	Create(area *models.Area) error
	FindByID(id uint64) (*models.Area, error)
	List(state models.AreaState, params utils.PaginationParams) ([]models.Area, int64, error)
	Update(area *models.Area, fields map[string]any) error

	// Duplicate copies an area and its rooms under a new name
	Duplicate(area *models.Area, name string) (*models.Area, error)

	Delete(id uint64) error

	CreateRoom(room *models.Room, admins []models.User) error
	FindRoom(id uint64) (*models.Room, error)
	UpdateRoom(room *models.Room, fields map[string]any, admins []models.User) error
	DeleteRoom(id uint64) error
}
