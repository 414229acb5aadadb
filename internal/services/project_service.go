package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/rs/zerolog"
)

// ProjectService administers projects, their members and departments.
type ProjectService struct {
	projects    repository.ProjectRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
	authorizer  authz.Authorizer
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository, departments repository.DepartmentRepository, authorizer authz.Authorizer) *ProjectService {
	return &ProjectService{
		projects:    projects,
		users:       users,
		departments: departments,
		authorizer:  authorizer,
	}
}

// MemberInput assigns a user to a project.
type MemberInput struct {
	UserID  uint64 `json:"user_id" form:"user_id" validate:"gt=0"`
	IsAdmin bool   `json:"is_admin" form:"is_admin"`
}

// ProjectInput creates or updates a project. On update nil fields are left as they are.
type ProjectInput struct {
	Name          *string        `json:"name" form:"name" validate:"omitnil,required,max=255"`
	Members       *[]MemberInput `json:"members" form:"members" validate:"omitnil,dive"`
	DepartmentIDs *[]uint64      `json:"department_ids" form:"department_ids" validate:"omitnil,dive,gt=0"`
}

// List returns projects visible to actor. Actors without "update projects"
// only see projects they are a member of.
func (s *ProjectService) List(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.Project, int64, error) {
	if err := authz.Authorize(s.authorizer, actor, authz.ActionView, authz.KindProjects); err != nil {
		return nil, 0, err
	}

	var memberID *uint64
	if !actor.HasPermission(authz.PermUpdateProjects) {
		memberID = &actor.UserID
	}

	projects, total, err := s.projects.List(params, memberID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get returns a project with members, departments and checklists.
func (s *ProjectService) Get(ctx context.Context, actor *authz.Actor, id uint64) (*models.Project, error) {
	project, err := s.projects.FindByID(id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	if !s.authorizer.Can(actor, authz.ActionView, project) {
		return nil, ErrForbidden
	}
	return project, nil
}

// Create stores a project. Every assigned user and department is checked
// individually before anything is written.
func (s *ProjectService) Create(ctx context.Context, actor *authz.Actor, input ProjectInput) (*models.Project, error) {
	if err := authz.Authorize(s.authorizer, actor, authz.ActionCreate, authz.KindProjects); err != nil {
		return nil, err
	}

	verr := validateStruct(input)
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		verr.Add("name", "This field is required.")
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	members, departments, err := s.relations(actor, input)
	if err != nil {
		return nil, err
	}

	project := &models.Project{Name: strings.TrimSpace(*input.Name)}
	if err := s.projects.Create(project, members, departments); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("project_id", project.ID).Msg("project created")
	return project, nil
}

// Update changes a project. Allowed for holders of "update projects" and for project admins.
func (s *ProjectService) Update(ctx context.Context, actor *authz.Actor, id uint64, input ProjectInput) (*models.Project, error) {
	project, err := s.projects.FindByID(id)
	if err != nil {
		return nil, notFound(err, "project")
	}
	if !s.authorizer.Can(actor, authz.ActionUpdate, project) {
		return nil, ErrForbidden
	}

	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	members, departments, err := s.relations(actor, input)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setTrimmed(fields, "name", input.Name)

	if err := s.projects.Update(project, fields, members, departments); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("project_id", project.ID).Msg("project updated")
	return s.projects.FindByID(project.ID)
}

// relations resolves and authorizes member and department assignments. A nil
// slice in the result means the relation is not being changed.
func (s *ProjectService) relations(actor *authz.Actor, input ProjectInput) ([]models.ProjectUser, []models.Department, error) {
	var members []models.ProjectUser
	if input.Members != nil {
		ids := make([]uint64, len(*input.Members))
		admin := make(map[uint64]bool, len(*input.Members))
		for i, m := range *input.Members {
			ids[i] = m.UserID
			admin[m.UserID] = admin[m.UserID] || m.IsAdmin
		}

		users, err := assignableUsers(s.authorizer, s.users, actor, "members", ids)
		if err != nil {
			return nil, nil, err
		}
		members = make([]models.ProjectUser, len(users))
		for i, u := range users {
			members[i] = models.ProjectUser{UserID: u.ID, IsAdmin: admin[u.ID]}
		}
	}

	var departments []models.Department
	if input.DepartmentIDs != nil {
		var err error
		departments, err = assignableDepartments(s.authorizer, s.departments, actor, "department_ids", *input.DepartmentIDs)
		if err != nil {
			return nil, nil, err
		}
	}

	return members, departments, nil
}

// Delete removes a project with its checklists.
func (s *ProjectService) Delete(ctx context.Context, actor *authz.Actor, id uint64) error {
	project, err := s.projects.FindByID(id)
	if err != nil {
		return notFound(err, "project")
	}
	if !s.authorizer.Can(actor, authz.ActionDelete, project) {
		return ErrForbidden
	}

	if err := s.projects.Delete(project.ID); err != nil {
		return notFound(err, "project")
	}

	zerolog.Ctx(ctx).Info().Uint64("project_id", project.ID).Msg("project deleted")
	return nil
}
