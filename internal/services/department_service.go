package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/storage"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/rs/zerolog"
)

// DepartmentService administers departments and their members.
type DepartmentService struct {
	departments repository.DepartmentRepository
	users       repository.UserRepository
	store       storage.Store
	authorizer  authz.Authorizer
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(departments repository.DepartmentRepository, users repository.UserRepository, store storage.Store, authorizer authz.Authorizer) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		users:       users,
		store:       store,
		authorizer:  authorizer,
	}
}

// DepartmentInput creates or updates a department. On update nil fields are
// left as they are; a nil UserIDs keeps the current members.
type DepartmentInput struct {
	Name    *string   `json:"name" form:"name" validate:"omitnil,required,max=255"`
	SvgName *string   `json:"svg_name" form:"svg_name" validate:"omitnil,max=100"`
	UserIDs *[]uint64 `json:"user_ids" form:"user_ids" validate:"omitnil,dive,gt=0"`
	Logo    *Upload   `json:"-" form:"-"`
}

// List returns a page of departments.
func (s *DepartmentService) List(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.Department, int64, error) {
	if err := authz.Authorize(s.authorizer, actor, authz.ActionView, authz.KindDepartments); err != nil {
		return nil, 0, err
	}

	departments, total, err := s.departments.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, total, nil
}

// AssignableUsers lists the users offered on the department forms.
func (s *DepartmentService) AssignableUsers(ctx context.Context, actor *authz.Actor) ([]models.User, error) {
	if !s.authorizer.Can(actor, authz.ActionView, authz.KindDepartments) {
		return nil, ErrForbidden
	}
	users, err := s.users.All()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CanCreate reports whether actor may open the create form.
func (s *DepartmentService) CanCreate(actor *authz.Actor) bool {
	return s.authorizer.Can(actor, authz.ActionCreate, authz.KindDepartments)
}

// Get returns a department with its members.
func (s *DepartmentService) Get(ctx context.Context, actor *authz.Actor, id uint64) (*models.Department, error) {
	department, err := s.departments.FindByID(id)
	if err != nil {
		return nil, notFound(err, "department")
	}
	if !s.authorizer.Can(actor, authz.ActionView, department) {
		return nil, ErrForbidden
	}
	return department, nil
}

// Create stores a department. Every assigned user must be updatable by actor.
func (s *DepartmentService) Create(ctx context.Context, actor *authz.Actor, input DepartmentInput) (*models.Department, error) {
	if err := authz.Authorize(s.authorizer, actor, authz.ActionCreate, authz.KindDepartments); err != nil {
		return nil, err
	}

	verr := validateStruct(input)
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		verr.Add("name", "This field is required.")
	}
	checkImage("logo", input.Logo, verr)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	var users []models.User
	if input.UserIDs != nil {
		var err error
		users, err = assignableUsers(s.authorizer, s.users, actor, "user_ids", *input.UserIDs)
		if err != nil {
			return nil, err
		}
	}

	department := &models.Department{Name: strings.TrimSpace(*input.Name)}
	if input.SvgName != nil {
		department.SvgName = strings.TrimSpace(*input.SvgName)
	}

	if input.Logo != nil {
		logoPath, err := s.store.Put(constants.LogoDirectory, input.Logo.ext(), input.Logo.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store logo: %w", err)
		}
		department.LogoPath = logoPath
	}

	if err := s.departments.Create(department, users); err != nil {
		if department.LogoPath != "" {
			_ = s.store.Delete(department.LogoPath)
		}
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("department_id", department.ID).Msg("department created")
	return department, nil
}

// Update changes a department. Relation targets are checked before anything
// is written and fields and members are saved in one transaction. A new logo
// is stored first; the previous file is removed only after the update committed.
func (s *DepartmentService) Update(ctx context.Context, actor *authz.Actor, id uint64, input DepartmentInput) (*models.Department, error) {
	department, err := s.departments.FindByID(id)
	if err != nil {
		return nil, notFound(err, "department")
	}
	if !s.authorizer.Can(actor, authz.ActionUpdate, department) {
		return nil, ErrForbidden
	}

	verr := validateStruct(input)
	checkImage("logo", input.Logo, verr)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	var users []models.User
	if input.UserIDs != nil {
		users, err = assignableUsers(s.authorizer, s.users, actor, "user_ids", *input.UserIDs)
		if err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	setTrimmed(fields, "name", input.Name)
	setTrimmed(fields, "svg_name", input.SvgName)

	previousLogo := department.LogoPath
	newLogo := ""
	if input.Logo != nil {
		newLogo, err = s.store.Put(constants.LogoDirectory, input.Logo.ext(), input.Logo.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store logo: %w", err)
		}
		fields["logo_path"] = newLogo
	}

	if err := s.departments.Update(department, fields, users); err != nil {
		if newLogo != "" {
			_ = s.store.Delete(newLogo)
		}
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	log := zerolog.Ctx(ctx)
	if newLogo != "" && previousLogo != "" {
		if err := s.store.Delete(previousLogo); err != nil {
			log.Error().Err(err).Str("path", previousLogo).Msg("failed to delete previous logo")
		}
	}
	log.Info().Uint64("department_id", department.ID).Msg("department updated")

	return s.departments.FindByID(department.ID)
}

// Delete removes a department and its logo.
func (s *DepartmentService) Delete(ctx context.Context, actor *authz.Actor, id uint64) error {
	department, err := s.departments.FindByID(id)
	if err != nil {
		return notFound(err, "department")
	}
	if !s.authorizer.Can(actor, authz.ActionDelete, department) {
		return ErrForbidden
	}

	if err := s.departments.Delete(department.ID); err != nil {
		return notFound(err, "department")
	}

	log := zerolog.Ctx(ctx)
	if department.LogoPath != "" {
		if err := s.store.Delete(department.LogoPath); err != nil {
			log.Error().Err(err).Str("path", department.LogoPath).Msg("failed to delete logo")
		}
	}
	log.Info().Uint64("department_id", department.ID).Msg("department deleted")
	return nil
}

// LogoURL returns the public URL of a stored department logo.
func (s *DepartmentService) LogoURL(path string) string {
	return s.store.URL(path)
}
