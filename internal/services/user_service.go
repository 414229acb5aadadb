package services

import (
	"context"
	"errors"
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

// UserService administers user accounts.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	store      storage.Store
	authorizer authz.Authorizer
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, roles repository.RoleRepository, store storage.Store, authorizer authz.Authorizer) *UserService {
	return &UserService{
		users:      users,
		roles:      roles,
		store:      store,
		authorizer: authorizer,
	}
}

// UserDetail is a user together with the role and permission choices of the edit form.
type UserDetail struct {
	User                 *models.User
	AvailableRoles       []models.Role
	AvailablePermissions []models.Permission
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.User, int64, error) {
	if err := authz.Authorize(s.authorizer, actor, authz.ActionView, authz.KindUsers); err != nil {
		return nil, 0, err
	}

	users, total, err := s.users.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Get returns a user for the edit page.
func (s *UserService) Get(ctx context.Context, actor *authz.Actor, id uint64) (*UserDetail, error) {
	user, err := s.users.FindWithGrants(id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if !s.authorizer.Can(actor, authz.ActionView, user) {
		return nil, ErrForbidden
	}

	roles, err := s.roles.ListRoles()
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	perms, err := s.roles.ListPermissions()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	return &UserDetail{User: user, AvailableRoles: roles, AvailablePermissions: perms}, nil
}

// UpdateUserInput changes a user. Nil fields are left as they are.
type UpdateUserInput struct {
	FirstName   *string   `json:"first_name" form:"first_name" validate:"omitnil,required,max=255"`
	LastName    *string   `json:"last_name" form:"last_name" validate:"omitnil,required,max=255"`
	PhoneNumber *string   `json:"phone_number" form:"phone_number" validate:"omitnil,max=50"`
	Position    *string   `json:"position" form:"position" validate:"omitnil,max=255"`
	Business    *string   `json:"business" form:"business" validate:"omitnil,max=255"`
	Description *string   `json:"description" form:"description" validate:"omitnil,max=5000"`
	Roles       *[]string `json:"roles" form:"roles" validate:"omitnil,dive,required,max=100"`
	Permissions *[]string `json:"permissions" form:"permissions" validate:"omitnil,dive,required,max=100"`
	Photo       *Upload   `json:"-" form:"-"`
}

func (in UpdateUserInput) changesGrants() bool {
	return in.Roles != nil || in.Permissions != nil
}

// Update changes profile fields, and for actors holding "update users" also
// the role and permission sets. The profile photo is replaced after the new
// file is stored; the previous file is removed only once the update committed.
func (s *UserService) Update(ctx context.Context, actor *authz.Actor, id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if !s.authorizer.Can(actor, authz.ActionUpdate, user) {
		return nil, ErrForbidden
	}
	if input.changesGrants() {
		if !actor.HasPermission(authz.PermUpdateUsers) {
			return nil, ErrForbidden
		}
		if actor.UserID == user.ID && !actor.Superuser {
			return nil, ErrForbidden
		}
	}

	verr := validateStruct(input)
	checkImage("photo", input.Photo, verr)
	var grants *repository.UserGrants
	if input.changesGrants() {
		grants = &repository.UserGrants{}
		if input.Roles != nil {
			grants.Roles = append([]string{}, *input.Roles...)
			s.checkRoles(actor, grants.Roles, verr)
		}
		if input.Permissions != nil {
			grants.Permissions = append([]string{}, *input.Permissions...)
			s.checkPermissions(actor, grants.Permissions, verr)
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	setTrimmed(fields, "first_name", input.FirstName)
	setTrimmed(fields, "last_name", input.LastName)
	setTrimmed(fields, "phone_number", input.PhoneNumber)
	setTrimmed(fields, "position", input.Position)
	setTrimmed(fields, "business", input.Business)
	if input.Description != nil {
		fields["description"] = *input.Description
	}

	previousPhoto := user.ProfilePhotoPath
	newPhoto := ""
	if input.Photo != nil {
		newPhoto, err = s.store.Put(constants.ProfilePhotoDirectory, input.Photo.ext(), input.Photo.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store profile photo: %w", err)
		}
		fields["profile_photo_path"] = newPhoto
	}

	if err := s.users.Update(user, fields, grants); err != nil {
		if newPhoto != "" {
			_ = s.store.Delete(newPhoto)
		}
		if errors.Is(err, repository.ErrUnknownRole) {
			return nil, fieldError("roles", "One or more selected roles are invalid.")
		}
		if errors.Is(err, repository.ErrUnknownPermission) {
			return nil, fieldError("permissions", "One or more selected permissions are invalid.")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log := zerolog.Ctx(ctx)
	if newPhoto != "" && previousPhoto != "" {
		if err := s.store.Delete(previousPhoto); err != nil {
			log.Error().Err(err).Str("path", previousPhoto).Msg("failed to delete previous profile photo")
		}
	}
	log.Info().Uint64("user_id", user.ID).Bool("grants_changed", grants != nil).Msg("user updated")

	return s.users.FindWithGrants(user.ID)
}

func (s *UserService) checkRoles(actor *authz.Actor, names []string, verr *ValidationError) {
	roles, err := s.roles.ListRoles()
	if err != nil {
		verr.Add("roles", "Could not check roles.")
		return
	}
	byName := rolesByName(roles)
	for _, n := range names {
		role, ok := byName[n]
		if !ok {
			verr.Add("roles", "One or more selected roles are invalid.")
			return
		}
		if msg := roleGrantError(actor, role); msg != "" {
			verr.Add("roles", msg)
			return
		}
	}
}

func (s *UserService) checkPermissions(actor *authz.Actor, names []string, verr *ValidationError) {
	if missing, err := s.roles.MissingPermissions(names); err != nil || len(missing) > 0 {
		verr.Add("permissions", "One or more selected permissions are invalid.")
		return
	}
	for _, n := range names {
		if !actor.HasPermission(n) {
			verr.Add("permissions", fmt.Sprintf("You may not grant %q.", n))
			return
		}
	}
}

// Delete removes a user permanently. Actors cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor *authz.Actor, id uint64) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		return notFound(err, "user")
	}
	if !s.authorizer.Can(actor, authz.ActionDelete, user) {
		return ErrForbidden
	}

	if err := s.users.Delete(user.ID); err != nil {
		return notFound(err, "user")
	}

	log := zerolog.Ctx(ctx)
	if user.ProfilePhotoPath != "" {
		if err := s.store.Delete(user.ProfilePhotoPath); err != nil {
			log.Error().Err(err).Str("path", user.ProfilePhotoPath).Msg("failed to delete profile photo")
		}
	}
	log.Info().Uint64("user_id", user.ID).Uint64("deleted_by", actor.UserID).Msg("user deleted")
	return nil
}

// PhotoURL returns the public URL of a stored profile photo.
func (s *UserService) PhotoURL(path string) string {
	return s.store.URL(path)
}

func setTrimmed(fields map[string]any, column string, value *string) {
	if value != nil {
		fields[column] = strings.TrimSpace(*value)
	}
}
