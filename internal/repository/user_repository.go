package repository

import (
	"errors"
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating the user row fails inside a provisioning transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrAssignRole is returned when the role cannot be found or attached.
	ErrAssignRole = errors.New("user repository: assign role failed")
	// ErrGrantPermissions is returned when a permission cannot be found or attached.
	ErrGrantPermissions = errors.New("user repository: grant permissions failed")
	// ErrAttachDepartments is returned when departments cannot be attached.
	ErrAttachDepartments = errors.New("user repository: attach departments failed")
	// ErrInvitationConsumed is returned when the invitation disappeared before it could be deleted.
	ErrInvitationConsumed = errors.New("user repository: invitation already consumed")
	// ErrEmailTaken is returned when a user with the same email was created concurrently.
	ErrEmailTaken = errors.New("user repository: email already taken")
	// ErrUsersNotFound is returned when at least one requested user id does not exist.
	ErrUsersNotFound = errors.New("user repository: users not found")
	// ErrUnknownRole is returned when a role name is not in the catalog.
	ErrUnknownRole = errors.New("user repository: unknown role")
	// ErrUnknownPermission is returned when a permission name is not in the catalog.
	ErrUnknownPermission = errors.New("user repository: unknown permission")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Count returns the number of users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CreateWithRole creates a user and assigns the named role atomically.
func (r *GormUserRepository) CreateWithRole(user *models.User, role string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}
		return assignRoles(tx, user, []string{role})
	})
}

// CreateFromInvitation provisions an invited user and consumes the invitation.
func (r *GormUserRepository) CreateFromInvitation(user *models.User, invitation *models.Invitation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		if invitation.Role != "" {
			if err := assignRoles(tx, user, []string{invitation.Role}); err != nil {
				return err
			}
		}

		if len(invitation.Permissions) > 0 {
			if err := grantPermissions(tx, user, invitation.Permissions); err != nil {
				return err
			}
		}

		if len(invitation.Departments) > 0 {
			if err := tx.Model(user).Association("Departments").Append(invitation.Departments); err != nil {
				return fmt.Errorf("%w: %v", ErrAttachDepartments, err)
			}
		}

		res := tx.Select("Departments").Delete(&models.Invitation{ID: invitation.ID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvitationConsumed
		}

		return nil
	})
}

func assignRoles(tx *gorm.DB, user *models.User, names []string) error {
	var roles []models.Role
	if len(names) > 0 {
		if err := tx.Where("name IN ?", names).Find(&roles).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrAssignRole, err)
		}
		if len(roles) != len(names) {
			return fmt.Errorf("%w: %w", ErrAssignRole, ErrUnknownRole)
		}
	}
	if err := replaceAssociation(tx, user, "Roles", roles); err != nil {
		return fmt.Errorf("%w: %v", ErrAssignRole, err)
	}
	return nil
}

func grantPermissions(tx *gorm.DB, user *models.User, names []string) error {
	var perms []models.Permission
	if len(names) > 0 {
		if err := tx.Where("name IN ?", names).Find(&perms).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrGrantPermissions, err)
		}
		if len(perms) != len(uniqueStrings(names)) {
			return fmt.Errorf("%w: %w", ErrGrantPermissions, ErrUnknownPermission)
		}
	}
	if err := replaceAssociation(tx, user, "Permissions", perms); err != nil {
		return fmt.Errorf("%w: %v", ErrGrantPermissions, err)
	}
	return nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindWithGrants finds a user with everything needed to build an actor
func (r *GormUserRepository) FindWithGrants(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.
		Preload("Roles.Permissions").
		Preload("Permissions").
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads users with roles in request order
func (r *GormUserRepository) FindByIDs(ids []uint64) ([]models.User, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.Preload("Roles").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, ErrUsersNotFound
	}

	byID := make(map[uint64]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]models.User, len(ids))
	for i, id := range ids {
		ordered[i] = byID[id]
	}
	return ordered, nil
}

// ExistingEmails returns the subset of emails already registered
func (r *GormUserRepository) ExistingEmails(emails []string) ([]string, error) {
	var found []string
	if len(emails) == 0 {
		return found, nil
	}
	err := r.db.Model(&models.User{}).Where("email IN ?", emails).Pluck("email", &found).Error
	return found, err
}

// List retrieves a page of users ordered by name
func (r *GormUserRepository) List(params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.
		Preload("Roles").
		Order("last_name ASC, first_name ASC, id ASC").
		Scopes(database.Paginate(params)).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// All returns every user
func (r *GormUserRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("last_name ASC, first_name ASC, id ASC").Find(&users).Error
	return users, err
}

// Update writes profile fields and optional grant replacements atomically
func (r *GormUserRepository) Update(user *models.User, fields map[string]any, grants *UserGrants) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateFields(tx, user, fields); err != nil {
			return err
		}
		if grants == nil {
			return nil
		}
		if grants.Roles != nil {
			if err := assignRoles(tx, user, uniqueStrings(grants.Roles)); err != nil {
				return err
			}
		}
		if grants.Permissions != nil {
			if err := grantPermissions(tx, user, grants.Permissions); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete hard-deletes a user with its role, permission, department, project,
// checklist and room links.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM checklist_user WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM room_admins WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Select(clause.Associations).Delete(&models.User{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
