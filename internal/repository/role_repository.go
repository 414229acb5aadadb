package repository

import (
	"github.com/artwork-tools/artwork-admin/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

func (r *GormRoleRepository) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *GormRoleRepository) ListPermissions() ([]models.Permission, error) {
	var perms []models.Permission
	err := r.db.Order("id ASC").Find(&perms).Error
	return perms, err
}

func (r *GormRoleRepository) RoleExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *GormRoleRepository) MissingPermissions(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var found []string
	if err := r.db.Model(&models.Permission{}).Where("name IN ?", names).Pluck("name", &found).Error; err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(found))
	for _, n := range found {
		known[n] = struct{}{}
	}
	var missing []string
	for _, n := range names {
		if _, ok := known[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing, nil
}
