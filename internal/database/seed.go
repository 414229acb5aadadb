package database

import (
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/config"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"gorm.io/gorm"
)

// Seed makes the roles and permissions table match the catalog. Existing
// rows are kept; role permission sets are replaced.
func Seed(db *gorm.DB, catalog *config.RoleCatalog) error {
	return db.Transaction(func(tx *gorm.DB) error {
		perms := make(map[string]models.Permission, len(catalog.Permissions))
		for _, name := range catalog.Permissions {
			p := models.Permission{Name: name}
			if err := tx.Where(models.Permission{Name: name}).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("seed permission %q: %w", name, err)
			}
			perms[name] = p
		}

		for _, def := range catalog.Roles {
			role := models.Role{Name: def.Name}
			if err := tx.Where(models.Role{Name: def.Name}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("seed role %q: %w", def.Name, err)
			}
			if role.Superuser != def.Superuser {
				if err := tx.Model(&role).Update("superuser", def.Superuser).Error; err != nil {
					return fmt.Errorf("seed role %q: %w", def.Name, err)
				}
			}

			rolePerms := make([]models.Permission, 0, len(def.Permissions))
			for _, name := range def.Permissions {
				rolePerms = append(rolePerms, perms[name])
			}
			if err := tx.Model(&role).Association("Permissions").Replace(rolePerms); err != nil {
				return fmt.Errorf("seed role %q permissions: %w", def.Name, err)
			}
		}

		return nil
	})
}
