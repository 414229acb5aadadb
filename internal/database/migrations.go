package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds indexes on join-table foreign keys that gorm does not create
// for many2many relations.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"user_roles", "idx_user_roles_role_id", "role_id"},
		{"user_permissions", "idx_user_permissions_permission_id", "permission_id"},
		{"department_user", "idx_department_user_user_id", "user_id"},
		{"department_invitation", "idx_department_invitation_invitation_id", "invitation_id"},
		{"department_project", "idx_department_project_project_id", "project_id"},
		{"project_user", "idx_project_user_user_id", "user_id"},
		{"checklist_user", "idx_checklist_user_user_id", "user_id"},
		{"room_admins", "idx_room_admins_user_id", "user_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
