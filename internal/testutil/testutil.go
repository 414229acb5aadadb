// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/config"
	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Password is the plaintext password of every fixture user.
const Password = "TesterTest_123?"

var (
	passwordHash string
	userSeq      atomic.Uint64
)

// NewDB opens a migrated and seeded in-memory SQLite database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))

	catalog, err := config.LoadRoleCatalog("")
	require.NoError(t, err)
	require.NoError(t, database.Seed(db, catalog))

	return db
}

// CreateUser inserts a user with the given roles and direct permissions.
func CreateUser(t *testing.T, db *gorm.DB, roles []string, permissions ...string) *models.User {
	t.Helper()

	if passwordHash == "" {
		hash, err := utils.HashPassword(Password)
		require.NoError(t, err)
		passwordHash = hash
	}

	n := userSeq.Add(1)
	user := &models.User{
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: passwordHash,
	}
	require.NoError(t, db.Create(user).Error)

	if len(roles) > 0 {
		var rs []models.Role
		require.NoError(t, db.Where("name IN ?", roles).Find(&rs).Error)
		require.Len(t, rs, len(roles))
		require.NoError(t, db.Model(user).Association("Roles").Append(rs))
	}
	if len(permissions) > 0 {
		var ps []models.Permission
		require.NoError(t, db.Where("name IN ?", permissions).Find(&ps).Error)
		require.Len(t, ps, len(permissions))
		require.NoError(t, db.Model(user).Association("Permissions").Append(ps))
	}

	return user
}

// Actor loads the user's grants and returns the matching actor.
func Actor(t *testing.T, db *gorm.DB, user *models.User) *authz.Actor {
	t.Helper()

	var loaded models.User
	require.NoError(t, db.Preload("Roles.Permissions").Preload("Permissions").First(&loaded, user.ID).Error)
	return authz.NewActor(&loaded)
}

// CreateDepartment inserts a department with the given name.
func CreateDepartment(t *testing.T, db *gorm.DB, name string) *models.Department {
	t.Helper()

	department := &models.Department{Name: name}
	require.NoError(t, db.Create(department).Error)
	return department
}
