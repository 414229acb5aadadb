package database

import (
	"testing"

	"github.com/artwork-tools/artwork-admin/internal/config"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, Migrate(db))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasIndex("project_user", "idx_project_user_user_id"))
}

func TestSeed_CatalogAndResync(t *testing.T) {
	db := openTestDB(t)

	catalog, err := config.LoadRoleCatalog("")
	require.NoError(t, err)
	require.NoError(t, Seed(db, catalog))
	require.NoError(t, Seed(db, catalog))

	var permCount int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&permCount).Error)
	assert.Equal(t, int64(len(catalog.Permissions)), permCount)

	var admin models.Role
	require.NoError(t, db.Where("name = ?", "admin").First(&admin).Error)
	assert.True(t, admin.Superuser)

	reduced, err := config.ParseRoleCatalog([]byte("roles:\n  - name: user\n    permissions: [view projects]\npermissions: [view projects]\n"))
	require.NoError(t, err)
	require.NoError(t, Seed(db, reduced))

	var user models.Role
	require.NoError(t, db.Preload("Permissions").Where("name = ?", "user").First(&user).Error)
	require.Len(t, user.Permissions, 1)
	assert.Equal(t, "view projects", user.Permissions[0].Name)
}

func TestAreasInState(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.Area{Name: "Stage"}).Error)
	require.NoError(t, db.Create(&models.Area{Name: "Old", State: models.AreaStateTrashed}).Error)

	var active []models.Area
	require.NoError(t, db.Scopes(AreasInState(models.AreaStateActive)).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, "Stage", active[0].Name)
}
