package repository

import (
	"testing"
	"time"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/testutil"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAreaRepository_ListByState(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAreaRepository(db)
	page := utils.PaginationParams{Page: 1, Limit: 10}

	stage := &models.Area{Name: "Stage"}
	foyer := &models.Area{Name: "Foyer"}
	require.NoError(t, repo.Create(stage))
	require.NoError(t, repo.Create(foyer))

	now := time.Now()
	require.NoError(t, repo.Update(foyer, map[string]any{"state": models.AreaStateTrashed, "trashed_at": &now}))

	active, total, err := repo.List(models.AreaStateActive, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Stage", active[0].Name)

	trashed, total, err := repo.List(models.AreaStateTrashed, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Foyer", trashed[0].Name)
}

func TestAreaRepository_DuplicateCopiesRooms(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAreaRepository(db)

	area := &models.Area{Name: "Stage"}
	require.NoError(t, repo.Create(area))
	require.NoError(t, repo.CreateRoom(&models.Room{AreaID: area.ID, Name: "Main hall", Temporary: true}, nil))

	area, err := repo.FindByID(area.ID)
	require.NoError(t, err)

	copied, err := repo.Duplicate(area, "(Copy) Stage")
	require.NoError(t, err)
	assert.NotEqual(t, area.ID, copied.ID)

	loaded, err := repo.FindByID(copied.ID)
	require.NoError(t, err)
	assert.Equal(t, "(Copy) Stage", loaded.Name)
	require.Len(t, loaded.Rooms, 1)
	assert.Equal(t, "Main hall", loaded.Rooms[0].Name)
	assert.True(t, loaded.Rooms[0].Temporary)
}

func TestAreaRepository_DeleteRemovesRooms(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewAreaRepository(db)
	admin := testutil.CreateUser(t, db, nil)

	area := &models.Area{Name: "Stage"}
	require.NoError(t, repo.Create(area))
	room := &models.Room{AreaID: area.ID, Name: "Main hall"}
	require.NoError(t, repo.CreateRoom(room, nil))
	require.NoError(t, repo.UpdateRoom(room, nil, []models.User{*admin}))

	require.NoError(t, repo.Delete(area.ID))

	_, err := repo.FindRoom(room.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var links int64
	require.NoError(t, db.Table("room_admins").Where("room_id = ?", room.ID).Count(&links).Error)
	assert.Zero(t, links)
}
