package database

import (
	"gorm.io/gorm"

	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// AreasInState restricts an area query to one lifecycle state.
func AreasInState(state models.AreaState) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("areas.state = ?", state)
	}
}
