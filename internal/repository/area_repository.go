package repository

import (
	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAreaRepository is a GORM implementation of AreaRepository
type GormAreaRepository struct {
	db *gorm.DB
}

// NewAreaRepository creates a new AreaRepository
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &GormAreaRepository{db: db}
}

func (r *GormAreaRepository) Create(area *models.Area) error {
	if area.State == "" {
		area.State = models.AreaStateActive
	}
	return r.db.Omit(clause.Associations).Create(area).Error
}

func (r *GormAreaRepository) FindByID(id uint64) (*models.Area, error) {
	var area models.Area
	if err := r.db.Preload("Rooms").First(&area, id).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// List returns areas in the given state with their rooms
func (r *GormAreaRepository) List(state models.AreaState, params utils.PaginationParams) ([]models.Area, int64, error) {
	query := r.db.Model(&models.Area{}).Scopes(database.AreasInState(state))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "areas.name ASC, areas.id ASC"
	if state == models.AreaStateTrashed {
		order = "areas.trashed_at DESC, areas.id DESC"
	}

	var areas []models.Area
	if err := query.
		Preload("Rooms").
		Order(order).
		Scopes(database.Paginate(params)).
		Find(&areas).Error; err != nil {
		return nil, 0, err
	}

	return areas, total, nil
}

func (r *GormAreaRepository) Update(area *models.Area, fields map[string]any) error {
	return updateFields(r.db, area, fields)
}

// Duplicate copies the area and its rooms in one transaction. Room admins are not copied.
func (r *GormAreaRepository) Duplicate(area *models.Area, name string) (*models.Area, error) {
	copied := &models.Area{
		Name:  name,
		State: models.AreaStateActive,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(copied).Error; err != nil {
			return err
		}
		if len(area.Rooms) == 0 {
			return nil
		}

		rooms := make([]models.Room, len(area.Rooms))
		for i, room := range area.Rooms {
			rooms[i] = models.Room{
				AreaID:      copied.ID,
				Name:        room.Name,
				Description: room.Description,
				Temporary:   room.Temporary,
				StartDate:   room.StartDate,
				EndDate:     room.EndDate,
			}
		}
		if err := tx.Omit(clause.Associations).Create(&rooms).Error; err != nil {
			return err
		}
		copied.Rooms = rooms
		return nil
	})
	if err != nil {
		return nil, err
	}

	return copied, nil
}

// Delete permanently removes an area with its rooms and room admin links
func (r *GormAreaRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		rooms := tx.Model(&models.Room{}).Select("id").Where("area_id = ?", id)
		if err := tx.Exec("DELETE FROM room_admins WHERE room_id IN (?)", rooms).Error; err != nil {
			return err
		}
		if err := tx.Where("area_id = ?", id).Delete(&models.Room{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Area{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CreateRoom stores a room and links its admins atomically
func (r *GormAreaRepository) CreateRoom(room *models.Room, admins []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(room).Error; err != nil {
			return err
		}
		if len(admins) == 0 {
			return nil
		}
		return tx.Model(room).Association("Admins").Append(admins)
	})
}

func (r *GormAreaRepository) FindRoom(id uint64) (*models.Room, error) {
	var room models.Room
	if err := r.db.Preload("Admins").Preload("Area").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoom writes fields and replaces room admins when non-nil
func (r *GormAreaRepository) UpdateRoom(room *models.Room, fields map[string]any, admins []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateFields(tx, room, fields); err != nil {
			return err
		}
		if admins == nil {
			return nil
		}
		return replaceAssociation(tx, room, "Admins", admins)
	})
}

func (r *GormAreaRepository) DeleteRoom(id uint64) error {
	res := r.db.Select("Admins").Delete(&models.Room{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
