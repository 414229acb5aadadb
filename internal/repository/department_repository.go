package repository

import (
	"errors"

	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDepartmentsNotFound is returned when at least one requested department id does not exist.
var ErrDepartmentsNotFound = errors.New("department repository: departments not found")

// GormDepartmentRepository is a GORM implementation of DepartmentRepository
type GormDepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new DepartmentRepository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &GormDepartmentRepository{db: db}
}

// Create stores a department and its members atomically
func (r *GormDepartmentRepository) Create(department *models.Department, users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(department).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		return tx.Model(department).Association("Users").Append(users)
	})
}

func (r *GormDepartmentRepository) FindByID(id uint64) (*models.Department, error) {
	var department models.Department
	if err := r.db.Preload("Users").First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *GormDepartmentRepository) FindByIDs(ids []uint64) ([]models.Department, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Department{}, nil
	}

	var departments []models.Department
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	if len(departments) != len(ids) {
		return nil, ErrDepartmentsNotFound
	}
	return departments, nil
}

func (r *GormDepartmentRepository) List(params utils.PaginationParams) ([]models.Department, int64, error) {
	var total int64
	if err := r.db.Model(&models.Department{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var departments []models.Department
	if err := r.db.
		Preload("Users").
		Order("name ASC, id ASC").
		Scopes(database.Paginate(params)).
		Find(&departments).Error; err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

func (r *GormDepartmentRepository) All() ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Order("name ASC, id ASC").Find(&departments).Error
	return departments, err
}

// Update writes fields and replaces members when users is non-nil
func (r *GormDepartmentRepository) Update(department *models.Department, fields map[string]any, users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateFields(tx, department, fields); err != nil {
			return err
		}
		if users == nil {
			return nil
		}
		return replaceAssociation(tx, department, "Users", users)
	})
}

// Delete removes a department with its user, project and invitation links
func (r *GormDepartmentRepository) Delete(id uint64) error {
	res := r.db.Select(clause.Associations).Delete(&models.Department{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
