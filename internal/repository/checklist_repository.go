package repository

import (
	"github.com/artwork-tools/artwork-admin/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChecklistRepository is a GORM implementation of ChecklistRepository
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &GormChecklistRepository{db: db}
}

// Create stores a checklist with its tasks and users atomically
func (r *GormChecklistRepository) Create(checklist *models.Checklist, tasks []models.Task, users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(checklist).Error; err != nil {
			return err
		}
		if err := createTasks(tx, checklist.ID, tasks); err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		return tx.Model(checklist).Association("Users").Append(users)
	})
}

func createTasks(tx *gorm.DB, checklistID uint64, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	for i := range tasks {
		tasks[i].ChecklistID = checklistID
	}
	return tx.Omit(clause.Associations).Create(&tasks).Error
}

func (r *GormChecklistRepository) FindByID(id uint64) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.id ASC")
		}).
		Preload("Users").
		Preload("Project.Members").
		First(&checklist, id).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// ListAssignedTo returns the checklists a user is assigned to, with tasks
func (r *GormChecklistRepository) ListAssignedTo(userID uint64) ([]models.Checklist, error) {
	var checklists []models.Checklist
	err := r.db.
		Joins("JOIN checklist_user ON checklist_user.checklist_id = checklists.id").
		Where("checklist_user.user_id = ?", userID).
		Preload("Tasks").
		Order("checklists.id ASC").
		Find(&checklists).Error
	return checklists, err
}

// Update writes fields, appends tasks and replaces users when non-nil
func (r *GormChecklistRepository) Update(checklist *models.Checklist, fields map[string]any, tasks []models.Task, users []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateFields(tx, checklist, fields); err != nil {
			return err
		}
		if err := createTasks(tx, checklist.ID, tasks); err != nil {
			return err
		}
		if users == nil {
			return nil
		}
		return replaceAssociation(tx, checklist, "Users", users)
	})
}

// Delete removes a checklist with its tasks and user links
func (r *GormChecklistRepository) Delete(id uint64) error {
	res := r.db.Select("Tasks", "Users").Delete(&models.Checklist{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormChecklistRepository) FindTask(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Checklist.Users").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormChecklistRepository) UpdateTask(task *models.Task, fields map[string]any) error {
	return updateFields(r.db, task, fields)
}

func (r *GormChecklistRepository) DeleteTask(id uint64) error {
	res := r.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
