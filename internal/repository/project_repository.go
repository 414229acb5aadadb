package repository

import (
	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create stores a project with its members and departments atomically
func (r *GormProjectRepository) Create(project *models.Project, members []models.ProjectUser, departments []models.Department) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		if err := replaceMembers(tx, project.ID, members); err != nil {
			return err
		}
		if len(departments) == 0 {
			return nil
		}
		return tx.Model(project).Association("Departments").Append(departments)
	})
}

func replaceMembers(tx *gorm.DB, projectID uint64, members []models.ProjectUser) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectUser{}).Error; err != nil {
		return err
	}
	if len(members) == 0 {
		return nil
	}
	for i := range members {
		members[i].ProjectID = projectID
	}
	return tx.Omit(clause.Associations).Create(&members).Error
}

func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.
		Preload("Members.User").
		Preload("Departments.Users").
		Preload("Checklists").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) List(params utils.PaginationParams, memberID *uint64) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})
	if memberID != nil {
		membership := r.db.Model(&models.ProjectUser{}).
			Select("1").
			Where("project_user.project_id = projects.id").
			Where("project_user.user_id = ?", *memberID)
		query = query.Where("EXISTS (?)", membership)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.
		Preload("Members").
		Order("projects.created_at DESC, projects.id DESC").
		Scopes(database.Paginate(params)).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update writes fields and replaces members and departments when non-nil
func (r *GormProjectRepository) Update(project *models.Project, fields map[string]any, members []models.ProjectUser, departments []models.Department) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateFields(tx, project, fields); err != nil {
			return err
		}
		if members != nil {
			if err := replaceMembers(tx, project.ID, members); err != nil {
				return err
			}
		}
		if departments != nil {
			return replaceAssociation(tx, project, "Departments", departments)
		}
		return nil
	})
}

// Delete removes a project, its checklists with their tasks, and all links
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		checklists := tx.Model(&models.Checklist{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("checklist_id IN (?)", checklists).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM checklist_user WHERE checklist_id IN (?)", checklists).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Checklist{}).Error; err != nil {
			return err
		}

		res := tx.Select("Members", "Departments").Delete(&models.Project{ID: id})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
