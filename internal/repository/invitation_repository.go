package repository

import (
	"github.com/artwork-tools/artwork-admin/internal/database"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// CreateMany stores invitations and their department links in one transaction
func (r *GormInvitationRepository) CreateMany(invitations []*models.Invitation, departments []models.Department) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, inv := range invitations {
			if err := tx.Omit("Departments").Create(inv).Error; err != nil {
				return err
			}
			if len(departments) > 0 {
				if err := tx.Model(inv).Association("Departments").Append(departments); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *GormInvitationRepository) FindByID(id uint64) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Departments").First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *GormInvitationRepository) FindByEmail(email string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.Preload("Departments").Where("email = ?", email).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *GormInvitationRepository) ExistingEmails(emails []string) ([]string, error) {
	var found []string
	if len(emails) == 0 {
		return found, nil
	}
	err := r.db.Model(&models.Invitation{}).Where("email IN ?", emails).Pluck("email", &found).Error
	return found, err
}

func (r *GormInvitationRepository) List(params utils.PaginationParams) ([]models.Invitation, int64, error) {
	var total int64
	if err := r.db.Model(&models.Invitation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invitations []models.Invitation
	if err := r.db.
		Preload("Departments").
		Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&invitations).Error; err != nil {
		return nil, 0, err
	}

	return invitations, total, nil
}

// Update writes fields and replaces departments when non-nil
func (r *GormInvitationRepository) Update(invitation *models.Invitation, fields map[string]any, departments []models.Department) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := updateFields(tx, invitation, fields); err != nil {
			return err
		}
		if departments == nil {
			return nil
		}
		return replaceAssociation(tx, invitation, "Departments", departments)
	})
}

// Delete removes an invitation together with its department links
func (r *GormInvitationRepository) Delete(id uint64) error {
	res := r.db.Select("Departments").Delete(&models.Invitation{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
