package models

import "time"

type Project struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Members     []ProjectUser `gorm:"foreignKey:ProjectID" json:"-"`
	Departments []Department  `gorm:"many2many:department_project" json:"-"`
	Checklists  []Checklist   `gorm:"foreignKey:ProjectID" json:"-"`
}

// ProjectUser links a user to a project. IsAdmin members may update the project.
type ProjectUser struct {
	ProjectID uint64 `gorm:"primarykey" json:"project_id"`
	UserID    uint64 `gorm:"primarykey" json:"user_id"`
	IsAdmin   bool   `gorm:"not null;default:false" json:"is_admin"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

func (ProjectUser) TableName() string { return "project_user" }

// HasMember reports whether userID is linked to the project. Members must be preloaded.
func (p Project) HasMember(userID uint64) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// HasAdmin reports whether userID is an admin member. Members must be preloaded.
func (p Project) HasAdmin(userID uint64) bool {
	for _, m := range p.Members {
		if m.UserID == userID && m.IsAdmin {
			return true
		}
	}
	return false
}
