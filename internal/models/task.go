package models

import "time"

type Checklist struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	Tasks   []Task  `gorm:"foreignKey:ChecklistID" json:"-"`
	Users   []User  `gorm:"many2many:checklist_user" json:"-"`
}

// HasUser reports whether userID is assigned. Users must be preloaded.
func (c Checklist) HasUser(userID uint64) bool {
	for _, u := range c.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `gorm:"type:date" json:"deadline"`
	Done        bool       `gorm:"not null;default:false" json:"done"`
	ChecklistID uint64     `gorm:"not null;index" json:"checklist_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Checklist Checklist `gorm:"foreignKey:ChecklistID" json:"-"`
}
