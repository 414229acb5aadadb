package models

import "time"

type Department struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	SvgName   string    `gorm:"type:varchar(100)" json:"svg_name"`
	LogoPath  string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users       []User       `gorm:"many2many:department_user" json:"-"`
	Projects    []Project    `gorm:"many2many:department_project" json:"-"`
	Invitations []Invitation `gorm:"many2many:department_invitation" json:"-"`
}
