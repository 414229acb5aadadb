package models

import "time"

type AreaState string

const (
	AreaStateActive  AreaState = "active"
	AreaStateTrashed AreaState = "trashed"
)

// Area groups rooms. Trashed areas are hidden from the standard listing and can be restored.
type Area struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	State     AreaState  `gorm:"type:varchar(20);not null;default:'active';index" json:"state"`
	TrashedAt *time.Time `json:"trashed_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Rooms []Room `gorm:"foreignKey:AreaID" json:"-"`
}

func (a Area) Trashed() bool { return a.State == AreaStateTrashed }

type Room struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	AreaID      uint64     `gorm:"not null;index" json:"area_id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Temporary   bool       `gorm:"not null;default:false" json:"temporary"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Area   Area   `gorm:"foreignKey:AreaID" json:"-"`
	Admins []User `gorm:"many2many:room_admins" json:"-"`
}
