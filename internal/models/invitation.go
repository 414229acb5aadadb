package models

import (
	"time"

	"gorm.io/datatypes"
)

// Invitation is a pending, single-use invitation. TokenHash holds the bcrypt
// hash of the emailed token; the plaintext is never stored.
type Invitation struct {
	ID          uint64                      `gorm:"primarykey" json:"id"`
	Email       string                      `gorm:"type:varchar(255);index;not null" json:"email"`
	TokenHash   string                      `gorm:"column:token;type:varchar(255);not null" json:"-"`
	Role        string                      `gorm:"type:varchar(100)" json:"role"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`

	// Relations
	Departments []Department `gorm:"many2many:department_invitation" json:"departments,omitempty"`
}
