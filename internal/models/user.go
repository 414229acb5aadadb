package models

import (
	"sort"
	"strings"
	"time"
)

type User struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	FirstName        string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName         string    `gorm:"type:varchar(255);not null" json:"last_name"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"type:varchar(255);not null" json:"-"`
	PhoneNumber      string    `gorm:"type:varchar(50)" json:"phone_number"`
	Position         string    `gorm:"type:varchar(255)" json:"position"`
	Business         string    `gorm:"type:varchar(255)" json:"business"`
	Description      string    `gorm:"type:text" json:"description"`
	ProfilePhotoPath string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Roles       []Role        `gorm:"many2many:user_roles" json:"-"`
	Permissions []Permission  `gorm:"many2many:user_permissions" json:"-"`
	Departments []Department  `gorm:"many2many:department_user" json:"-"`
	Projects    []ProjectUser `gorm:"foreignKey:UserID" json:"-"`
}

// Name returns the display name built from the name parts.
func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RoleNames returns the names of the preloaded roles.
func (u User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}

// PermissionNames returns the names of the preloaded direct permissions in
// alphabetical order. Grants are a set; the order they were given in is not kept.
func (u User) PermissionNames() []string {
	names := make([]string, len(u.Permissions))
	for i, p := range u.Permissions {
		names[i] = p.Name
	}
	sort.Strings(names)
	return names
}
