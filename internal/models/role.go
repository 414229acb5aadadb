package models

// Role is a named bundle of permissions.
type Role struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Name        string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Superuser   bool         `gorm:"not null;default:false" json:"superuser"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

// Permission is a single named capability such as "invite users".
type Permission struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}
