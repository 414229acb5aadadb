package dto

import (
	"time"

	"github.com/artwork-tools/artwork-admin/internal/models"
)

// URLFunc resolves a stored file path into its public URL.
type URLFunc func(path string) string

func resolve(url URLFunc, path string) string {
	if url == nil || path == "" {
		return ""
	}
	return url(path)
}

// UserDTO represents a user in page props
type UserDTO struct {
	ID              uint64   `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phone_number"`
	Position        string   `json:"position"`
	Business        string   `json:"business"`
	Description     string   `json:"description"`
	ProfilePhotoURL string   `json:"profile_photo_url,omitempty"`
	Roles           []string `json:"roles"`
	Permissions     []string `json:"permissions"`
}

// UserSummaryDTO is the short form used in pickers and relations
type UserSummaryDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RoleDTO represents a selectable role
type RoleDTO struct {
	Name      string `json:"name"`
	Superuser bool   `json:"superuser"`
}

// InvitationDTO represents a pending invitation
type InvitationDTO struct {
	ID          uint64                 `json:"id"`
	Email       string                 `json:"email"`
	Role        string                 `json:"role"`
	Permissions []string               `json:"permissions"`
	Departments []DepartmentSummaryDTO `json:"departments"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ToUserDTO converts a User model with preloaded grants to UserDTO
func ToUserDTO(user models.User, url URLFunc) UserDTO {
	return UserDTO{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Name:            user.Name(),
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		Position:        user.Position,
		Business:        user.Business,
		Description:     user.Description,
		ProfilePhotoURL: resolve(url, user.ProfilePhotoPath),
		Roles:           user.RoleNames(),
		Permissions:     user.PermissionNames(),
	}
}

// ToUserDTOs converts a list of users
func ToUserDTOs(users []models.User, url URLFunc) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u, url)
	}
	return dtos
}

func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:    user.ID,
		Name:  user.Name(),
		Email: user.Email,
	}
}

func ToUserSummaryDTOs(users []models.User) []UserSummaryDTO {
	dtos := make([]UserSummaryDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserSummaryDTO(u)
	}
	return dtos
}

func ToRoleDTOs(roles []models.Role) []RoleDTO {
	dtos := make([]RoleDTO, len(roles))
	for i, r := range roles {
		dtos[i] = RoleDTO{Name: r.Name, Superuser: r.Superuser}
	}
	return dtos
}

// ToPermissionNames flattens permissions to their names
func ToPermissionNames(perms []models.Permission) []string {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.Name
	}
	return names
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(inv models.Invitation) InvitationDTO {
	perms := []string(inv.Permissions)
	if perms == nil {
		perms = []string{}
	}
	return InvitationDTO{
		ID:          inv.ID,
		Email:       inv.Email,
		Role:        inv.Role,
		Permissions: perms,
		Departments: ToDepartmentSummaryDTOs(inv.Departments),
		CreatedAt:   inv.CreatedAt,
	}
}

func ToInvitationDTOs(invitations []models.Invitation) []InvitationDTO {
	dtos := make([]InvitationDTO, len(invitations))
	for i, inv := range invitations {
		dtos[i] = ToInvitationDTO(inv)
	}
	return dtos
}
