package dto

import (
	"time"

	"github.com/artwork-tools/artwork-admin/internal/models"
)

// ProjectMemberDTO represents a user linked to a project
type ProjectMemberDTO struct {
	User    UserSummaryDTO `json:"user"`
	IsAdmin bool           `json:"is_admin"`
}

// ProjectDTO represents a project in page props
type ProjectDTO struct {
	ID          uint64                 `json:"id"`
	Name        string                 `json:"name"`
	Members     []ProjectMemberDTO     `json:"members"`
	Departments []DepartmentSummaryDTO `json:"departments"`
	Checklists  []ChecklistSummaryDTO  `json:"checklists"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ToProjectDTO converts a Project model. Member users are used when preloaded.
func ToProjectDTO(project models.Project) ProjectDTO {
	members := make([]ProjectMemberDTO, len(project.Members))
	for i, m := range project.Members {
		user := ToUserSummaryDTO(m.User)
		user.ID = m.UserID
		members[i] = ProjectMemberDTO{User: user, IsAdmin: m.IsAdmin}
	}

	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Members:     members,
		Departments: ToDepartmentSummaryDTOs(project.Departments),
		Checklists:  ToChecklistSummaryDTOs(project.Checklists),
		CreatedAt:   project.CreatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}
