package dto

import (
	"time"

	"github.com/artwork-tools/artwork-admin/internal/models"
)

// TaskDTO represents a checklist task in page props
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Deadline    *string   `json:"deadline"`
	Done        bool      `json:"done"`
	ChecklistID uint64    `json:"checklist_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChecklistSummaryDTO is the short form used in project pages
type ChecklistSummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ChecklistDTO represents a checklist with tasks and assigned users
type ChecklistDTO struct {
	ID        uint64           `json:"id"`
	Name      string           `json:"name"`
	ProjectID uint64           `json:"project_id"`
	Tasks     []TaskDTO        `json:"tasks"`
	Users     []UserSummaryDTO `json:"users"`
}

// ToTaskDTO converts a Task model. Deadlines are rendered as YYYY-MM-DD.
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    formatDate(task.Deadline),
		Done:        task.Done,
		ChecklistID: task.ChecklistID,
		UpdatedAt:   task.UpdatedAt,
	}
}

func ToChecklistSummaryDTOs(checklists []models.Checklist) []ChecklistSummaryDTO {
	dtos := make([]ChecklistSummaryDTO, len(checklists))
	for i, c := range checklists {
		dtos[i] = ChecklistSummaryDTO{ID: c.ID, Name: c.Name}
	}
	return dtos
}

// ToChecklistDTO converts a Checklist model with preloaded tasks and users
func ToChecklistDTO(checklist models.Checklist) ChecklistDTO {
	tasks := make([]TaskDTO, len(checklist.Tasks))
	for i, t := range checklist.Tasks {
		tasks[i] = ToTaskDTO(t)
	}
	return ChecklistDTO{
		ID:        checklist.ID,
		Name:      checklist.Name,
		ProjectID: checklist.ProjectID,
		Tasks:     tasks,
		Users:     ToUserSummaryDTOs(checklist.Users),
	}
}

func ToChecklistDTOs(checklists []models.Checklist) []ChecklistDTO {
	dtos := make([]ChecklistDTO, len(checklists))
	for i, c := range checklists {
		dtos[i] = ToChecklistDTO(c)
	}
	return dtos
}
