package dto

import (
	"github.com/artwork-tools/artwork-admin/internal/models"
)

// DepartmentSummaryDTO is the short form used in pickers and relations
type DepartmentSummaryDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	SvgName string `json:"svg_name"`
}

// DepartmentDTO represents a department with its members
type DepartmentDTO struct {
	DepartmentSummaryDTO
	LogoURL string           `json:"logo_url,omitempty"`
	Users   []UserSummaryDTO `json:"users"`
}

func ToDepartmentSummaryDTO(department models.Department) DepartmentSummaryDTO {
	return DepartmentSummaryDTO{
		ID:      department.ID,
		Name:    department.Name,
		SvgName: department.SvgName,
	}
}

func ToDepartmentSummaryDTOs(departments []models.Department) []DepartmentSummaryDTO {
	dtos := make([]DepartmentSummaryDTO, len(departments))
	for i, d := range departments {
		dtos[i] = ToDepartmentSummaryDTO(d)
	}
	return dtos
}

// ToDepartmentDTO converts a Department model with preloaded users
func ToDepartmentDTO(department models.Department, url URLFunc) DepartmentDTO {
	return DepartmentDTO{
		DepartmentSummaryDTO: ToDepartmentSummaryDTO(department),
		LogoURL:              resolve(url, department.LogoPath),
		Users:                ToUserSummaryDTOs(department.Users),
	}
}

func ToDepartmentDTOs(departments []models.Department, url URLFunc) []DepartmentDTO {
	dtos := make([]DepartmentDTO, len(departments))
	for i, d := range departments {
		dtos[i] = ToDepartmentDTO(d, url)
	}
	return dtos
}
