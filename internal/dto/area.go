package dto

import (
	"time"

	"github.com/artwork-tools/artwork-admin/internal/models"
)

// RoomDTO represents a room in page props
type RoomDTO struct {
	ID          uint64           `json:"id"`
	AreaID      uint64           `json:"area_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Temporary   bool             `json:"temporary"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
	Admins      []UserSummaryDTO `json:"admins"`
}

// AreaDTO represents an area with its rooms
type AreaDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	State     string     `json:"state"`
	TrashedAt *time.Time `json:"trashed_at"`
	Rooms     []RoomDTO  `json:"rooms"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func ToRoomDTO(room models.Room) RoomDTO {
	return RoomDTO{
		ID:          room.ID,
		AreaID:      room.AreaID,
		Name:        room.Name,
		Description: room.Description,
		Temporary:   room.Temporary,
		StartDate:   formatDate(room.StartDate),
		EndDate:     formatDate(room.EndDate),
		Admins:      ToUserSummaryDTOs(room.Admins),
	}
}

// ToAreaDTO converts an Area model with preloaded rooms
func ToAreaDTO(area models.Area) AreaDTO {
	rooms := make([]RoomDTO, len(area.Rooms))
	for i, r := range area.Rooms {
		rooms[i] = ToRoomDTO(r)
	}
	return AreaDTO{
		ID:        area.ID,
		Name:      area.Name,
		State:     string(area.State),
		TrashedAt: area.TrashedAt,
		Rooms:     rooms,
	}
}

func ToAreaDTOs(areas []models.Area) []AreaDTO {
	dtos := make([]AreaDTO, len(areas))
	for i, a := range areas {
		dtos[i] = ToAreaDTO(a)
	}
	return dtos
}
