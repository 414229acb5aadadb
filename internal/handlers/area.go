package handlers

import (
	"context"
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/dto"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/gin-gonic/gin"
)

type AreaHandler struct {
	areaService *services.AreaService
}

func NewAreaHandler(areaService *services.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

func (h *AreaHandler) ListAreas(c *gin.Context) {
	h.list(c, "Areas/Index", h.areaService.List)
}

// ListTrashed renders areas in the trash, most recently trashed first
func (h *AreaHandler) ListTrashed(c *gin.Context) {
	h.list(c, "Areas/Trashed", h.areaService.Trashed)
}

type areaLister func(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.Area, int64, error)

func (h *AreaHandler) list(c *gin.Context, component string, fetch areaLister) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, constants.AreasPerPage)
	areas, total, err := fetch(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, component, gin.H{
		"areas":      dto.ToAreaDTOs(areas),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

func (h *AreaHandler) CreateArea(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input services.AreaInput
	if !bind(c, &input) {
		return
	}

	if _, err := h.areaService.Create(c.Request.Context(), actor, input); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/areas", "Area created.")
}

func (h *AreaHandler) UpdateArea(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "area")
	if !ok {
		return
	}

	var input services.AreaInput
	if !bind(c, &input) {
		return
	}

	if _, err := h.areaService.Update(c.Request.Context(), actor, id, input); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/areas", "Area saved.")
}

// TrashArea moves an area to the trash
func (h *AreaHandler) TrashArea(c *gin.Context) {
	h.transition(c, h.areaService.Trash, "/areas", "Area moved to the trash.")
}

func (h *AreaHandler) RestoreArea(c *gin.Context) {
	h.transition(c, h.areaService.Restore, "/areas/trashed", "Area restored.")
}

// ForceDeleteArea permanently removes a trashed area
func (h *AreaHandler) ForceDeleteArea(c *gin.Context) {
	h.transition(c, h.areaService.ForceDelete, "/areas/trashed", "Area deleted permanently.")
}

func (h *AreaHandler) transition(c *gin.Context, apply func(context.Context, *authz.Actor, uint64) error, location, message string) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "area")
	if !ok {
		return
	}

	if err := apply(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, location, message)
}

func (h *AreaHandler) DuplicateArea(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "area")
	if !ok {
		return
	}

	if _, err := h.areaService.Duplicate(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/areas", "Area duplicated.")
}

func (h *AreaHandler) CreateRoom(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input services.RoomInput
	if !bind(c, &input) {
		return
	}

	room, err := h.areaService.CreateRoom(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/rooms/%d", room.ID), "Room created.")
}

func (h *AreaHandler) GetRoom(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "room")
	if !ok {
		return
	}

	room, err := h.areaService.GetRoom(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Rooms/Show", gin.H{
		"room": dto.ToRoomDTO(*room),
		"area": gin.H{"id": room.Area.ID, "name": room.Area.Name},
	})
}

func (h *AreaHandler) UpdateRoom(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "room")
	if !ok {
		return
	}

	var input services.RoomInput
	if !bind(c, &input) {
		return
	}

	room, err := h.areaService.UpdateRoom(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/rooms/%d", room.ID), "Room saved.")
}

func (h *AreaHandler) DeleteRoom(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "room")
	if !ok {
		return
	}

	if err := h.areaService.DeleteRoom(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/areas", "Room deleted.")
}
