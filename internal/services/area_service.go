package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AreaService administers areas and rooms. Every operation requires "manage areas".
type AreaService struct {
	areas      repository.AreaRepository
	users      repository.UserRepository
	authorizer authz.Authorizer
	now        func() time.Time
}

// NewAreaService creates a new AreaService.
func NewAreaService(areas repository.AreaRepository, users repository.UserRepository, authorizer authz.Authorizer) *AreaService {
	return &AreaService{
		areas:      areas,
		users:      users,
		authorizer: authorizer,
		now:        time.Now,
	}
}

type AreaInput struct {
	Name string `json:"name" form:"name" validate:"required,max=255"`
}

func (s *AreaService) authorize(actor *authz.Actor) error {
	return authz.Authorize(s.authorizer, actor, authz.ActionManage, authz.KindAreas)
}

// List returns a page of active areas with their rooms.
func (s *AreaService) List(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.Area, int64, error) {
	return s.list(actor, models.AreaStateActive, params)
}

// Trashed returns a page of trashed areas, most recently trashed first.
func (s *AreaService) Trashed(ctx context.Context, actor *authz.Actor, params utils.PaginationParams) ([]models.Area, int64, error) {
	return s.list(actor, models.AreaStateTrashed, params)
}

func (s *AreaService) list(actor *authz.Actor, state models.AreaState, params utils.PaginationParams) ([]models.Area, int64, error) {
	if err := s.authorize(actor); err != nil {
		return nil, 0, err
	}

	areas, total, err := s.areas.List(state, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, total, nil
}

func (s *AreaService) Create(ctx context.Context, actor *authz.Actor, input AreaInput) (*models.Area, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	area := &models.Area{Name: input.Name}
	if err := s.areas.Create(area); err != nil {
		return nil, fmt.Errorf("failed to create area: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("area_id", area.ID).Msg("area created")
	return area, nil
}

// Update renames an area.
func (s *AreaService) Update(ctx context.Context, actor *authz.Actor, id uint64, input AreaInput) (*models.Area, error) {
	area, err := s.find(actor, id)
	if err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validateStruct(input).ErrOrNil(); err != nil {
		return nil, err
	}

	if err := s.areas.Update(area, map[string]any{"name": input.Name}); err != nil {
		return nil, fmt.Errorf("failed to update area: %w", err)
	}
	area.Name = input.Name
	return area, nil
}

// Trash moves an area to the trash. Trashing a trashed area is a no-op.
func (s *AreaService) Trash(ctx context.Context, actor *authz.Actor, id uint64) error {
	area, err := s.find(actor, id)
	if err != nil {
		return err
	}
	if area.Trashed() {
		return nil
	}

	fields := map[string]any{
		"state":      models.AreaStateTrashed,
		"trashed_at": s.now(),
	}
	if err := s.areas.Update(area, fields); err != nil {
		return fmt.Errorf("failed to trash area: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("area_id", area.ID).Msg("area trashed")
	return nil
}

// Restore brings a trashed area back to the standard listing.
func (s *AreaService) Restore(ctx context.Context, actor *authz.Actor, id uint64) error {
	area, err := s.find(actor, id)
	if err != nil {
		return err
	}
	if !area.Trashed() {
		return nil
	}

	fields := map[string]any{
		"state":      models.AreaStateActive,
		"trashed_at": nil,
	}
	if err := s.areas.Update(area, fields); err != nil {
		return fmt.Errorf("failed to restore area: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("area_id", area.ID).Msg("area restored")
	return nil
}

// Duplicate copies an area with its rooms. Room admins are not copied.
func (s *AreaService) Duplicate(ctx context.Context, actor *authz.Actor, id uint64) (*models.Area, error) {
	area, err := s.find(actor, id)
	if err != nil {
		return nil, err
	}

	copied, err := s.areas.Duplicate(area, constants.DuplicateAreaPrefix+area.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate area: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("area_id", area.ID).Uint64("copy_id", copied.ID).Msg("area duplicated")
	return copied, nil
}

// ForceDelete permanently removes a trashed area and its rooms.
func (s *AreaService) ForceDelete(ctx context.Context, actor *authz.Actor, id uint64) error {
	area, err := s.find(actor, id)
	if err != nil {
		return err
	}
	if !area.Trashed() {
		return ErrInvalidState
	}

	if err := s.areas.Delete(area.ID); err != nil {
		return notFound(err, "area")
	}

	zerolog.Ctx(ctx).Info().Uint64("area_id", area.ID).Msg("area deleted")
	return nil
}

func (s *AreaService) find(actor *authz.Actor, id uint64) (*models.Area, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	area, err := s.areas.FindByID(id)
	if err != nil {
		return nil, notFound(err, "area")
	}
	return area, nil
}

// RoomInput creates or updates a room. Dates are YYYY-MM-DD. On update nil
// fields are left as they are; AreaID is only read on create.
type RoomInput struct {
	AreaID      uint64    `json:"area_id" form:"area_id"`
	Name        *string   `json:"name" form:"name" validate:"omitnil,required,max=255"`
	Description *string   `json:"description" form:"description" validate:"omitnil,max=5000"`
	Temporary   *bool     `json:"temporary" form:"temporary"`
	StartDate   *string   `json:"start_date" form:"start_date" validate:"omitnil,date"`
	EndDate     *string   `json:"end_date" form:"end_date" validate:"omitnil,date"`
	AdminIDs    *[]uint64 `json:"admin_ids" form:"admin_ids" validate:"omitnil,dive,gt=0"`
}

func (s *AreaService) CreateRoom(ctx context.Context, actor *authz.Actor, input RoomInput) (*models.Room, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}

	verr := validateStruct(input)
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		verr.Add("name", "This field is required.")
	}
	if input.AreaID == 0 {
		verr.Add("area_id", "This field is required.")
	} else if _, err := s.areas.FindByID(input.AreaID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find area: %w", err)
		}
		verr.Add("area_id", "The selected area does not exist.")
	}
	checkDateRange(input, nil, verr)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	room := &models.Room{
		AreaID: input.AreaID,
		Name:   strings.TrimSpace(*input.Name),
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
	if input.Temporary != nil {
		room.Temporary = *input.Temporary
	}
	if input.StartDate != nil {
		room.StartDate = parseDate(*input.StartDate)
	}
	if input.EndDate != nil {
		room.EndDate = parseDate(*input.EndDate)
	}

	var admins []models.User
	if input.AdminIDs != nil {
		var err error
		admins, err = assignableUsers(s.authorizer, s.users, actor, "admin_ids", *input.AdminIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.areas.CreateRoom(room, admins); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("room_id", room.ID).Uint64("area_id", room.AreaID).Msg("room created")
	return room, nil
}

// GetRoom returns a room with its admins and area.
func (s *AreaService) GetRoom(ctx context.Context, actor *authz.Actor, id uint64) (*models.Room, error) {
	if err := s.authorize(actor); err != nil {
		return nil, err
	}
	room, err := s.areas.FindRoom(id)
	if err != nil {
		return nil, notFound(err, "room")
	}
	return room, nil
}

// UpdateRoom changes a room. Admin targets are checked individually before
// anything is written.
func (s *AreaService) UpdateRoom(ctx context.Context, actor *authz.Actor, id uint64, input RoomInput) (*models.Room, error) {
	room, err := s.GetRoom(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	verr := validateStruct(input)
	checkDateRange(input, room, verr)
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}

	var admins []models.User
	if input.AdminIDs != nil {
		admins, err = assignableUsers(s.authorizer, s.users, actor, "admin_ids", *input.AdminIDs)
		if err != nil {
			return nil, err
		}
	}

	fields := map[string]any{}
	setTrimmed(fields, "name", input.Name)
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Temporary != nil {
		fields["temporary"] = *input.Temporary
	}
	if input.StartDate != nil {
		fields["start_date"] = parseDate(*input.StartDate)
	}
	if input.EndDate != nil {
		fields["end_date"] = parseDate(*input.EndDate)
	}

	if err := s.areas.UpdateRoom(room, fields, admins); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	zerolog.Ctx(ctx).Info().Uint64("room_id", room.ID).Msg("room updated")
	return s.areas.FindRoom(room.ID)
}

func (s *AreaService) DeleteRoom(ctx context.Context, actor *authz.Actor, id uint64) error {
	room, err := s.GetRoom(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.areas.DeleteRoom(room.ID); err != nil {
		return notFound(err, "room")
	}

	zerolog.Ctx(ctx).Info().Uint64("room_id", room.ID).Msg("room deleted")
	return nil
}

// checkDateRange rejects an end date before the start date. Missing input
// dates fall back to the current values of room when updating.
func checkDateRange(input RoomInput, room *models.Room, verr *ValidationError) {
	var start, end *time.Time
	if room != nil {
		start, end = room.StartDate, room.EndDate
	}
	if input.StartDate != nil {
		start = parseDate(*input.StartDate)
	}
	if input.EndDate != nil {
		end = parseDate(*input.EndDate)
	}
	if start != nil && end != nil && end.Before(*start) {
		verr.Add("end_date", "The end date must be on or after the start date.")
	}
}
