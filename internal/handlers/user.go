package handlers

import (
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/dto"
	apierrors "github.com/artwork-tools/artwork-admin/internal/errors"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers renders a page of users
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, constants.UsersPerPage)
	users, total, err := h.userService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Users/Index", gin.H{
		"users":      dto.ToUserDTOs(users, h.userService.PhotoURL),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

// GetUser renders the edit page of a user
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "user")
	if !ok {
		return
	}

	detail, err := h.userService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Users/Edit", gin.H{
		"user":                  dto.ToUserDTO(*detail.User, h.userService.PhotoURL),
		"available_roles":       dto.ToRoleDTOs(detail.AvailableRoles),
		"available_permissions": dto.ToPermissionNames(detail.AvailablePermissions),
	})
}

// UpdateUser accepts JSON, or multipart when a profile photo is uploaded
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "user")
	if !ok {
		return
	}

	var input services.UpdateUserInput
	if isMultipart(c) {
		input = services.UpdateUserInput{
			FirstName:   formString(c, "first_name"),
			LastName:    formString(c, "last_name"),
			PhoneNumber: formString(c, "phone_number"),
			Position:    formString(c, "position"),
			Business:    formString(c, "business"),
			Description: formString(c, "description"),
			Roles:       formStrings(c, "roles"),
			Permissions: formStrings(c, "permissions"),
		}
		photo, closeFn, err := formUpload(c, "photo")
		if err != nil {
			apierrors.BadRequest(c, "Invalid photo upload")
			return
		}
		if closeFn != nil {
			defer closeFn()
		}
		input.Photo = photo
	} else if !bind(c, &input) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, fmt.Sprintf("/users/%d", user.ID), "Profile saved.")
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "user")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/users", "User deleted.")
}
