package handlers

import (
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/dto"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/artwork-tools/artwork-admin/internal/utils"
	"github.com/gin-gonic/gin"
)

// InvitationHandler serves the invitation pages and the public acceptance flow.
type InvitationHandler struct {
	invitationService *services.InvitationService
}

func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// ListInvitations renders pending invitations
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c, constants.InvitationsPerPage)
	invitations, total, err := h.invitationService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Users/Invitations", gin.H{
		"invitations": dto.ToInvitationDTOs(invitations),
		"pagination":  utils.NewPaginationResponse(params, total),
	})
}

// InviteForm renders the invite form with the selectable roles, permissions and departments
func (h *InvitationHandler) InviteForm(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	form, err := h.invitationService.FormData(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Users/Invite", formProps(form))
}

// Invite issues one invitation per submitted email
func (h *InvitationHandler) Invite(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var input services.InviteInput
	if !bind(c, &input) {
		return
	}

	invitations, err := h.invitationService.Invite(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/users/invitations", fmt.Sprintf("%d invitation(s) sent.", len(invitations)))
}

// EditForm renders a pending invitation for editing
func (h *InvitationHandler) EditForm(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "invitation")
	if !ok {
		return
	}

	invitation, err := h.invitationService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	form, err := h.invitationService.FormData(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	props := formProps(form)
	props["invitation"] = dto.ToInvitationDTO(*invitation)
	render(c, "Users/InvitationEdit", props)
}

func (h *InvitationHandler) UpdateInvitation(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "invitation")
	if !ok {
		return
	}

	var input services.UpdateInvitationInput
	if !bind(c, &input) {
		return
	}

	if _, err := h.invitationService.Update(c.Request.Context(), actor, id, input); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/users/invitations", "Invitation updated.")
}

func (h *InvitationHandler) DeleteInvitation(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "invitation")
	if !ok {
		return
	}

	if err := h.invitationService.Destroy(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	redirect(c, "/users/invitations", "Invitation deleted.")
}

// AcceptForm renders the registration form for an emailed invitation link.
// Nothing is checked here; the token is verified on submit.
func (h *InvitationHandler) AcceptForm(c *gin.Context) {
	render(c, "Users/Accept", gin.H{
		"token": c.Query("token"),
		"email": c.Query("email"),
	})
}

// Accept redeems an invitation and signs the new user in
func (h *InvitationHandler) Accept(c *gin.Context) {
	var input services.AcceptInput
	if !bind(c, &input) {
		return
	}

	user, err := h.invitationService.Accept(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if !startSession(c, user) {
		return
	}
	redirect(c, "/dashboard", "Welcome to Artwork.")
}

func formProps(form *services.InvitationFormData) gin.H {
	return gin.H{
		"roles":       dto.ToRoleDTOs(form.Roles),
		"permissions": dto.ToPermissionNames(form.Permissions),
		"departments": dto.ToDepartmentSummaryDTOs(form.Departments),
	}
}
