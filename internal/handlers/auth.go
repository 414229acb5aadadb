package handlers

import (
	"net/http"

	"github.com/artwork-tools/artwork-admin/internal/constants"
	"github.com/artwork-tools/artwork-admin/internal/dto"
	apierrors "github.com/artwork-tools/artwork-admin/internal/errors"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService      *services.AuthService
	userService      *services.UserService
	checklistService *services.ChecklistService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, checklistService *services.ChecklistService) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		userService:      userService,
		checklistService: checklistService,
	}
}

// SetupForm renders the first-run form while no user exists.
func (h *AuthHandler) SetupForm(c *gin.Context) {
	required, err := h.authService.SetupRequired()
	if err != nil {
		respondError(c, err)
		return
	}
	if !required {
		respondError(c, services.ErrSetupCompleted)
		return
	}
	render(c, "Auth/Setup", nil)
}

// Setup creates the first administrator and signs them in.
func (h *AuthHandler) Setup(c *gin.Context) {
	var input services.SetupInput
	if !bind(c, &input) {
		return
	}

	user, err := h.authService.Setup(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if !startSession(c, user) {
		return
	}
	redirect(c, "/dashboard", "Welcome to Artwork.")
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if !bind(c, &input) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if !startSession(c, user) {
		return
	}
	redirect(c, "/dashboard", "")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, h.userService.PhotoURL))
}

// Dashboard renders the checklists assigned to the current user.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	checklists, err := h.checklistService.Assigned(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	render(c, "Dashboard", gin.H{
		"user":       dto.ToUserDTO(*user, h.userService.PhotoURL),
		"checklists": dto.ToChecklistDTOs(checklists),
	})
}

// startSession replaces any previous session contents with the user's ID.
func startSession(c *gin.Context, user *models.User) bool {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}
