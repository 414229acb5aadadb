package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	apierrors "github.com/artwork-tools/artwork-admin/internal/errors"
	"github.com/artwork-tools/artwork-admin/internal/middleware"
	"github.com/artwork-tools/artwork-admin/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Page is the payload of every rendered view.
type Page struct {
	Component string            `json:"component"`
	Props     gin.H             `json:"props"`
	Flash     map[string]string `json:"flash"`
}

// render answers with a page payload, consuming pending flash messages.
func render(c *gin.Context, component string, props gin.H) {
	if props == nil {
		props = gin.H{}
	}
	c.JSON(http.StatusOK, Page{
		Component: component,
		Props:     props,
		Flash:     takeFlash(c),
	})
}

func takeFlash(c *gin.Context) map[string]string {
	flash := map[string]string{}
	session := sessions.Default(c)
	for _, key := range []string{constants.FlashSuccess, constants.FlashError} {
		if msgs := session.Flashes(key); len(msgs) > 0 {
			if msg, ok := msgs[len(msgs)-1].(string); ok {
				flash[key] = msg
			}
		}
	}
	if len(flash) > 0 {
		if err := session.Save(); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to save session")
		}
	}
	return flash
}

// redirect stores a success flash message and answers 302 Found.
func redirect(c *gin.Context, location, message string) {
	if message != "" {
		session := sessions.Default(c)
		session.AddFlash(message, constants.FlashSuccess)
		if err := session.Save(); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to save session")
		}
	}
	c.Redirect(http.StatusFound, location)
}

// respondError maps service errors onto API errors.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Fields)
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrInvalidState):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAIUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrSetupCompleted):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		apierrors.InternalError(c, "")
	}
}

// actorOrAbort returns the request actor, answering 401 when it is missing.
func actorOrAbort(c *gin.Context) (*authz.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return actor, true
}

// paramID parses a positive numeric route parameter, answering 404 otherwise.
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// bind decodes the request body into input, answering 400 on malformed input.
func bind(c *gin.Context, input any) bool {
	if err := c.ShouldBind(input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}
