package middleware

import (
	"errors"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/constants"
	apierrors "github.com/artwork-tools/artwork-admin/internal/errors"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RequireAuth checks the session and resolves the request actor. A session
// pointing at a deleted user is cleared.
func RequireAuth(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUint64(session.Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := users.FindWithGrants(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				session.Clear()
				_ = session.Save()
				apierrors.Unauthorized(c, "")
			} else {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to load session user")
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		actor := authz.NewActor(user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyActor, actor)

		logger := zerolog.Ctx(c.Request.Context()).With().Uint64("user_id", user.ID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Next()
	}
}

// GetActor retrieves the request actor set by RequireAuth
func GetActor(c *gin.Context) (*authz.Actor, bool) {
	v, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return nil, false
	}
	actor, ok := v.(*authz.Actor)
	return actor, ok && actor != nil
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(v any) (uint64, bool) {
	switch v := v.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
