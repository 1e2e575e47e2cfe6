package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/types"
)

// Context keys populated by the auth middleware.
const (
	ContextSubjectID   = "subject_id"
	ContextCurrentUser = "current_user"
)

// IdentityVerifier resolves a bearer credential to a subject-id.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// SessionToucher enforces the idle timeout and refreshes activity.
type SessionToucher interface {
	Touch(ctx context.Context, subjectID string) (*models.User, error)
}

// Auth verifies the bearer credential and runs the session guard before any
// handler logic. A missing credential, an invalid credential, and an expired
// session all reject with 401 but with distinct error strings so clients can
// tell "log in again" apart from "token invalid".
func Auth(verifier IdentityVerifier, sessions SessionToucher) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail("invalid authorization header format"))
			return
		}

		subjectID, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail(service.ErrInvalidToken.Error()))
			return
		}

		user, err := sessions.Touch(c.Request.Context(), subjectID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, types.Fail(service.ErrSessionExpired.Error()))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, types.Fail("failed to check session"))
			return
		}

		c.Set(ContextSubjectID, subjectID)
		if user != nil {
			c.Set(ContextCurrentUser, user)
		}
		c.Next()
	}
}

// SubjectID returns the verified subject-id stored by Auth.
func SubjectID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextSubjectID)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// CurrentUser returns the acting user's record, if one exists yet. A
// verified subject that never registered has no record (first touch).
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextCurrentUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
