package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/types"
)

// respondError maps a service failure onto the envelope and the matching
// HTTP status. Unknown errors are logged and surfaced as a bare 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, types.Fail(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, types.Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidRecipe):
		c.JSON(http.StatusBadRequest, types.Fail(err.Error()))
	case errors.Is(err, service.ErrSelfLike),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrSelfUnfollow),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, types.Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, types.Fail(err.Error()))
	default:
		log.Printf("unexpected error: %v", err)
		msg := "internal server error"
		if config.IsDevelopment() {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, types.Fail(msg))
	}
}

// respondBindError turns a binding failure into a 400 with the individual
// field violations joined into one message.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, types.Fail("invalid request body"))
		return
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldErrorMessage(fe))
	}
	c.JSON(http.StatusBadRequest, types.Fail(strings.Join(msgs, "; ")))
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
