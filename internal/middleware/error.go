package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/types"
)

// Recovery converts panics into a 500 envelope. The panic and stack are
// logged server-side; clients only see detail in development mode.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v\n%s", r, debug.Stack())

				msg := "internal server error"
				if config.IsDevelopment() {
					msg = fmt.Sprintf("panic: %v", r)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.Fail(msg))
			}
		}()
		c.Next()
	}
}
