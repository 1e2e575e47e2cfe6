package router

import (
	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/config"
	"github.com/plateshare/backend/internal/api"
	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/service"
)

// Deps carries everything the route table needs.
type Deps struct {
	Verifier      service.IdentityVerifier
	Sessions      *service.SessionService
	UserHandler   *api.UserHandler
	RecipeHandler *api.RecipeHandler
	HealthHandler *api.HealthHandler

	// Optional extras.
	RecipeLimiter *middleware.RateLimiter
	SocialLimiter *middleware.RateLimiter
	DevIssuer     *service.JWTVerifier
	CORSOrigins   []string
}

// Setup configures the application routes
func Setup(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(deps.CORSOrigins))

	authed := middleware.Auth(deps.Verifier, deps.Sessions)

	apiGroup := router.Group("/api")

	deps.HealthHandler.RegisterRoutes(apiGroup)

	var recipeLimiters []gin.HandlerFunc
	if deps.RecipeLimiter != nil {
		recipeLimiters = append(recipeLimiters, deps.RecipeLimiter.Middleware())
	}
	deps.RecipeHandler.RegisterRoutes(apiGroup, authed, recipeLimiters...)

	var socialLimiters []gin.HandlerFunc
	if deps.SocialLimiter != nil {
		socialLimiters = append(socialLimiters, deps.SocialLimiter.Middleware())
	}
	deps.UserHandler.RegisterRoutes(apiGroup, authed, socialLimiters...)

	if deps.DevIssuer != nil && config.IsDevelopment() {
		deps.UserHandler.RegisterDevRoutes(apiGroup, deps.DevIssuer)
	}

	return router
}
