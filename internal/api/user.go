package api

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/types"
)

const maxPhotoBytes = 5 << 20

// UserHandler serves the /api/users surface: identity bootstrap, profiles,
// the like ledger and the social graph.
type UserHandler struct {
	verifier service.IdentityVerifier
	users    *service.UserService
	social   *service.SocialService
	likes    *service.LikeService
	recipes  *service.RecipeService
	photos   *service.PhotoService
}

func NewUserHandler(
	verifier service.IdentityVerifier,
	users *service.UserService,
	social *service.SocialService,
	likes *service.LikeService,
	recipes *service.RecipeService,
	photos *service.PhotoService,
) *UserHandler {
	return &UserHandler{
		verifier: verifier,
		users:    users,
		social:   social,
		likes:    likes,
		recipes:  recipes,
		photos:   photos,
	}
}

// RegisterRoutes wires the user endpoints. Bootstrap routes stay public:
// they verify the credential themselves and bypass the session guard, so an
// idle user can always log back in.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authed gin.HandlerFunc, limiters ...gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/create-or-update", h.CreateOrUpdate)

		users.GET("/profile/:uid", h.GetProfile)
		users.GET("/:uid/recipes", h.GetUserRecipes)
		users.GET("/:uid/liked-recipes", h.GetLikedRecipes)
		users.GET("/:uid/followers", h.GetFollowers)
		users.GET("/:uid/following", h.GetFollowing)

		users.GET("/current", authed, h.GetCurrent)
		users.PUT("/profile", authed, h.UpdateProfile)
		users.POST("/profile/photo", authed, h.UploadProfilePhoto)

		social := append([]gin.HandlerFunc{authed}, limiters...)
		users.POST("/like/:recipeId", append(social, h.LikeRecipe)...)
		users.DELETE("/unlike/:recipeId", append(social, h.UnlikeRecipe)...)
		users.POST("/follow/:userId", append(social, h.FollowUser)...)
		users.DELETE("/unfollow/:userId", append(social, h.UnfollowUser)...)
	}
}

// RegisterDevRoutes adds the development-only token mint. Never wired in
// production.
func (h *UserHandler) RegisterDevRoutes(router *gin.RouterGroup, issuer *service.JWTVerifier) {
	router.POST("/users/dev-token", func(c *gin.Context) {
		var req struct {
			SubjectID string `json:"subject_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		token, err := issuer.Issue(req.SubjectID, 24*time.Hour)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.Ok("", gin.H{"token": token}))
	})
}

func (h *UserHandler) Register(c *gin.Context) {
	subjectID, ok := h.verifyBearer(c)
	if !ok {
		return
	}

	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, created, err := h.users.Register(c.Request.Context(), subjectID, service.ProfileFields{
		Name:        req.Name,
		Email:       req.Email,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		Specialties: req.Specialties,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, types.Ok("user registered", user))
		return
	}
	c.JSON(http.StatusOK, types.Ok("user already registered", user))
}

func (h *UserHandler) Login(c *gin.Context) {
	subjectID, ok := h.verifyBearer(c)
	if !ok {
		return
	}

	user, err := h.users.Login(c.Request.Context(), subjectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("login successful", user))
}

func (h *UserHandler) CreateOrUpdate(c *gin.Context) {
	subjectID, ok := h.verifyBearer(c)
	if !ok {
		return
	}

	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, created, err := h.users.CreateOrUpdate(c.Request.Context(), subjectID, service.ProfileFields{
		Name:        req.Name,
		Email:       req.Email,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		Specialties: req.Specialties,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, types.Ok("user created", user))
		return
	}
	c.JSON(http.StatusOK, types.Ok("user updated", user))
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.users.GetBySubject(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondProfile(c, user)
}

func (h *UserHandler) GetCurrent(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	h.respondProfile(c, user)
}

func (h *UserHandler) respondProfile(c *gin.Context, user *models.User) {
	ctx := c.Request.Context()

	followers, err := h.social.Followers(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	following, err := h.social.Following(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	liked, err := h.likes.LikedRecipeIDs(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.Ok("", types.ProfileView{
		SubjectID:             user.SubjectID,
		Name:                  user.Name,
		Email:                 user.Email,
		Bio:                   user.Bio,
		PhotoURL:              user.PhotoURL,
		Specialties:           user.Specialties,
		Followers:             followers,
		Following:             following,
		LikedRecipes:          liked,
		LastActiveAt:          user.LastActiveAt,
		SessionTimeoutMinutes: user.SessionTimeoutMinutes,
		CreatedAt:             user.CreatedAt,
	}))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), actor.SubjectID, service.ProfileFields{
		Name:        req.Name,
		Bio:         req.Bio,
		PhotoURL:    req.PhotoURL,
		Specialties: req.Specialties,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("profile updated", user))
}

func (h *UserHandler) UploadProfilePhoto(c *gin.Context) {
	if h.photos == nil {
		c.JSON(http.StatusServiceUnavailable, types.Fail("photo storage is not configured"))
		return
	}

	actor, ok := requireUser(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Fail("photo file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(data) > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, types.Fail("photo exceeds the 5MB limit"))
		return
	}

	url, err := h.photos.UploadProfilePhoto(c.Request.Context(), actor.SubjectID, data, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.SetPhotoURL(c.Request.Context(), actor.SubjectID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("profile photo updated", user))
}

func (h *UserHandler) GetUserRecipes(c *gin.Context) {
	user, err := h.users.GetBySubject(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.recipes.ListByOwner(c.Request.Context(), user.SubjectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.OkList(recipes, len(recipes)))
}

func (h *UserHandler) GetLikedRecipes(c *gin.Context) {
	user, err := h.users.GetBySubject(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.likes.LikedRecipes(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.OkList(recipes, len(recipes)))
}

func (h *UserHandler) GetFollowers(c *gin.Context) {
	user, err := h.users.GetBySubject(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	followers, err := h.social.Followers(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.OkList(followers, len(followers)))
}

func (h *UserHandler) GetFollowing(c *gin.Context) {
	user, err := h.users.GetBySubject(c.Request.Context(), c.Param("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	following, err := h.social.Following(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.OkList(following, len(following)))
}

func (h *UserHandler) LikeRecipe(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := parseUUIDParam(c, "recipeId")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Fail("invalid recipe id"))
		return
	}

	recipe, err := h.likes.Like(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("recipe liked", recipe))
}

func (h *UserHandler) UnlikeRecipe(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := parseUUIDParam(c, "recipeId")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Fail("invalid recipe id"))
		return
	}

	recipe, err := h.likes.Unlike(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("recipe unliked", recipe))
}

func (h *UserHandler) FollowUser(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.social.Follow(c.Request.Context(), actor, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("user followed", nil))
}

func (h *UserHandler) UnfollowUser(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.social.Unfollow(c.Request.Context(), actor, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("user unfollowed", nil))
}

// verifyBearer checks the credential on the public bootstrap routes, which
// run without the session guard.
func (h *UserHandler) verifyBearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, types.Fail("missing authorization header"))
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, types.Fail("invalid authorization header format"))
		return "", false
	}

	subjectID, err := h.verifier.Verify(c.Request.Context(), parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, types.Fail(service.ErrInvalidToken.Error()))
		return "", false
	}
	return subjectID, true
}
