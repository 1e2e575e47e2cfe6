package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateshare/backend/internal/middleware"
	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/types"
)

// RecipeHandler serves the /api/recipes surface.
type RecipeHandler struct {
	recipes *service.RecipeService
	likes   *service.LikeService
}

func NewRecipeHandler(recipes *service.RecipeService, likes *service.LikeService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		likes:   likes,
	}
}

// RegisterRoutes wires the recipe endpoints. The authed parameter is the
// credential + session middleware chain.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, authed gin.HandlerFunc, limiters ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/top", h.TopRecipes)
		recipes.GET("/:id", h.GetRecipe)

		create := append([]gin.HandlerFunc{authed}, limiters...)
		recipes.POST("", append(create, h.CreateRecipe)...)
		recipes.PUT("/:id", authed, h.UpdateRecipe)
		recipes.DELETE("/:id", authed, h.DeleteRecipe)
		recipes.POST("/:id/like", authed, h.LikeRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeListFilter{
		CuisineType: c.Query("cuisineType"),
		Category:    c.Query("category"),
		Sort:        c.Query("sort"),
	}

	recipes, err := h.recipes.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.OkList(recipes, len(recipes)))
}

func (h *RecipeHandler) TopRecipes(c *gin.Context) {
	limit := service.DefaultTopLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, types.Fail("limit must be a positive number"))
			return
		}
		limit = n
	}

	recipes, err := h.recipes.Top(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.OkList(recipes, len(recipes)))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("", recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := requireUser(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), actor, service.RecipeFields{
		Title:           req.Title,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		CuisineType:     req.CuisineType,
		Categories:      req.Categories,
		PrepTimeMinutes: req.PrepTimeMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.Ok("recipe created", recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor, ok := requireUser(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, actor.SubjectID, service.RecipeFields{
		Title:           req.Title,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		CuisineType:     req.CuisineType,
		Categories:      req.Categories,
		PrepTimeMinutes: req.PrepTimeMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("recipe updated", recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	actor, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, actor.SubjectID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("recipe deleted", nil))
}

func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	actor, ok := requireUser(c)
	if !ok {
		return
	}

	recipe, err := h.likes.Like(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.Ok("recipe liked", recipe))
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Fail("invalid recipe id"))
		return uuid.Nil, false
	}
	return id, true
}

// requireUser resolves the acting user set by the auth middleware. A
// verified subject without a record yet cannot act on content and is told
// to register first.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user == nil {
		c.JSON(http.StatusNotFound, types.Fail(service.ErrUserNotFound.Error()))
		return nil, false
	}
	return user, true
}
