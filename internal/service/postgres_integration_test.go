package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

// Exercises the like ledger and the jsonb category filter against a real
// Postgres, since sqlite and postgres take different filter paths.
func TestPostgresLikeAndFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupPostgresTestDB(t)
	ctx := context.Background()

	recipes := service.NewRecipeService(db)
	likes := service.NewLikeService(db)

	owner := testhelpers.CreateTestUser(t, db, "pg-owner")
	fan := testhelpers.CreateTestUser(t, db, "pg-fan")

	recipe, err := recipes.Create(ctx, owner, service.RecipeFields{
		Title:           "Cacio e Pepe",
		Ingredients:     []string{"pasta", "pecorino", "pepper"},
		Instructions:    []string{"boil", "toss"},
		CuisineType:     "Italian",
		Categories:      []string{"Dinner"},
		PrepTimeMinutes: 20,
	})
	require.NoError(t, err)

	liked, err := likes.Like(ctx, fan, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)

	_, err = likes.Like(ctx, fan, recipe.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyLiked)

	unliked, err := likes.Unlike(ctx, fan, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.LikeCount)

	dinner, err := recipes.List(ctx, service.RecipeListFilter{Category: "Dinner"})
	require.NoError(t, err)
	require.Len(t, dinner, 1)
	assert.Equal(t, "Cacio e Pepe", dinner[0].Title)

	vegan, err := recipes.List(ctx, service.RecipeListFilter{Category: "Vegan"})
	require.NoError(t, err)
	assert.Empty(t, vegan)

	var likeRows int64
	require.NoError(t, db.Model(&models.RecipeLike{}).Count(&likeRows).Error)
	assert.EqualValues(t, 0, likeRows)
}
