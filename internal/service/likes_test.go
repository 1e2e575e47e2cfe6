package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

// ledgerCount is the number of users whose liked set contains the recipe;
// the denormalized counter must always agree with it.
func ledgerCount(t *testing.T, db *gorm.DB, recipeID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.RecipeLike{}).Where("recipe_id = ?", recipeID).Count(&n).Error)
	return n
}

func storedLikeCount(t *testing.T, db *gorm.DB, recipeID uuid.UUID) int {
	t.Helper()
	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", recipeID).Error)
	return recipe.LikeCount
}

func TestLikeFlow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	likes := service.NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "owner")
	fan := testhelpers.CreateTestUser(t, db, "fan")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Carbonara")

	// Fan likes the recipe.
	updated, err := likes.Like(ctx, fan, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.LikeCount)
	assert.EqualValues(t, 1, ledgerCount(t, db, recipe.ID))
	assert.Equal(t, 1, storedLikeCount(t, db, recipe.ID))

	ids, err := likes.LikedRecipeIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Contains(t, ids, recipe.ID)

	// Second like from the same user is a conflict; counter unchanged.
	_, err = likes.Like(ctx, fan, recipe.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyLiked)
	assert.Equal(t, 1, storedLikeCount(t, db, recipe.ID))

	// Owner cannot like their own recipe; counter unchanged.
	_, err = likes.Like(ctx, owner, recipe.ID)
	assert.ErrorIs(t, err, service.ErrSelfLike)
	assert.Equal(t, 1, storedLikeCount(t, db, recipe.ID))
}

func TestLikeMissingRecipe(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	likes := service.NewLikeService(db)

	fan := testhelpers.CreateTestUser(t, db, "fan")

	_, err := likes.Like(context.Background(), fan, uuid.New())
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestUnlikeFlow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	likes := service.NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "owner")
	fan := testhelpers.CreateTestUser(t, db, "fan")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Tacos")

	_, err := likes.Like(ctx, fan, recipe.ID)
	require.NoError(t, err)

	updated, err := likes.Unlike(ctx, fan, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.LikeCount)
	assert.EqualValues(t, 0, ledgerCount(t, db, recipe.ID))
	assert.Equal(t, 0, storedLikeCount(t, db, recipe.ID))

	// Unliking again is a conflict and the counter stays at zero.
	_, err = likes.Unlike(ctx, fan, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotLiked)
	assert.Equal(t, 0, storedLikeCount(t, db, recipe.ID))
}

func TestUnlikeNeverGoesNegative(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	likes := service.NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "owner")
	fan := testhelpers.CreateTestUser(t, db, "fan")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Biryani")

	// Force a ledger row with a counter that was never incremented, the
	// worst case a mis-ordered concurrent write could leave behind.
	require.NoError(t, db.Create(&models.RecipeLike{UserID: fan.ID, RecipeID: recipe.ID}).Error)

	updated, err := likes.Unlike(ctx, fan, recipe.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, updated.LikeCount, 0)
	assert.GreaterOrEqual(t, storedLikeCount(t, db, recipe.ID), 0)
}

func TestCounterMatchesLedgerAcrossUsers(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	likes := service.NewLikeService(db)
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "owner")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Dumplings")

	fans := []*models.User{
		testhelpers.CreateTestUser(t, db, "fan1"),
		testhelpers.CreateTestUser(t, db, "fan2"),
		testhelpers.CreateTestUser(t, db, "fan3"),
	}
	for _, fan := range fans {
		_, err := likes.Like(ctx, fan, recipe.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, storedLikeCount(t, db, recipe.ID))
	assert.EqualValues(t, 3, ledgerCount(t, db, recipe.ID))

	_, err := likes.Unlike(ctx, fans[1], recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, storedLikeCount(t, db, recipe.ID))
	assert.EqualValues(t, 2, ledgerCount(t, db, recipe.ID))
}

func TestLikeRowDuplicateHitsUniqueIndex(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	owner := testhelpers.CreateTestUser(t, db, "owner")
	fan := testhelpers.CreateTestUser(t, db, "fan")
	recipe := testhelpers.CreateTestRecipe(t, db, owner, "Paella")

	// Two writers inserting the same pair: the second lands on the unique
	// index and must surface as the translated duplicate-key error the
	// service maps to AlreadyLiked.
	first := models.RecipeLike{UserID: fan.ID, RecipeID: recipe.ID}
	require.NoError(t, db.Create(&first).Error)

	second := models.RecipeLike{UserID: fan.ID, RecipeID: recipe.ID}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
