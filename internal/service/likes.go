package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
)

// LikeService is the single ledger for recipe likes: the recipe_likes
// membership rows and the denormalized like counter are always written in
// one transaction, so the counter equals the ledger cardinality at every
// point visible outside a request.
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Like records that actor liked the recipe. Owners cannot like their own
// recipes and a pair can only be recorded once; the composite unique index
// backs up the membership check under concurrency.
func (s *LikeService) Like(ctx context.Context, actor *models.User, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		if recipe.OwnerSubjectID == actor.SubjectID {
			return ErrSelfLike
		}

		var count int64
		if err := tx.Model(&models.RecipeLike{}).
			Where("user_id = ? AND recipe_id = ?", actor.ID, recipeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyLiked
		}

		like := models.RecipeLike{UserID: actor.ID, RecipeID: recipeID}
		if err := tx.Create(&like).Error; err != nil {
			// A racing duplicate slips past the membership check and lands
			// on the unique index instead.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyLiked
			}
			return err
		}

		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	recipe.LikeCount++
	return &recipe, nil
}

// Unlike removes the membership row and decrements the counter. The
// decrement is floored at zero so a mis-ordered concurrent unlike can never
// drive the counter negative.
func (s *LikeService) Unlike(ctx context.Context, actor *models.User, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		res := tx.Where("user_id = ? AND recipe_id = ?", actor.ID, recipeID).
			Delete(&models.RecipeLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotLiked
		}

		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("like_count",
				gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
	})
	if err != nil {
		return nil, err
	}
	if recipe.LikeCount > 0 {
		recipe.LikeCount--
	}
	return &recipe, nil
}

// LikedRecipes lists the recipes a user has liked, newest like first.
func (s *LikeService) LikedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN recipe_likes ON recipe_likes.recipe_id = recipes.id").
		Where("recipe_likes.user_id = ?", userID).
		Order("recipe_likes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// LikedRecipeIDs returns the id set backing a profile's liked-recipes view.
func (s *LikeService) LikedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
