package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
)

// DefaultTopLimit is the number of recipes returned by Top when the caller
// does not ask for a specific count.
const DefaultTopLimit = 6

// RecipeListFilter narrows and orders the public recipe listing.
type RecipeListFilter struct {
	CuisineType string
	Category    string
	// Sort orders by creation time, "asc" or "desc" (default).
	Sort string
}

// RecipeFields are the owner-editable parts of a recipe.
type RecipeFields struct {
	Title           string
	Ingredients     []string
	Instructions    []string
	CuisineType     string
	Categories      []string
	PrepTimeMinutes int
}

// validate screens the fields against the closed vocabularies. The HTTP
// layer screens payloads too, but the service is callable without it.
func (f RecipeFields) validate() error {
	if !models.CuisineTypes.Contains(f.CuisineType) {
		return fmt.Errorf("%w: unknown cuisine type %q", ErrInvalidRecipe, f.CuisineType)
	}
	for _, c := range f.Categories {
		if !models.Categories.Contains(c) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidRecipe, c)
		}
	}
	return nil
}

// RecipeService handles recipe CRUD and enforces that only the verified
// owner can change or remove a recipe.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create stores a new recipe owned by the acting user. Ownership is
// recorded as the subject-id plus the email at creation time.
func (s *RecipeService) Create(ctx context.Context, owner *models.User, fields RecipeFields) (*models.Recipe, error) {
	if err := fields.validate(); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:           fields.Title,
		Ingredients:     fields.Ingredients,
		Instructions:    fields.Instructions,
		CuisineType:     fields.CuisineType,
		Categories:      fields.Categories,
		PrepTimeMinutes: fields.PrepTimeMinutes,
		OwnerSubjectID:  owner.SubjectID,
		OwnerEmail:      owner.Email,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Get retrieves a recipe by ID
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Update replaces the editable fields of a recipe. Existence is checked
// before ownership; the ownership comparison uses the verified subject from
// the session, never an identifier supplied in the payload.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, actorSubjectID string, fields RecipeFields) (*models.Recipe, error) {
	if err := fields.validate(); err != nil {
		return nil, err
	}

	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.OwnerSubjectID != actorSubjectID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{
		"title":             fields.Title,
		"ingredients":       models.JSONStringArray(fields.Ingredients),
		"instructions":      models.JSONStringArray(fields.Instructions),
		"cuisine_type":      fields.CuisineType,
		"categories":        models.JSONStringArray(fields.Categories),
		"prep_time_minutes": fields.PrepTimeMinutes,
	}
	if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a recipe after the same existence-then-ownership check as
// Update. The like ledger rows for the recipe go with it.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID, actorSubjectID string) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if recipe.OwnerSubjectID != actorSubjectID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// List returns recipes matching the filter, ordered by creation time.
func (s *RecipeService) List(ctx context.Context, filter RecipeListFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.CuisineType != "" {
		query = query.Where("cuisine_type = ?", filter.CuisineType)
	}

	if filter.Category != "" {
		// Categories is stored as a JSON array; match the quoted member.
		like := fmt.Sprintf("%%%q%%", filter.Category)
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("categories::text LIKE ?", like)
		} else {
			query = query.Where("categories LIKE ?", like)
		}
	}

	order := "created_at DESC"
	if filter.Sort == "asc" {
		order = "created_at ASC"
	}

	var recipes []models.Recipe
	if err := query.Order(order).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Top returns the most-liked recipes, best first.
func (s *RecipeService) Top(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Order("like_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListByOwner returns all recipes created by the given subject.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerSubjectID string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("owner_subject_id = ?", ownerSubjectID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
