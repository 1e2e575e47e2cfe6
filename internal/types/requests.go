package types

// CreateRecipeRequest represents the request body for creating a recipe.
type CreateRecipeRequest struct {
	Title           string   `json:"title" binding:"required,max=255"`
	Ingredients     []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Instructions    []string `json:"instructions" binding:"required,min=1,dive,required"`
	CuisineType     string   `json:"cuisine_type" binding:"required,oneof=Italian Mexican Indian Chinese Others"`
	Categories      []string `json:"categories" binding:"required,min=1,dive,oneof=Breakfast Lunch Dinner Dessert Vegan"`
	PrepTimeMinutes int      `json:"prep_time_minutes" binding:"required,gt=0"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// The same shape rules apply as on creation.
type UpdateRecipeRequest struct {
	Title           string   `json:"title" binding:"required,max=255"`
	Ingredients     []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Instructions    []string `json:"instructions" binding:"required,min=1,dive,required"`
	CuisineType     string   `json:"cuisine_type" binding:"required,oneof=Italian Mexican Indian Chinese Others"`
	Categories      []string `json:"categories" binding:"required,min=1,dive,oneof=Breakfast Lunch Dinner Dessert Vegan"`
	PrepTimeMinutes int      `json:"prep_time_minutes" binding:"required,gt=0"`
}

// RegisterRequest carries the profile fields for account bootstrap. The
// bearer credential in the Authorization header supplies the identity.
type RegisterRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Email       string   `json:"email" binding:"required,email"`
	Bio         string   `json:"bio" binding:"max=2000"`
	PhotoURL    string   `json:"photo_url" binding:"omitempty,url"`
	Specialties []string `json:"specialties"`
}

// UpdateProfileRequest carries the editable profile fields; empty values
// are left untouched.
type UpdateProfileRequest struct {
	Name        string   `json:"name" binding:"max=100"`
	Bio         string   `json:"bio" binding:"max=2000"`
	PhotoURL    string   `json:"photo_url" binding:"omitempty,url"`
	Specialties []string `json:"specialties"`
}
