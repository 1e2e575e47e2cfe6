package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONStringArray stores a string slice as a JSON document so the same model
// works against Postgres and the sqlite test database.
type JSONStringArray []string

// Value implements the driver.Valuer interface
func (a JSONStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Contains reports whether s is a member of the array.
func (a JSONStringArray) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// Closed vocabularies for recipe classification.
var (
	CuisineTypes = JSONStringArray{"Italian", "Mexican", "Indian", "Chinese", "Others"}
	Categories   = JSONStringArray{"Breakfast", "Lunch", "Dinner", "Dessert", "Vegan"}
)

// Recipe is the publishable unit of the platform. LikeCount is denormalized
// from recipe_likes and is only ever mutated in the same transaction as the
// ledger row, so it always equals the number of users that liked the recipe.
type Recipe struct {
	ID              uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Ingredients     JSONStringArray `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Instructions    JSONStringArray `gorm:"type:text;not null;default:'[]'" json:"instructions"`
	CuisineType     string          `gorm:"size:50;not null" json:"cuisine_type"`
	Categories      JSONStringArray `gorm:"type:text;not null;default:'[]'" json:"categories"`
	PrepTimeMinutes int             `gorm:"not null" json:"prep_time_minutes"`
	LikeCount       int             `gorm:"not null;default:0" json:"like_count"`
	OwnerSubjectID  string          `gorm:"size:128;not null;index" json:"owner_subject_id"`
	OwnerEmail      string          `gorm:"size:255;not null" json:"owner_email"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeLike is the membership row of the like ledger: one row per
// (user, recipe) pair, enforced by the composite unique index.
type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe" json:"recipe_id"`
}

func (RecipeLike) TableName() string {
	return "recipe_likes"
}

func (l *RecipeLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
