package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/plateshare/backend/internal/database"
	"github.com/plateshare/backend/internal/models"
)

// SetupTestDB opens a fresh in-memory sqlite database with the full schema.
// Each test gets its own database so cases cannot bleed into each other.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", t.Name(), uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// CreateTestUser inserts a user keyed by the given subject-id.
func CreateTestUser(t *testing.T, db *gorm.DB, subjectID string) *models.User {
	t.Helper()

	user := models.User{
		SubjectID:    subjectID,
		Name:         "Test " + subjectID,
		Email:        fmt.Sprintf("%s@example.com", subjectID),
		LastActiveAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", subjectID, err)
	}
	return &user
}

// CreateTestRecipe inserts a recipe owned by the given user.
func CreateTestRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:           title,
		Ingredients:     models.JSONStringArray{"flour", "water"},
		Instructions:    models.JSONStringArray{"mix", "bake"},
		CuisineType:     "Italian",
		Categories:      models.JSONStringArray{"Dinner"},
		PrepTimeMinutes: 30,
		OwnerSubjectID:  owner.SubjectID,
		OwnerEmail:      owner.Email,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe %s: %v", title, err)
	}
	return &recipe
}
