package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
)

// UserService owns account bootstrap and profile maintenance. Accounts are
// keyed by the provider subject-id; there is no credential storage here.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileFields are the caller-editable parts of a user record.
type ProfileFields struct {
	Name        string
	Email       string
	Bio         string
	PhotoURL    string
	Specialties []string
}

// Register creates the account for a freshly verified subject. Registering
// twice is harmless: the existing record is returned unchanged. A different
// subject claiming an already-registered email is rejected.
func (s *UserService) Register(ctx context.Context, subjectID string, fields ProfileFields) (*models.User, bool, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	var emailOwner models.User
	if err := s.db.WithContext(ctx).Where("email = ?", fields.Email).First(&emailOwner).Error; err == nil {
		return nil, false, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user := models.User{
		SubjectID:    subjectID,
		Name:         fields.Name,
		Email:        fields.Email,
		Bio:          fields.Bio,
		PhotoURL:     fields.PhotoURL,
		Specialties:  fields.Specialties,
		LastActiveAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// Login resolves the subject to its account and refreshes the activity
// timestamp. The credential itself was already verified by the caller.
func (s *UserService) Login(ctx context.Context, subjectID string) (*models.User, error) {
	user, err := s.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.db.WithContext(ctx).Model(user).
		UpdateColumn("last_active_at", now).Error; err != nil {
		return nil, err
	}
	user.LastActiveAt = now
	return user, nil
}

// CreateOrUpdate upserts the profile for a verified subject: first call
// creates the account, later calls overwrite the supplied profile fields.
func (s *UserService) CreateOrUpdate(ctx context.Context, subjectID string, fields ProfileFields) (*models.User, bool, error) {
	user, created, err := s.Register(ctx, subjectID, fields)
	if err != nil {
		return nil, false, err
	}
	if created {
		return user, true, nil
	}

	user, err = s.UpdateProfile(ctx, subjectID, fields)
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}

// UpdateProfile overwrites the editable fields of an existing account.
// Empty strings leave the current value in place; email is not editable
// here because it is bound to the identity provider registration.
func (s *UserService) UpdateProfile(ctx context.Context, subjectID string, fields ProfileFields) (*models.User, error) {
	user, err := s.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fields.Name != "" {
		updates["name"] = fields.Name
	}
	if fields.Bio != "" {
		updates["bio"] = fields.Bio
	}
	if fields.PhotoURL != "" {
		updates["photo_url"] = fields.PhotoURL
	}
	if fields.Specialties != nil {
		updates["specialties"] = models.JSONStringArray(fields.Specialties)
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetBySubject(ctx, subjectID)
}

// SetPhotoURL persists the storage URL of a freshly uploaded profile photo.
func (s *UserService) SetPhotoURL(ctx context.Context, subjectID, url string) (*models.User, error) {
	user, err := s.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).
		UpdateColumn("photo_url", url).Error; err != nil {
		return nil, err
	}
	user.PhotoURL = url
	return user, nil
}

// GetBySubject fetches a user by provider subject-id.
func (s *UserService) GetBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
