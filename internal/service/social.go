package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
)

// SocialService maintains the follower graph. Each relation is one
// user_follows row, so the follower and following views are two reads of
// the same edge and cannot drift apart.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// Follow adds the edge actor -> target. Both users must exist, a user can
// never follow themselves, and an existing edge is reported as a conflict.
func (s *SocialService) Follow(ctx context.Context, actor *models.User, targetSubjectID string) error {
	if actor.SubjectID == targetSubjectID {
		return ErrSelfFollow
	}

	target, err := s.getBySubject(ctx, targetSubjectID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where("follower_id = ? AND followed_id = ?", actor.ID, target.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyFollowing
	}

	follow := models.UserFollow{FollowerID: actor.ID, FollowedID: target.ID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		// A racing duplicate slips past the membership check and lands on
		// the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes the edge actor -> target.
func (s *SocialService) Unfollow(ctx context.Context, actor *models.User, targetSubjectID string) error {
	if actor.SubjectID == targetSubjectID {
		return ErrSelfUnfollow
	}

	target, err := s.getBySubject(ctx, targetSubjectID)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", actor.ID, target.ID).
		Delete(&models.UserFollow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Followers returns the subject-ids of everyone following the user.
func (s *SocialService) Followers(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var subjects []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.followed_id = ?", userID).
		Pluck("users.subject_id", &subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// Following returns the subject-ids of everyone the user follows.
func (s *SocialService) Following(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var subjects []string
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN user_follows ON user_follows.followed_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Pluck("users.subject_id", &subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *SocialService) getBySubject(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
