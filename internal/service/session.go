package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
)

// SessionService enforces the rolling idle timeout. Every authenticated
// request passes through Touch before any business logic runs.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// Touch loads the user for a verified subject and advances their activity
// timestamp. A subject with no record yet is a first touch: Touch returns
// (nil, nil) and the registration flow is expected to create the record.
// An idle user gets ErrSessionExpired and their timestamp is left alone, so
// repeated calls keep failing until they log in again.
func (s *SessionService) Touch(ctx context.Context, subjectID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now()
	timeout := user.SessionTimeoutMinutes
	if timeout <= 0 {
		timeout = models.DefaultSessionTimeoutMinutes
	}

	if now.Sub(user.LastActiveAt) > time.Duration(timeout)*time.Minute {
		return nil, ErrSessionExpired
	}

	if err := s.db.WithContext(ctx).Model(&user).
		UpdateColumn("last_active_at", now).Error; err != nil {
		return nil, err
	}
	user.LastActiveAt = now
	return &user, nil
}
