package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSessionTimeoutMinutes is applied to users that never configured an
// idle timeout of their own.
const DefaultSessionTimeoutMinutes = 30

// User is an account bootstrapped from the external identity provider.
// SubjectID is the provider-issued identifier; it is the value carried in
// bearer tokens and the only key handlers use to resolve the acting user.
type User struct {
	ID                    uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
	SubjectID             string          `gorm:"size:128;uniqueIndex;not null" json:"subject_id"`
	Name                  string          `gorm:"not null" json:"name"`
	Email                 string          `gorm:"uniqueIndex;not null" json:"email"`
	Bio                   string          `gorm:"type:text" json:"bio"`
	PhotoURL              string          `gorm:"size:255" json:"photo_url"`
	Specialties           JSONStringArray `gorm:"type:text;not null;default:'[]'" json:"specialties"`
	LastActiveAt          time.Time       `json:"last_active_at"`
	SessionTimeoutMinutes int             `gorm:"not null;default:30" json:"session_timeout_minutes"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.SessionTimeoutMinutes <= 0 {
		u.SessionTimeoutMinutes = DefaultSessionTimeoutMinutes
	}
	if u.LastActiveAt.IsZero() {
		u.LastActiveAt = time.Now()
	}
	return nil
}

// UserFollow is one edge of the social graph. A single row carries both
// directions of the relation: FollowerID appears in FollowedID's followers
// and FollowedID in FollowerID's following, so the two views can never
// disagree.
type UserFollow struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	FollowerID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_followed" json:"follower_id"`
	FollowedID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_follower_followed" json:"followed_id"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

func (f *UserFollow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
