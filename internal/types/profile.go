package types

import (
	"time"

	"github.com/google/uuid"
)

// ProfileView is the public shape of a user: the record plus the social
// sets materialized from the graph and the like ledger.
type ProfileView struct {
	SubjectID             string      `json:"subject_id"`
	Name                  string      `json:"name"`
	Email                 string      `json:"email"`
	Bio                   string      `json:"bio"`
	PhotoURL              string      `json:"photo_url"`
	Specialties           []string    `json:"specialties"`
	Followers             []string    `json:"followers"`
	Following             []string    `json:"following"`
	LikedRecipes          []uuid.UUID `json:"liked_recipes"`
	LastActiveAt          time.Time   `json:"last_active_at"`
	SessionTimeoutMinutes int         `json:"session_timeout_minutes"`
	CreatedAt             time.Time   `json:"created_at"`
}
