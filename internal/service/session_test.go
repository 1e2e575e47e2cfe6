package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

func TestTouchFirstContact(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sessions := service.NewSessionService(db)

	user, err := sessions.Touch(context.Background(), "never-registered")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestTouchActiveUserAdvancesTimestamp(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sessions := service.NewSessionService(db)

	u := testhelpers.CreateTestUser(t, db, "alice")
	past := time.Now().Add(-29 * time.Minute)
	require.NoError(t, db.Model(u).UpdateColumn("last_active_at", past).Error)

	user, err := sessions.Touch(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.WithinDuration(t, time.Now(), user.LastActiveAt, 5*time.Second)

	var stored models.User
	require.NoError(t, db.First(&stored, "subject_id = ?", "alice").Error)
	assert.WithinDuration(t, time.Now(), stored.LastActiveAt, 5*time.Second)
}

func TestTouchIdleUserRejected(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sessions := service.NewSessionService(db)

	u := testhelpers.CreateTestUser(t, db, "bob")
	past := time.Now().Add(-31 * time.Minute)
	require.NoError(t, db.Model(u).UpdateColumn("last_active_at", past).Error)

	user, err := sessions.Touch(context.Background(), "bob")
	assert.ErrorIs(t, err, service.ErrSessionExpired)
	assert.Nil(t, user)

	// The timestamp stays put so a later call is rejected as well.
	var stored models.User
	require.NoError(t, db.First(&stored, "subject_id = ?", "bob").Error)
	assert.WithinDuration(t, past, stored.LastActiveAt, 2*time.Second)

	_, err = sessions.Touch(context.Background(), "bob")
	assert.ErrorIs(t, err, service.ErrSessionExpired)
}

func TestTouchHonorsPerUserTimeout(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	sessions := service.NewSessionService(db)

	u := testhelpers.CreateTestUser(t, db, "carol")
	require.NoError(t, db.Model(u).Updates(map[string]interface{}{
		"session_timeout_minutes": 60,
		"last_active_at":          time.Now().Add(-45 * time.Minute),
	}).Error)

	user, err := sessions.Touch(context.Background(), "carol")
	require.NoError(t, err)
	require.NotNil(t, user)
}
