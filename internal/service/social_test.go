package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateshare/backend/internal/models"
	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

// assertMirrored checks both views of every edge between the two users.
func assertMirrored(t *testing.T, db *gorm.DB, social *service.SocialService, a, b *models.User, aFollowsB bool) {
	t.Helper()
	ctx := context.Background()

	aFollowing, err := social.Following(ctx, a.ID)
	require.NoError(t, err)
	bFollowers, err := social.Followers(ctx, b.ID)
	require.NoError(t, err)

	if aFollowsB {
		assert.Contains(t, aFollowing, b.SubjectID)
		assert.Contains(t, bFollowers, a.SubjectID)
	} else {
		assert.NotContains(t, aFollowing, b.SubjectID)
		assert.NotContains(t, bFollowers, a.SubjectID)
	}
}

func TestFollowAndUnfollow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")

	require.NoError(t, social.Follow(ctx, alice, "bob"))
	assertMirrored(t, db, social, alice, bob, true)

	// The reverse direction is a separate edge.
	assertMirrored(t, db, social, bob, alice, false)

	require.NoError(t, social.Unfollow(ctx, alice, "bob"))
	assertMirrored(t, db, social, alice, bob, false)
}

func TestFollowConflicts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice")
	testhelpers.CreateTestUser(t, db, "bob")

	assert.ErrorIs(t, social.Follow(ctx, alice, "alice"), service.ErrSelfFollow)
	assert.ErrorIs(t, social.Follow(ctx, alice, "ghost"), service.ErrUserNotFound)

	require.NoError(t, social.Follow(ctx, alice, "bob"))
	assert.ErrorIs(t, social.Follow(ctx, alice, "bob"), service.ErrAlreadyFollowing)
}

func TestUnfollowConflicts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice")
	testhelpers.CreateTestUser(t, db, "bob")

	assert.ErrorIs(t, social.Unfollow(ctx, alice, "alice"), service.ErrSelfUnfollow)
	assert.ErrorIs(t, social.Unfollow(ctx, alice, "ghost"), service.ErrUserNotFound)
	assert.ErrorIs(t, social.Unfollow(ctx, alice, "bob"), service.ErrNotFollowing)
}

func TestNoSelfEdgesEver(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	social := service.NewSocialService(db)
	ctx := context.Background()

	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")
	carol := testhelpers.CreateTestUser(t, db, "carol")

	require.NoError(t, social.Follow(ctx, alice, "bob"))
	require.NoError(t, social.Follow(ctx, bob, "alice"))
	require.NoError(t, social.Follow(ctx, carol, "alice"))
	require.NoError(t, social.Unfollow(ctx, bob, "alice"))

	for _, u := range []*models.User{alice, bob, carol} {
		following, err := social.Following(ctx, u.ID)
		require.NoError(t, err)
		assert.NotContains(t, following, u.SubjectID)

		followers, err := social.Followers(ctx, u.ID)
		require.NoError(t, err)
		assert.NotContains(t, followers, u.SubjectID)
	}
}

func TestFollowEdgeDuplicateHitsUniqueIndex(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")

	// Two writers inserting the same edge: the second lands on the unique
	// index and must surface as the translated duplicate-key error the
	// service maps to AlreadyFollowing.
	first := models.UserFollow{FollowerID: alice.ID, FollowedID: bob.ID}
	require.NoError(t, db.Create(&first).Error)

	second := models.UserFollow{FollowerID: alice.ID, FollowedID: bob.ID}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
