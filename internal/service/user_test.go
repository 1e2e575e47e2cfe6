package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateshare/backend/internal/service"
	"github.com/plateshare/backend/internal/testhelpers"
)

func TestRegisterIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	fields := service.ProfileFields{Name: "Ada", Email: "ada@example.com"}

	first, created, err := users.Register(ctx, "sub-ada", fields)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := users.Register(ctx, "sub-ada", service.ProfileFields{Name: "Ada Again", Email: "other@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ada", second.Name)
	assert.Equal(t, "ada@example.com", second.Email)
}

func TestRegisterRejectsClaimedEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	_, _, err := users.Register(ctx, "sub-ada", service.ProfileFields{Name: "Ada", Email: "shared@example.com"})
	require.NoError(t, err)

	_, _, err = users.Register(ctx, "sub-eve", service.ProfileFields{Name: "Eve", Email: "shared@example.com"})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginRequiresAccount(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	_, err := users.Login(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	testhelpers.CreateTestUser(t, db, "member")
	user, err := users.Login(ctx, "member")
	require.NoError(t, err)
	assert.False(t, user.LastActiveAt.IsZero())
}

func TestCreateOrUpdateUpserts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	user, created, err := users.CreateOrUpdate(ctx, "sub-new", service.ProfileFields{Name: "New", Email: "new@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "New", user.Name)

	user, created, err = users.CreateOrUpdate(ctx, "sub-new", service.ProfileFields{Name: "Renamed", Bio: "hello"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Renamed", user.Name)
	assert.Equal(t, "hello", user.Bio)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestUpdateProfileLeavesBlankFieldsAlone(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	testhelpers.CreateTestUser(t, db, "chef")

	updated, err := users.UpdateProfile(ctx, "chef", service.ProfileFields{Bio: "pasta person", Specialties: []string{"Italian"}})
	require.NoError(t, err)
	assert.Equal(t, "pasta person", updated.Bio)
	assert.Equal(t, "chef@example.com", updated.Email)
	assert.Contains(t, []string(updated.Specialties), "Italian")

	_, err = users.UpdateProfile(ctx, "ghost", service.ProfileFields{Bio: "x"})
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
