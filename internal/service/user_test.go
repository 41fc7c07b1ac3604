package service

import (
	"context"
	"testing"

	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "hannah")

	updated, err := env.users.UpdateProfile(ctx, user.ID, "Hannah", "Reed", "hannah_reed")
	require.NoError(t, err)
	assert.Equal(t, "Hannah", updated.FirstName)
	assert.Equal(t, "Reed", updated.LastName)
	assert.Equal(t, "hannah_reed", updated.Username)

	found, err := env.users.ByUsername(ctx, "hannah_reed")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUpdateProfileRejectsBadUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "ivan")

	_, err := env.users.UpdateProfile(ctx, user.ID, "Ivan", "Moss", "Not Valid!")
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))

	// nothing written
	unchanged, err := env.users.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan", unchanged.Username)
}

func TestRemoveAvatarWithoutOne(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "julia")

	updated, err := env.users.RemoveAvatar(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.AvatarPath)
	assert.Empty(t, updated.AvatarURL)
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.registerUser(t, "karl")
	other := env.registerUser(t, "luisa")
	mine := env.createBox(t, user, "Karl's Corner")
	theirs := env.createBox(t, other, "Luisa's Shelf")

	_, err := env.favorites.Toggle(ctx, user.ID, theirs.ID)
	require.NoError(t, err)
	_, err = env.visits.Record(ctx, user.ID, theirs.ID, intPtr(5), strPtr("lovely"))
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(ctx, user.ID))

	_, err = env.users.ByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = env.boxes.ByID(ctx, mine.ID)
	assert.ErrorIs(t, err, repository.ErrBoxNotFound)

	// the other user's box keeps its own data
	visits, err := env.visits.ListForBox(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}
