package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggleRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "alice")
	owner := env.registerUser(t, "bob")
	ctx := context.Background()

	box := env.createBox(t, owner, "Corner Box")

	state, err := env.favorites.Toggle(ctx, user.ID, box.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteAdded, state)

	state, err = env.favorites.Toggle(ctx, user.ID, box.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteRemoved, state)

	isFav, err := env.favorites.IsFavorite(ctx, user.ID, box.ID)
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestFavoriteUnknownBox(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "carol")

	_, err := env.favorites.Toggle(context.Background(), user.ID, "no-such-box")
	assert.ErrorIs(t, err, repository.ErrBoxNotFound)
}

func TestFavoriteDeniedAtFreemiumLimit(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "dave")
	owner := env.registerUser(t, "erin")
	env.upgradeUser(t, owner.ID)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		box := env.createBox(t, owner, fmt.Sprintf("Box %d", i))
		_, err := env.favorites.Toggle(ctx, user.ID, box.ID)
		require.NoError(t, err)
	}

	overflow := env.createBox(t, owner, "Overflow Box")
	_, err := env.favorites.Toggle(ctx, user.ID, overflow.ID)

	denied, ok := IsDenied(err)
	require.True(t, ok, "expected a denial, got %v", err)
	assert.Equal(t, DimensionFavorites, denied.Dimension)
	assert.Equal(t, 5, denied.Current)
	assert.Equal(t, 5, denied.Limit)

	// Unfavoriting works at the cap and frees a slot
	boxes, err := env.favorites.BoxesForUser(ctx, user.ID)
	require.NoError(t, err)
	_, err = env.favorites.Toggle(ctx, user.ID, boxes[0].ID)
	require.NoError(t, err)

	state, err := env.favorites.Toggle(ctx, user.ID, overflow.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteAdded, state)
}

func TestFavoriteSetRetrySafe(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "frank")
	owner := env.registerUser(t, "grace")
	ctx := context.Background()

	box := env.createBox(t, owner, "Retry Box")

	// A client retrying the same intent must land on the same state
	for i := 0; i < 3; i++ {
		state, err := env.favorites.Set(ctx, user.ID, box.ID, true)
		require.NoError(t, err)
		assert.Equal(t, model.FavoriteAdded, state)
	}

	usage, err := env.usage.Favorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, usage)
}

func TestFavoritePremiumUnbounded(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "heidi")
	owner := env.registerUser(t, "ivan")
	env.upgradeUser(t, user.ID)
	env.upgradeUser(t, owner.ID)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		box := env.createBox(t, owner, fmt.Sprintf("Box %d", i))
		_, err := env.favorites.Toggle(ctx, user.ID, box.ID)
		require.NoError(t, err)
	}

	boxes, err := env.favorites.BoxesForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, boxes, 6)
}
