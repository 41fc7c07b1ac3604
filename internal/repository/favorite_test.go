package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggle(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice")
	owner := createTestUser(t, database, "bob")
	box := createTestBox(t, database, owner, "Corner Box")
	repo := NewFavoriteRepository(database)
	ctx := context.Background()

	state, err := repo.Toggle(ctx, user.ID, box.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteAdded, state)

	exists, err := repo.Exists(ctx, user.ID, box.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	state, err = repo.Toggle(ctx, user.ID, box.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteRemoved, state)

	exists, err = repo.Exists(ctx, user.ID, box.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFavoriteToggleLimit(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "carol")
	owner := createTestUser(t, database, "dave")
	repo := NewFavoriteRepository(database)
	ctx := context.Background()

	limit := 3
	for i := 0; i < limit; i++ {
		box := createTestBox(t, database, owner, fmt.Sprintf("Box %d", i))
		state, err := repo.Toggle(ctx, user.ID, box.ID, limit)
		require.NoError(t, err)
		assert.Equal(t, model.FavoriteAdded, state)
	}

	overflow := createTestBox(t, database, owner, "Overflow Box")
	_, err := repo.Toggle(ctx, user.ID, overflow.ID, limit)
	assert.ErrorIs(t, err, ErrLimitReached)

	count, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, limit, count)

	// Removing works even at the cap
	boxes, err := repo.BoxesByUser(ctx, user.ID)
	require.NoError(t, err)
	state, err := repo.Toggle(ctx, user.ID, boxes[0].ID, limit)
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteRemoved, state)
}

func TestFavoriteSetIdempotent(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "erin")
	owner := createTestUser(t, database, "frank")
	box := createTestBox(t, database, owner, "Set Box")
	repo := NewFavoriteRepository(database)
	ctx := context.Background()

	// Repeating the same desired state must not flip it
	for i := 0; i < 2; i++ {
		state, err := repo.Set(ctx, user.ID, box.ID, true, -1)
		require.NoError(t, err)
		assert.Equal(t, model.FavoriteAdded, state)
	}

	count, err := repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for i := 0; i < 2; i++ {
		state, err := repo.Set(ctx, user.ID, box.ID, false, -1)
		require.NoError(t, err)
		assert.Equal(t, model.FavoriteRemoved, state)
	}

	count, err = repo.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFavoriteBoxesByUserOrder(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "grace")
	owner := createTestUser(t, database, "heidi")
	repo := NewFavoriteRepository(database)
	ctx := context.Background()

	first := createTestBox(t, database, owner, "First Favorite")
	second := createTestBox(t, database, owner, "Second Favorite")

	_, err := repo.Toggle(ctx, user.ID, first.ID, -1)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, user.ID, second.ID, -1)
	require.NoError(t, err)

	boxes, err := repo.BoxesByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	// Most recently favorited first
	assert.Equal(t, second.ID, boxes[0].ID)
	assert.Equal(t, first.ID, boxes[1].ID)
}
