package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/bookboxapp/bookbox/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxCreateDeniedAtFreemiumLimit(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "alice")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		env.createBox(t, user, fmt.Sprintf("Box %d", i))
	}

	_, err := env.boxes.Create(ctx, user.ID, user.Username, BoxInput{
		Name:      "One Too Many",
		Latitude:  48.2,
		Longitude: 16.4,
	})

	denied, ok := IsDenied(err)
	require.True(t, ok, "expected a denial, got %v", err)
	assert.Equal(t, DimensionBoxes, denied.Dimension)
	assert.Equal(t, 5, denied.Current)
	assert.Equal(t, 5, denied.Limit)
}

func TestBoxCreatePremiumPastFreemiumCap(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "bob")
	env.upgradeUser(t, user.ID)

	for i := 0; i < 7; i++ {
		env.createBox(t, user, fmt.Sprintf("Box %d", i))
	}

	boxes, err := env.boxes.ByCreator(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, boxes, 7)
}

func TestBoxCreateRejectsBadCoordinates(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "carol")
	ctx := context.Background()

	_, err := env.boxes.Create(ctx, user.ID, user.Username, BoxInput{
		Name:      "Off the Map",
		Latitude:  91,
		Longitude: 0,
	})
	assert.True(t, validation.IsValidationError(err))

	_, err = env.boxes.Create(ctx, user.ID, user.Username, BoxInput{
		Name:      "Off the Map",
		Latitude:  0,
		Longitude: -181,
	})
	assert.True(t, validation.IsValidationError(err))

	// A rejected submission must not consume quota
	count, err := env.usage.OwnedBoxes(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBoxDeleteOnlyByOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "dave")
	stranger := env.registerUser(t, "erin")
	ctx := context.Background()

	box := env.createBox(t, owner, "Dave's Box")

	err := env.boxes.Delete(ctx, stranger.ID, box.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Still there
	_, err = env.boxes.ByID(ctx, box.ID)
	require.NoError(t, err)

	require.NoError(t, env.boxes.Delete(ctx, owner.ID, box.ID))

	_, err = env.boxes.ByID(ctx, box.ID)
	assert.ErrorIs(t, err, repository.ErrBoxNotFound)
}

// Deleting a box frees quota: the owner can register a new one after.
func TestBoxDeleteFreesQuota(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "frank")
	ctx := context.Background()

	var last string
	for i := 0; i < 5; i++ {
		last = env.createBox(t, user, fmt.Sprintf("Box %d", i)).ID
	}

	require.NoError(t, env.boxes.Delete(ctx, user.ID, last))

	env.createBox(t, user, "Replacement Box")

	count, err := env.usage.OwnedBoxes(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestBoxSearch(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "grace")
	ctx := context.Background()

	env.createBox(t, user, "Harbor Book Stop")
	env.createBox(t, user, "Hilltop Shelf")

	results, err := env.boxes.Search(ctx, "harbor")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Harbor Book Stop", results[0].Name)
}
