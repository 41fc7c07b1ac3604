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

func TestVisitRecordRated(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "alice")
	owner := env.registerUser(t, "bob")
	ctx := context.Background()

	box := env.createBox(t, owner, "Rated Box")

	visit, err := env.visits.Record(ctx, user.ID, box.ID, intPtr(4), strPtr("good mix of genres"))
	require.NoError(t, err)
	assert.True(t, visit.IsCanonical())

	has, err := env.visits.HasVisited(ctx, user.ID, box.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestVisitRecordRejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "carol")
	owner := env.registerUser(t, "dave")
	ctx := context.Background()

	box := env.createBox(t, owner, "Strict Box")

	for _, rating := range []int{0, 6, -1} {
		_, err := env.visits.Record(ctx, user.ID, box.ID, intPtr(rating), nil)
		assert.True(t, validation.IsValidationError(err), "rating %d should be rejected", rating)
	}

	// Nothing was written
	visits, err := env.visits.ListForBox(ctx, box.ID)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestVisitSecondRatingRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "erin")
	owner := env.registerUser(t, "frank")
	ctx := context.Background()

	box := env.createBox(t, owner, "Once Box")

	_, err := env.visits.Record(ctx, user.ID, box.ID, intPtr(3), nil)
	require.NoError(t, err)

	_, err = env.visits.Record(ctx, user.ID, box.ID, intPtr(5), nil)
	assert.ErrorIs(t, err, ErrAlreadyVisited)

	// Comment-only follow-ups are still welcome
	_, err = env.visits.Record(ctx, user.ID, box.ID, nil, strPtr("dropped off two novels"))
	require.NoError(t, err)

	visits, err := env.visits.ListForBox(ctx, box.ID)
	require.NoError(t, err)
	assert.Len(t, visits, 2)
}

func TestVisitDeniedAtFreemiumLimit(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "grace")
	owner := env.registerUser(t, "heidi")
	env.upgradeUser(t, owner.ID)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		box := env.createBox(t, owner, fmt.Sprintf("Box %d", i))
		_, err := env.visits.Record(ctx, user.ID, box.ID, intPtr(4), nil)
		require.NoError(t, err)
	}

	overflow := env.createBox(t, owner, "Overflow Box")
	_, err := env.visits.Record(ctx, user.ID, overflow.ID, intPtr(5), nil)

	denied, ok := IsDenied(err)
	require.True(t, ok, "expected a denial, got %v", err)
	assert.Equal(t, DimensionVisits, denied.Dimension)
	assert.Equal(t, 5, denied.Current)
	assert.Equal(t, 5, denied.Limit)

	// Comment-only visits don't consume the visit quota
	_, err = env.visits.Record(ctx, user.ID, overflow.ID, nil, strPtr("full but lovely"))
	require.NoError(t, err)
}

func TestVisitPremiumUnbounded(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "ivan")
	owner := env.registerUser(t, "judy")
	env.upgradeUser(t, user.ID)
	env.upgradeUser(t, owner.ID)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		box := env.createBox(t, owner, fmt.Sprintf("Box %d", i))
		_, err := env.visits.Record(ctx, user.ID, box.ID, intPtr(5), nil)
		require.NoError(t, err)
	}

	count, err := env.usage.CanonicalVisits(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestVisitUnknownBox(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "kim")

	_, err := env.visits.Record(context.Background(), user.ID, "no-such-box", intPtr(4), nil)
	assert.ErrorIs(t, err, repository.ErrBoxNotFound)
}
