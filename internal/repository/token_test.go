package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestToken(t *testing.T, repo TokenRepository, userID string) *model.Token {
	t.Helper()

	token := &model.Token{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      model.TokenTypePasswordReset,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), token))
	return token
}

func TestTokenConsumeOnce(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "alice")
	repo := NewTokenRepository(database)
	ctx := context.Background()

	token := createTestToken(t, repo, user.ID)

	consumed, err := repo.Consume(ctx, token.Token)
	require.NoError(t, err)
	assert.NotNil(t, consumed.UsedAt)

	// Second consume of the same token must fail
	_, err = repo.Consume(ctx, token.Token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenConsumeUnknown(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTokenRepository(database)

	_, err := repo.Consume(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenDeleteByUserAndType(t *testing.T) {
	database := setupTestDB(t)
	user := createTestUser(t, database, "bob")
	repo := NewTokenRepository(database)
	ctx := context.Background()

	token := createTestToken(t, repo, user.ID)

	require.NoError(t, repo.DeleteByUserAndType(ctx, user.ID, model.TokenTypePasswordReset))

	_, err := repo.Consume(ctx, token.Token)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
