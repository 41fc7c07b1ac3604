package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bookboxapp/bookbox/internal/db"
	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a fresh SQLite database with all migrations
// applied. Each test gets its own file under t.TempDir.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"

	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

// createTestUser inserts a user with a unique email and username.
func createTestUser(t *testing.T, database *sqlx.DB, username string) *model.User {
	t.Helper()

	hash := "not-a-real-hash"
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        username + "@example.com",
		PasswordHash: &hash,
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    time.Now(),
	}

	err := NewUserRepository(database).Create(context.Background(), user)
	require.NoError(t, err)

	return user
}

// createTestBox inserts a box owned by the given user.
func createTestBox(t *testing.T, database *sqlx.DB, creator *model.User, name string) *model.Box {
	t.Helper()

	box := &model.Box{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     "a little box of books",
		Latitude:        52.52,
		Longitude:       13.405,
		CreatorID:       creator.ID,
		CreatorUsername: creator.Username,
		CreatedAt:       time.Now(),
	}

	err := NewBoxRepository(database).Create(context.Background(), box)
	require.NoError(t, err)

	return box
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

// newVisitID returns a time-ordered id so ties on visited_at keep
// insertion order.
func newVisitID(t *testing.T) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}
