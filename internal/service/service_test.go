package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bookboxapp/bookbox/internal/db"
	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const (
	jwtTestExpiry   = time.Hour
	resetTestExpiry = time.Hour
)

// testEnv wires the full service graph against a throwaway SQLite
// database. Storage is nil (no S3 in tests) and email runs in dev log
// mode.
type testEnv struct {
	db            *sqlx.DB
	auth          *AuthService
	users         *UserService
	subscriptions *SubscriptionService
	usage         *UsageCounter
	guard         *EntitlementGuard
	boxes         *BoxService
	favorites     *FavoriteService
	visits        *VisitService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"

	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	subscriptionRepo := repository.NewSubscriptionRepository(database)
	boxRepo := repository.NewBoxRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	visitRepo := repository.NewVisitRepository(database)

	email := NewEmailService("", "noreply@example.com", "http://localhost:8090", "BookBox", true)
	subscriptions := NewSubscriptionService(subscriptionRepo)
	usage := NewUsageCounter(boxRepo, favoriteRepo, visitRepo)
	guard := NewEntitlementGuard(NewTierPolicy(), usage, subscriptions)
	boxes := NewBoxService(boxRepo, guard, nil)
	favorites := NewFavoriteService(favoriteRepo, boxRepo, guard, boxes)
	visits := NewVisitService(visitRepo, boxRepo, guard, nil)
	auth := NewAuthService(userRepo, tokenRepo, subscriptions, email, "test-secret", false, jwtTestExpiry, resetTestExpiry)
	users := NewUserService(userRepo, boxRepo, nil, email, boxes)

	return &testEnv{
		db:            database,
		auth:          auth,
		users:         users,
		subscriptions: subscriptions,
		usage:         usage,
		guard:         guard,
		boxes:         boxes,
		favorites:     favorites,
		visits:        visits,
	}
}

// registerUser runs the real registration flow, so the user comes with
// their freemium subscription.
func (e *testEnv) registerUser(t *testing.T, username string) *model.User {
	t.Helper()

	user, err := e.auth.Register(context.Background(), username+"@example.com", "moss-green-bicycle", username, "Test", "User")
	require.NoError(t, err)
	return user
}

// upgradeUser flips the user to premium.
func (e *testEnv) upgradeUser(t *testing.T, userID string) {
	t.Helper()

	_, err := e.subscriptions.Upgrade(context.Background(), userID)
	require.NoError(t, err)
}

// createBox registers a box through the service, entitlements included.
func (e *testEnv) createBox(t *testing.T, user *model.User, name string) *model.Box {
	t.Helper()

	box, err := e.boxes.Create(context.Background(), user.ID, user.Username, BoxInput{
		Name:        name,
		Description: "a box of books",
		Latitude:    48.2082,
		Longitude:   16.3738,
	})
	require.NoError(t, err)
	return box
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
