package service

import (
	"context"
	"testing"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesFreemiumSubscription(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, "alice@example.com", "moss-green-bicycle", "alice", "Alice", "A")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	sub, err := env.subscriptions.Subscription(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanFreemium, sub.Plan)
	assert.True(t, sub.IsActive())
	assert.False(t, sub.IsPremium())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.registerUser(t, "bob")

	_, err := env.auth.Register(ctx, "bob@example.com", "moss-green-bicycle", "bobby", "Bob", "B")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = env.auth.Register(ctx, "bob2@example.com", "moss-green-bicycle", "bob", "Bob", "B")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered := env.registerUser(t, "carol")

	user, err := env.auth.Login(ctx, "carol@example.com", "moss-green-bicycle")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = env.auth.Login(ctx, "carol@example.com", "totally-wrong-guess")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email gets the same error, no enumeration
	_, err = env.auth.Login(ctx, "nobody@example.com", "moss-green-bicycle")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestJWTRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "dave")

	token, err := env.auth.GenerateJWT(user)
	require.NoError(t, err)

	claims, err := env.auth.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])

	_, err = env.auth.VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	env := newTestEnv(t)

	hash, err := env.auth.HashPassword("moss-green-bicycle")
	require.NoError(t, err)
	assert.NotEqual(t, "moss-green-bicycle", hash)

	require.NoError(t, env.auth.ComparePassword("moss-green-bicycle", hash))
	assert.Error(t, env.auth.ComparePassword("other", hash))
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "gina")
	ctx := context.Background()

	require.NoError(t, env.auth.ForgotPassword(ctx, "gina@example.com"))

	// Unknown emails get the same silent success
	require.NoError(t, env.auth.ForgotPassword(ctx, "nobody@example.com"))

	var token string
	err := env.db.Get(&token, `SELECT token FROM tokens WHERE user_id = $1`, user.ID)
	require.NoError(t, err)

	reset, err := env.auth.ResetPassword(ctx, token, "cedar-harbor-lantern")
	require.NoError(t, err)
	assert.Equal(t, user.ID, reset.ID)

	_, err = env.auth.Login(ctx, "gina@example.com", "cedar-harbor-lantern")
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, "gina@example.com", "moss-green-bicycle")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The token is single-use
	_, err = env.auth.ResetPassword(ctx, token, "quiet-meadow-copper")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubscriptionUpgradeDowngrade(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "erin")
	ctx := context.Background()

	sub, err := env.subscriptions.Upgrade(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanPremium, sub.Plan)
	assert.True(t, sub.IsPremium())

	sub, err = env.subscriptions.DowngradeToFreemium(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanFreemium, sub.Plan)
}

// After a downgrade existing rows stay, but new gated writes are held
// to the freemium caps again.
func TestDowngradeKeepsDataButGatesWrites(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "frank")
	env.upgradeUser(t, user.ID)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		env.createBox(t, user, "Box")
	}

	_, err := env.subscriptions.DowngradeToFreemium(ctx, user.ID)
	require.NoError(t, err)

	boxes, err := env.boxes.ByCreator(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, boxes, 6)

	_, err = env.boxes.Create(ctx, user.ID, user.Username, BoxInput{
		Name:      "Post-downgrade Box",
		Latitude:  48,
		Longitude: 16,
	})
	_, ok := IsDenied(err)
	assert.True(t, ok, "expected a denial, got %v", err)
}
