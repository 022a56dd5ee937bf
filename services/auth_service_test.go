package services

import (
	"context"
	"testing"
	"time"

	"anima/models"
	"anima/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(t *testing.T) (*AuthService, *MemoryStore, *time.Time) {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	clock := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	game := NewGameService(store, WithClock(func() time.Time { return clock }))
	return NewAuthService(store, game), store, &clock
}

func TestRegister_SeedsStarterPet(t *testing.T) {
	auth, store, _ := newAuth(t)

	sess, err := auth.Register(context.Background(), Registration{
		Email: "Mira@Example.com", Password: "secret1", Species: "aqua",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	u := sess.User
	assert.Equal(t, "mira@example.com", u.Email)
	assert.Equal(t, "mira", u.Username)
	assert.Equal(t, models.SpeciesAqua, u.Pet.Species)
	assert.Equal(t, models.Stats{Str: 10, Int: 10, Spi: 10}, u.Pet.Stats)
	assert.Equal(t, 100, u.Pet.HP)
	assert.Equal(t, []string{models.DefaultBackground}, u.Inventory.Backgrounds)
	assert.NotEqual(t, "secret1", u.Password)

	claims, err := utils.ParseJWTToken(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.UserID)

	_, err = store.FindByEmail(context.Background(), "mira@example.com")
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	auth, _, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, Registration{Email: "a@b.c", Password: "12345"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = auth.Register(ctx, Registration{Email: "nope", Password: "123456"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)
	_, err = auth.Register(ctx, Registration{Email: "a@b.c", Password: "123456", Species: "DRAGON"})
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	_, err = auth.Register(ctx, Registration{Email: "a@b.c", Password: "123456"})
	require.NoError(t, err)
	_, err = auth.Register(ctx, Registration{Email: "A@B.C", Password: "123456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	auth, _, clock := newAuth(t)
	ctx := context.Background()
	_, err := auth.Register(ctx, Registration{Username: "kai", Email: "kai@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "kai@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "ghost@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	*clock = clock.Add(48 * time.Hour)
	sess, err := auth.Login(ctx, " KAI@example.com ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "kai", sess.User.Username)
	assert.Equal(t, 90, sess.User.Pet.HP, "decay owed for the absence is settled at login")
	require.NotNil(t, sess.User.LastLogin)
	assert.Equal(t, *clock, *sess.User.LastLogin)
}
