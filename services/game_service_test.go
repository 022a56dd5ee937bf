package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"anima/models"
	"anima/progression"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingPublisher struct {
	events []models.ProgressionEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event models.ProgressionEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store *MemoryStore
	pub   *recordingPublisher
	svc   *GameService
	clock time.Time
	user  models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: NewMemoryStore(),
		pub:   &recordingPublisher{},
		clock: time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewGameService(f.store,
		WithPublisher(f.pub),
		WithClock(func() time.Time { return f.clock }),
		WithRand(rand.New(rand.NewPCG(7, 7))),
	)
	f.user = progression.NewUser("kai", "kai@example.com", "hash", models.SpeciesEmber, f.clock)
	require.NoError(t, f.store.Insert(context.Background(), f.user))
	return f
}

func (f *fixture) addHabit(t *testing.T, stat string, difficulty int) models.Habit {
	t.Helper()
	habits, err := f.svc.CreateHabit(context.Background(), f.user.ID, progression.HabitDraft{
		Name: "Lift", StatCategory: stat, Difficulty: difficulty,
	})
	require.NoError(t, err)
	return habits[len(habits)-1]
}

func TestGameService_CompleteAndResetPersist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "STR", 2)

	view, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "felt good")
	require.NoError(t, err)
	assert.Equal(t, 11, view.Coins)
	assert.Equal(t, 20, view.Pet.TotalXP)
	assert.Equal(t, 20, view.Pet.Stats.Str)

	stored, err := f.store.FindByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, stored.Coins)
	assert.True(t, stored.Habits[0].IsCompletedToday)
	assert.Equal(t, f.clock, stored.UpdatedAt)

	view, err = f.svc.ResetHabit(ctx, f.user.ID, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Coins)
	assert.Equal(t, 0, view.Pet.TotalXP)
	assert.Equal(t, []string{models.EventHabitCompleted, models.EventHabitReset}, f.pub.types())
	assert.Equal(t, -11, f.pub.events[1].Coins)
}

func TestGameService_RefusedTransactionWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "INT", 1)
	before, _ := f.store.FindByID(ctx, f.user.ID)

	_, err := f.svc.ResetHabit(ctx, f.user.ID, habit.ID)
	assert.ErrorIs(t, err, progression.ErrNotCompletedYet)

	_, err = f.svc.CompleteHabit(ctx, f.user.ID, primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, progression.ErrHabitNotFound)

	_, err = f.svc.Purchase(ctx, f.user.ID, progression.ItemHealthPotion, 1)
	assert.ErrorIs(t, err, progression.ErrInsufficientFunds)

	after, _ := f.store.FindByID(ctx, f.user.ID)
	assert.Equal(t, before, after)
	assert.Empty(t, f.pub.events)
}

func TestGameService_PersistenceFailureIsGeneric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "SPI", 1)
	f.store.FailWrites = true

	_, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "")
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, f.pub.events)

	f.store.FailWrites = false
	stored, _ := f.store.FindByID(ctx, f.user.ID)
	assert.False(t, stored.Habits[0].IsCompletedToday)
	assert.Equal(t, 0, stored.Coins)
}

func TestGameService_UnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetPet(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGameService_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errors.New("stream down")
	habit := f.addHabit(t, "STR", 1)

	_, err := f.svc.CompleteHabit(context.Background(), f.user.ID, habit.ID, "")
	assert.NoError(t, err)
}

func TestGameService_EvolutionEmitsEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	xp := 95
	_, err := f.svc.UpdatePet(ctx, f.user.ID, progression.PetPatch{TotalXP: &xp})
	require.NoError(t, err)
	assert.Empty(t, f.pub.events)

	habit := f.addHabit(t, "INT", 1)
	view, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Pet.Stage)
	assert.Equal(t, "EMBER_INT", view.Pet.EvolutionPath)

	require.Len(t, f.pub.events, 2)
	evolved := f.pub.events[1]
	assert.Equal(t, models.EventPetEvolved, evolved.Type)
	assert.Equal(t, 2, evolved.Stage)
	assert.Equal(t, f.user.ID.Hex(), evolved.UserID)
}

func TestGameService_RunDailyReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "STR", 1)
	_, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "")
	require.NoError(t, err)
	f.pub.events = nil

	res, err := f.svc.RunDailyReset(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Empty(t, f.pub.events)

	f.clock = f.clock.Add(20 * time.Hour)
	res, err = f.svc.RunDailyReset(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 1, res.CompletionsCleared)
	assert.Equal(t, []string{models.EventDailyReset}, f.pub.types())

	habits, _ := f.svc.ListHabits(ctx, f.user.ID)
	assert.False(t, habits[0].IsCompletedToday)
	assert.Equal(t, 1, habits[0].Streak)
}

func TestGameService_ApplyDecay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "STR", 1)
	_, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "")
	require.NoError(t, err)
	f.pub.events = nil

	f.clock = f.clock.Add(72 * time.Hour)
	view, err := f.svc.ApplyDecay(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, view.Pet.HP)
	assert.Equal(t, 1, view.Habits[0].Streak, "completed on the last active day")
	assert.Equal(t, []string{models.EventDailyReset, models.EventDecayApplied}, f.pub.types())

	// a second call right away finds nothing owed
	view, err = f.svc.ApplyDecay(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, view.Pet.HP)
}

func TestGameService_ShopFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, _ := f.store.FindByID(ctx, f.user.ID)
	u.Coins = 500
	u.Pet.HP = 50
	require.NoError(t, f.store.Save(ctx, u))

	bought, err := f.svc.Purchase(ctx, f.user.ID, progression.ItemHealthPotion, 2)
	require.NoError(t, err)
	assert.Equal(t, 400, bought.Coins)
	assert.Equal(t, 2, bought.Inventory.HealthPotions)

	used, err := f.svc.UseItem(ctx, f.user.ID, progression.ItemHealthPotion)
	require.NoError(t, err)
	assert.Equal(t, 75, used.Pet.HP)
	assert.Equal(t, 1, used.Inventory.HealthPotions)

	_, err = f.svc.Purchase(ctx, f.user.ID, "forest", 1)
	require.NoError(t, err)
	active, err := f.svc.SetBackground(ctx, f.user.ID, "forest")
	require.NoError(t, err)
	assert.Equal(t, "forest", active)

	shop, err := f.svc.Shop(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, shop.Coins)
	for _, item := range shop.Items {
		if item.ID == "forest" {
			assert.True(t, item.Owned)
		}
	}

	inv, err := f.svc.Inventory(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "forest", inv.Inventory.ActiveBackground)
	assert.Nil(t, inv.FreezeProtectionUntil)

	assert.Equal(t, []string{models.EventItemPurchased, models.EventItemUsed, models.EventItemPurchased}, f.pub.types())
}

func TestGameService_HistoryAndRecommendations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "SPI", 3)
	_, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "")
	require.NoError(t, err)

	days, err := f.svc.History(ctx, f.user.ID, 30)
	require.NoError(t, err)
	require.Len(t, days, 1, "account created today")
	assert.Equal(t, 30, days[0].SpiXP)

	recs, err := f.svc.Recommendations(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.StatSPI, recs.WeakestStat)
	for _, r := range recs.Recommendations {
		assert.NotEqual(t, models.StatSPI, r.StatCategory)
	}
}

func TestGameService_DeleteKeepsRewards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	habit := f.addHabit(t, "STR", 1)
	_, err := f.svc.CompleteHabit(ctx, f.user.ID, habit.ID, "")
	require.NoError(t, err)

	habits, err := f.svc.DeleteHabit(ctx, f.user.ID, habit.ID)
	require.NoError(t, err)
	assert.NotNil(t, habits)
	assert.Empty(t, habits)

	pet, _ := f.svc.GetPet(ctx, f.user.ID)
	assert.Equal(t, 10, pet.TotalXP)
}
