package services

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"anima/internal/broker"
	"anima/internal/logger"
	"anima/internal/metrics"
	"anima/models"
	"anima/progression"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// EventPublisher receives progression events after the change is persisted.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ProgressionEvent) error
}

// GameService runs progression transactions against stored users: load the
// aggregate, apply a pure transaction, save the whole document once, then
// emit events.
type GameService struct {
	store  UserStore
	events EventPublisher
	loc    *time.Location
	now    func() time.Time
	rng    *rand.Rand
	log    *zap.Logger
}

type Option func(*GameService)

func WithPublisher(p EventPublisher) Option {
	return func(s *GameService) { s.events = p }
}

// WithLocation sets the zone whose calendar dates drive daily resets and history.
func WithLocation(loc *time.Location) Option {
	return func(s *GameService) { s.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

func WithRand(rng *rand.Rand) Option {
	return func(s *GameService) { s.rng = rng }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *GameService) { s.log = l }
}

func NewGameService(store UserStore, opts ...Option) *GameService {
	s := &GameService{
		store: store,
		loc:   time.UTC,
		now:   time.Now,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   logger.Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var gameService *GameService

func InitGameService(store UserStore, opts ...Option) *GameService {
	gameService = NewGameService(store, opts...)
	return gameService
}

func GetGameService() *GameService {
	return gameService
}

type ProgressView struct {
	Habits []models.Habit `json:"habits"`
	Pet    models.Pet     `json:"pet"`
	Coins  int            `json:"coins"`
}

type DecayView struct {
	Pet    models.Pet     `json:"pet"`
	Habits []models.Habit `json:"habits"`
}

type ShopView struct {
	Items     []models.ListedItem `json:"items"`
	Coins     int                 `json:"coins"`
	Inventory models.Inventory    `json:"inventory"`
}

type PurchaseView struct {
	Coins     int              `json:"coins"`
	Inventory models.Inventory `json:"inventory"`
}

type UseView struct {
	Pet                   models.Pet       `json:"pet"`
	Inventory             models.Inventory `json:"inventory"`
	FreezeProtectionUntil *time.Time       `json:"freezeProtectionUntil"`
}

type InventoryView struct {
	Inventory             models.Inventory `json:"inventory"`
	Coins                 int              `json:"coins"`
	FreezeProtectionUntil *time.Time       `json:"freezeProtectionUntil"`
}

func (s *GameService) Location() *time.Location { return s.loc }

func (s *GameService) GetUser(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	return s.store.FindByID(ctx, userID)
}

// mutate loads the user, applies fn to the snapshot and saves the result in
// one write. When fn fails nothing is written.
func (s *GameService) mutate(ctx context.Context, userID primitive.ObjectID, fn func(models.User) (models.User, error)) (models.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	next, err := fn(user)
	if err != nil {
		return user, err
	}

	next.UpdatedAt = s.now()
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error("failed to save user", zap.String("userID", userID.Hex()), zap.Error(err))
		if errors.Is(err, ErrUserNotFound) {
			return user, err
		}
		return user, ErrPersistence
	}
	return next, nil
}

func (s *GameService) publish(ctx context.Context, event models.ProgressionEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish progression event",
			zap.String("type", event.Type), zap.String("userID", event.UserID), zap.Error(err))
	}
}

func (s *GameService) event(eventType string, user models.User) models.ProgressionEvent {
	ev := broker.NewEvent(eventType, user.ID.Hex(), s.now())
	ev.NewCoins = user.Coins
	return ev
}

func (s *GameService) ListHabits(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return habitsOf(user), nil
}

func (s *GameService) CreateHabit(ctx context.Context, userID primitive.ObjectID, draft progression.HabitDraft) ([]models.Habit, error) {
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		next, _, err := progression.AddHabit(u, draft, s.now())
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return habitsOf(user), nil
}

func (s *GameService) CompleteHabit(ctx context.Context, userID, habitID primitive.ObjectID, note string) (ProgressView, error) {
	var out progression.Outcome
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		next, o, err := progression.Complete(u, habitID, note, s.now())
		out = o
		return next, err
	})
	if err != nil {
		return ProgressView{}, err
	}

	habit := user.FindHabit(habitID)
	metrics.IncrementHabitCompletion(string(habit.StatCategory))
	s.log.Info("habit completed",
		zap.String("userID", userID.Hex()),
		zap.String("habitID", habitID.Hex()),
		zap.Int("xp", out.Reward.XP),
		zap.Int("coins", out.Reward.Coins()),
		zap.Int("streak", habit.Streak))

	ev := s.event(models.EventHabitCompleted, user)
	ev.HabitID = habitID.Hex()
	ev.XP = out.Reward.XP
	ev.Coins = out.Reward.Coins()
	ev.Metadata = map[string]interface{}{"streak": habit.Streak, "stat": habit.StatCategory}
	s.publish(ctx, ev)
	s.publishStageChange(ctx, user, out)

	return progressOf(user), nil
}

func (s *GameService) ResetHabit(ctx context.Context, userID, habitID primitive.ObjectID) (ProgressView, error) {
	var out progression.Outcome
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		next, o, err := progression.Reset(u, habitID)
		out = o
		return next, err
	})
	if err != nil {
		return ProgressView{}, err
	}

	habit := user.FindHabit(habitID)
	metrics.IncrementHabitReset(string(habit.StatCategory))

	ev := s.event(models.EventHabitReset, user)
	ev.HabitID = habitID.Hex()
	ev.XP = -out.Reward.XP
	ev.Coins = -out.Reward.Coins()
	s.publish(ctx, ev)
	s.publishStageChange(ctx, user, out)

	return progressOf(user), nil
}

func (s *GameService) publishStageChange(ctx context.Context, user models.User, out progression.Outcome) {
	if !out.Evolved() && !out.Devolved() {
		return
	}
	metrics.IncrementEvolution(strconv.Itoa(out.StageAfter))
	s.log.Info("pet stage changed",
		zap.Bool("evolved", out.Evolved()),
		zap.String("userID", user.ID.Hex()),
		zap.Int("from", out.StageBefore),
		zap.Int("to", out.StageAfter),
		zap.String("path", out.Path))

	ev := s.event(models.EventPetEvolved, user)
	ev.Stage = out.StageAfter
	ev.Path = out.Path
	ev.Metadata = map[string]interface{}{"previousStage": out.StageBefore}
	s.publish(ctx, ev)
}

func (s *GameService) DeleteHabit(ctx context.Context, userID, habitID primitive.ObjectID) ([]models.Habit, error) {
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		return progression.Delete(u, habitID)
	})
	if err != nil {
		return nil, err
	}
	return habitsOf(user), nil
}

func (s *GameService) History(ctx context.Context, userID primitive.ObjectID, days int) ([]progression.DayBucket, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progression.History(user, days, s.now(), s.loc), nil
}

func (s *GameService) Recommendations(ctx context.Context, userID primitive.ObjectID) (progression.Recommendations, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return progression.Recommendations{}, err
	}
	return progression.Recommend(user, s.rng), nil
}

func (s *GameService) GetPet(ctx context.Context, userID primitive.ObjectID) (models.Pet, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return models.Pet{}, err
	}
	return user.Pet, nil
}

func (s *GameService) UpdatePet(ctx context.Context, userID primitive.ObjectID, patch progression.PetPatch) (models.Pet, error) {
	var before int
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		before = u.Pet.Stage
		return progression.UpdatePet(u, patch)
	})
	if err != nil {
		return models.Pet{}, err
	}
	s.publishStageChange(ctx, user, progression.Outcome{
		StageBefore: before,
		StageAfter:  user.Pet.Stage,
		Path:        user.Pet.EvolutionPath,
	})
	return user.Pet, nil
}

// RunDailyReset applies the day rollover if a local day boundary has passed
// since the last visit. Nothing is written when it is a no-op.
func (s *GameService) RunDailyReset(ctx context.Context, userID primitive.ObjectID) (progression.DailyResetResult, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return progression.DailyResetResult{}, err
	}

	next, res := progression.DailyReset(user, s.now(), s.loc)
	if !res.Applied {
		return res, nil
	}

	next.UpdatedAt = s.now()
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error("failed to save daily reset", zap.String("userID", userID.Hex()), zap.Error(err))
		return progression.DailyResetResult{}, ErrPersistence
	}
	s.recordReset(ctx, next, res)
	return res, nil
}

// ApplyDecay runs the day rollover and then the inactivity penalty, both
// judged against the visit before this one.
func (s *GameService) ApplyDecay(ctx context.Context, userID primitive.ObjectID) (DecayView, error) {
	var (
		reset progression.DailyResetResult
		decay progression.DecayResult
	)
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		next, r, d := progression.Tick(u, s.now(), s.loc)
		reset, decay = r, d
		return next, nil
	})
	if err != nil {
		return DecayView{}, err
	}

	if reset.Applied {
		s.recordReset(ctx, user, reset)
	}
	if decay.Decayed {
		metrics.IncrementDecay()
		s.log.Info("decay applied",
			zap.String("userID", userID.Hex()),
			zap.Float64("hoursAway", decay.HoursAway),
			zap.Int("hpLost", decay.HPLost))

		ev := s.event(models.EventDecayApplied, user)
		ev.Metadata = map[string]interface{}{
			"hpBefore":  decay.HPBefore,
			"hpAfter":   decay.HPAfter,
			"hoursAway": decay.HoursAway,
		}
		s.publish(ctx, ev)
	}
	return DecayView{Pet: user.Pet, Habits: habitsOf(user)}, nil
}

func (s *GameService) recordReset(ctx context.Context, user models.User, res progression.DailyResetResult) {
	metrics.RecordDailyReset(res.FreezeUsed, res.StreaksBroken)
	s.log.Info("daily reset applied",
		zap.String("userID", user.ID.Hex()),
		zap.Bool("freezeUsed", res.FreezeUsed),
		zap.Int("streaksBroken", res.StreaksBroken))

	ev := s.event(models.EventDailyReset, user)
	ev.Metadata = map[string]interface{}{
		"freezeUsed":         res.FreezeUsed,
		"streaksBroken":      res.StreaksBroken,
		"completionsCleared": res.CompletionsCleared,
	}
	s.publish(ctx, ev)
}

func (s *GameService) Shop(ctx context.Context, userID primitive.ObjectID) (ShopView, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return ShopView{}, err
	}
	return ShopView{Items: progression.Listing(user), Coins: user.Coins, Inventory: user.Inventory}, nil
}

func (s *GameService) Purchase(ctx context.Context, userID primitive.ObjectID, itemID string, quantity int) (PurchaseView, error) {
	var res progression.PurchaseResult
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		next, r, err := progression.Purchase(u, itemID, quantity)
		res = r
		return next, err
	})
	if err != nil {
		return PurchaseView{}, err
	}

	metrics.RecordPurchase(res.Item.ID, res.Quantity, res.Cost)
	ev := s.event(models.EventItemPurchased, user)
	ev.ItemID = res.Item.ID
	ev.Coins = -res.Cost
	ev.Metadata = map[string]interface{}{"quantity": res.Quantity}
	s.publish(ctx, ev)

	return PurchaseView{Coins: user.Coins, Inventory: user.Inventory}, nil
}

func (s *GameService) UseItem(ctx context.Context, userID primitive.ObjectID, itemID string) (UseView, error) {
	var res progression.UseResult
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		next, r, err := progression.UseItem(u, itemID, s.now())
		res = r
		return next, err
	})
	if err != nil {
		return UseView{}, err
	}

	metrics.IncrementItemUsed(res.Item.ID)
	ev := s.event(models.EventItemUsed, user)
	ev.ItemID = res.Item.ID
	ev.Metadata = map[string]interface{}{"hpBefore": res.HPBefore, "hpAfter": res.HPAfter}
	s.publish(ctx, ev)

	return UseView{Pet: user.Pet, Inventory: user.Inventory, FreezeProtectionUntil: user.FreezeProtectionUntil}, nil
}

func (s *GameService) SetBackground(ctx context.Context, userID primitive.ObjectID, backgroundID string) (string, error) {
	user, err := s.mutate(ctx, userID, func(u models.User) (models.User, error) {
		return progression.SetBackground(u, backgroundID)
	})
	if err != nil {
		return "", err
	}
	return user.Inventory.ActiveBackground, nil
}

func (s *GameService) Inventory(ctx context.Context, userID primitive.ObjectID) (InventoryView, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return InventoryView{}, err
	}
	return InventoryView{Inventory: user.Inventory, Coins: user.Coins, FreezeProtectionUntil: user.FreezeProtectionUntil}, nil
}

func progressOf(user models.User) ProgressView {
	return ProgressView{Habits: habitsOf(user), Pet: user.Pet, Coins: user.Coins}
}

// habitsOf never returns nil so the JSON body is [] for a user with no habits.
func habitsOf(user models.User) []models.Habit {
	if user.Habits == nil {
		return []models.Habit{}
	}
	return user.Habits
}
