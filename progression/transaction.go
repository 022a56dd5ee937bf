package progression

import (
	"fmt"
	"strings"
	"time"

	"anima/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	xpPerDifficulty    = 10
	statPerDifficulty  = 5
	coinsPerDifficulty = 5
	maxStreakBonus     = 7
	maxHabitNameLen    = 100
)

// Reward is the full economic effect of one completion.
type Reward struct {
	XP          int                 `json:"xp"`
	Stat        models.StatCategory `json:"statCategory"`
	StatGain    int                 `json:"statGain"`
	BaseCoins   int                 `json:"baseCoins"`
	StreakBonus int                 `json:"streakBonus"`
}

func (r Reward) Coins() int { return r.BaseCoins + r.StreakBonus }

// RewardFor computes the reward of a habit whose streak already counts
// the completion being rewarded.
func RewardFor(h models.Habit) Reward {
	return Reward{
		XP:          xpPerDifficulty * h.Difficulty,
		Stat:        h.StatCategory,
		StatGain:    statPerDifficulty * h.Difficulty,
		BaseCoins:   coinsPerDifficulty * h.Difficulty,
		StreakBonus: min(h.Streak, maxStreakBonus),
	}
}

// Outcome reports the pet's form before and after a transaction.
type Outcome struct {
	HabitID     primitive.ObjectID `json:"habitId"`
	Reward      Reward             `json:"reward"`
	StageBefore int                `json:"stageBefore"`
	StageAfter  int                `json:"stageAfter"`
	Path        string             `json:"evolutionPath"`
}

func (o Outcome) Evolved() bool { return o.StageAfter > o.StageBefore }

func (o Outcome) Devolved() bool { return o.StageAfter < o.StageBefore }

// HabitDraft is the client's input for a new habit.
type HabitDraft struct {
	Name         string
	StatCategory string
	Difficulty   int
}

// AddHabit validates the draft and appends a fresh habit.
func AddHabit(user models.User, draft HabitDraft, now time.Time) (models.User, models.Habit, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" || len(name) > maxHabitNameLen {
		return user, models.Habit{}, fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidHabit, maxHabitNameLen)
	}
	category, err := models.ParseStatCategory(draft.StatCategory)
	if err != nil {
		return user, models.Habit{}, fmt.Errorf("%w: %v", ErrInvalidHabit, err)
	}
	difficulty := draft.Difficulty
	if difficulty == 0 {
		difficulty = models.MinDifficulty
	}
	if difficulty < models.MinDifficulty || difficulty > models.MaxDifficulty {
		return user, models.Habit{}, fmt.Errorf("%w: difficulty must be %d-%d", ErrInvalidHabit, models.MinDifficulty, models.MaxDifficulty)
	}

	habit := models.Habit{
		ID:            primitive.NewObjectID(),
		Name:          name,
		StatCategory:  category,
		Difficulty:    difficulty,
		CompletionLog: []models.CompletionEntry{},
		CreatedAt:     now,
	}
	next := user.Clone()
	next.Habits = append(next.Habits, habit)
	return next, habit, nil
}

// Complete applies the rewards of one completion.
func Complete(user models.User, habitID primitive.ObjectID, note string, now time.Time) (models.User, Outcome, error) {
	current := user.FindHabit(habitID)
	if current == nil {
		return user, Outcome{}, ErrHabitNotFound
	}
	if current.IsCompletedToday {
		return user, Outcome{}, ErrAlreadyCompleted
	}

	next := user.Clone()
	habit := next.FindHabit(habitID)
	stageBefore := next.Pet.Stage

	habit.IsCompletedToday = true
	habit.Streak++
	reward := RewardFor(*habit)

	next.Pet.TotalXP += reward.XP
	next.Pet.Stats.Add(reward.Stat, reward.StatGain)
	ApplyEvolution(&next.Pet)
	next.Coins += reward.Coins()

	habit.CompletionLog = append(habit.CompletionLog, models.CompletionEntry{
		Date:         now,
		XPAwarded:    reward.XP,
		StatCategory: habit.StatCategory,
		Difficulty:   habit.Difficulty,
		Note:         strings.TrimSpace(note),
	})

	return next, Outcome{
		HabitID:     habitID,
		Reward:      reward,
		StageBefore: stageBefore,
		StageAfter:  next.Pet.Stage,
		Path:        next.Pet.EvolutionPath,
	}, nil
}

// Reset reverses the most recent Complete of the habit. XP, stat and coins
// are floored at zero, and the completion's log entry is retracted.
func Reset(user models.User, habitID primitive.ObjectID) (models.User, Outcome, error) {
	current := user.FindHabit(habitID)
	if current == nil {
		return user, Outcome{}, ErrHabitNotFound
	}
	if !current.IsCompletedToday {
		return user, Outcome{}, ErrNotCompletedYet
	}

	next := user.Clone()
	habit := next.FindHabit(habitID)
	stageBefore := next.Pet.Stage

	// the streak still includes the completion being reverted
	reward := RewardFor(*habit)

	next.Pet.TotalXP = max(0, next.Pet.TotalXP-reward.XP)
	next.Pet.Stats.Sub(reward.Stat, reward.StatGain)
	ApplyEvolution(&next.Pet)
	next.Coins = max(0, next.Coins-reward.Coins())

	habit.IsCompletedToday = false
	habit.Streak = max(0, habit.Streak-1)
	if n := len(habit.CompletionLog); n > 0 {
		habit.CompletionLog = habit.CompletionLog[:n-1]
	}

	return next, Outcome{
		HabitID:     habitID,
		Reward:      reward,
		StageBefore: stageBefore,
		StageAfter:  next.Pet.Stage,
		Path:        next.Pet.EvolutionPath,
	}, nil
}

// Delete removes the habit and its log. Rewards already granted stay.
func Delete(user models.User, habitID primitive.ObjectID) (models.User, error) {
	if user.FindHabit(habitID) == nil {
		return user, ErrHabitNotFound
	}
	next := user.Clone()
	kept := next.Habits[:0]
	for _, h := range next.Habits {
		if h.ID != habitID {
			kept = append(kept, h)
		}
	}
	next.Habits = kept
	return next, nil
}
