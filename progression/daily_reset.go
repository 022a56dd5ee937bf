package progression

import (
	"math"
	"time"

	"anima/models"
)

const (
	dayKeyLayout = "2006-01-02"
	decayAfter   = 24 * time.Hour
	decayFactor  = 0.9
)

// LocalDay truncates t to midnight of its calendar date in loc.
func LocalDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayKey formats the local calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

// DayBoundaryCrossed reports whether now falls on a later local date than last.
// A nil last counts as the Unix epoch.
func DayBoundaryCrossed(last *time.Time, now time.Time, loc *time.Location) bool {
	from := time.Unix(0, 0)
	if last != nil {
		from = *last
	}
	return LocalDay(now, loc).After(LocalDay(from, loc))
}

type DailyResetResult struct {
	Applied            bool `json:"applied"`
	FreezeUsed         bool `json:"freezeUsed"`
	CompletionsCleared int  `json:"completionsCleared"`
	StreaksBroken      int  `json:"streaksBroken"`
}

// DailyReset rolls habits over to a new day once per crossed boundary,
// however many days were skipped. Same-day calls return the input as is.
func DailyReset(user models.User, now time.Time, loc *time.Location) (models.User, DailyResetResult) {
	if !DayBoundaryCrossed(user.LastLogin, now, loc) {
		return user, DailyResetResult{}
	}

	next := user.Clone()
	res := DailyResetResult{Applied: true}
	res.FreezeUsed = next.FreezeProtectionUntil != nil && next.FreezeProtectionUntil.After(now)

	for i := range next.Habits {
		h := &next.Habits[i]
		switch {
		case h.IsCompletedToday:
			h.IsCompletedToday = false
			res.CompletionsCleared++
		case res.FreezeUsed:
			// missed day is forgiven
		case h.Streak > 0:
			h.Streak = 0
			res.StreaksBroken++
		}
	}
	if res.FreezeUsed {
		next.FreezeProtectionUntil = nil
	}
	next.LastLogin = &now
	return next, res
}

type DecayResult struct {
	Decayed   bool    `json:"decayed"`
	HoursAway float64 `json:"hoursAway"`
	HPBefore  int     `json:"hpBefore"`
	HPAfter   int     `json:"hpAfter"`
	HPLost    int     `json:"hpLost"`
}

// ApplyDecay costs the pet 10% HP after more than 24h away and clears
// today's completions. Streaks are left alone. lastLogin always moves to now.
func ApplyDecay(user models.User, now time.Time) (models.User, DecayResult) {
	return applyDecay(user, user.LastLogin, now)
}

func applyDecay(user models.User, lastSeen *time.Time, now time.Time) (models.User, DecayResult) {
	next := user.Clone()
	res := DecayResult{HPBefore: next.Pet.HP, HPAfter: next.Pet.HP}
	if lastSeen != nil {
		away := now.Sub(*lastSeen)
		res.HoursAway = away.Hours()
		if away > decayAfter {
			res.Decayed = true
			next.Pet.HP = max(0, int(math.Round(float64(next.Pet.HP)*decayFactor)))
			res.HPAfter = next.Pet.HP
			res.HPLost = res.HPBefore - res.HPAfter
			for i := range next.Habits {
				next.Habits[i].IsCompletedToday = false
			}
		}
	}
	next.LastLogin = &now
	return next, res
}

// Tick evaluates both time-based paths against the same lastLogin: the
// daily streak rollover first, then HP decay.
func Tick(user models.User, now time.Time, loc *time.Location) (models.User, DailyResetResult, DecayResult) {
	rolled, reset := DailyReset(user, now, loc)
	decayed, decay := applyDecay(rolled, user.LastLogin, now)
	return decayed, reset, decay
}
