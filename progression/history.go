package progression

import (
	"time"

	"anima/models"
)

// DayBucket aggregates one local calendar day of completions.
type DayBucket struct {
	Date            string `json:"date"`
	TotalXP         int    `json:"totalXp"`
	StrXP           int    `json:"strXp"`
	IntXP           int    `json:"intXp"`
	SpiXP           int    `json:"spiXp"`
	HabitsCompleted int    `json:"habitsCompleted"`
	StrCount        int    `json:"strCount"`
	IntCount        int    `json:"intCount"`
	SpiCount        int    `json:"spiCount"`
}

func (b *DayBucket) add(entry models.CompletionEntry) {
	b.TotalXP += entry.XPAwarded
	b.HabitsCompleted++
	switch entry.StatCategory {
	case models.StatSTR:
		b.StrXP += entry.XPAwarded
		b.StrCount++
	case models.StatINT:
		b.IntXP += entry.XPAwarded
		b.IntCount++
	case models.StatSPI:
		b.SpiXP += entry.XPAwarded
		b.SpiCount++
	}
}

// History returns one bucket per local date from the later of account
// creation and today-(days-1), through today, oldest first.
func History(user models.User, days int, now time.Time, loc *time.Location) []DayBucket {
	days = max(days, 1)
	today := LocalDay(now, loc)
	start := today.AddDate(0, 0, -(days - 1))
	if !user.CreatedAt.IsZero() {
		if created := LocalDay(user.CreatedAt, loc); created.After(start) {
			start = created
		}
	}
	if start.After(today) {
		start = today
	}

	buckets := make([]DayBucket, 0, days)
	index := make(map[string]int, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayKeyLayout)
		index[key] = len(buckets)
		buckets = append(buckets, DayBucket{Date: key})
	}

	for _, habit := range user.Habits {
		for _, entry := range habit.CompletionLog {
			if i, ok := index[DayKey(entry.Date, loc)]; ok {
				buckets[i].add(entry)
			}
		}
	}
	return buckets
}
