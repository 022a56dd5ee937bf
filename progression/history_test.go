package progression

import (
	"testing"
	"time"

	"anima/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_CoversRangeWithoutGaps(t *testing.T) {
	now := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesEmber, now.AddDate(-1, 0, 0))
	user.Habits = []models.Habit{{
		StatCategory: models.StatSTR,
		CompletionLog: []models.CompletionEntry{
			{Date: now.AddDate(0, 0, -40), XPAwarded: 10, StatCategory: models.StatSTR},
			{Date: now.AddDate(0, 0, -29), XPAwarded: 20, StatCategory: models.StatSTR},
			{Date: now.AddDate(0, 0, -2), XPAwarded: 30, StatCategory: models.StatSTR},
			{Date: now, XPAwarded: 10, StatCategory: models.StatSTR},
		},
	}, {
		StatCategory: models.StatSPI,
		CompletionLog: []models.CompletionEntry{
			{Date: now.Add(-time.Hour), XPAwarded: 30, StatCategory: models.StatSPI},
		},
	}}

	days := History(user, 30, now, time.UTC)
	require.Len(t, days, 30)
	assert.Equal(t, "2026-03-02", days[0].Date)
	assert.Equal(t, "2026-03-31", days[29].Date)

	total := 0
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse("2006-01-02", days[i-1].Date)
		cur, _ := time.Parse("2006-01-02", days[i].Date)
		require.Equal(t, prev.AddDate(0, 0, 1), cur)
	}
	for _, d := range days {
		total += d.HabitsCompleted
	}
	assert.Equal(t, 4, total)

	assert.Equal(t, 20, days[0].StrXP)
	today := days[29]
	assert.Equal(t, 40, today.TotalXP)
	assert.Equal(t, 2, today.HabitsCompleted)
	assert.Equal(t, 1, today.StrCount)
	assert.Equal(t, 1, today.SpiCount)
	assert.Equal(t, 30, today.SpiXP)
}

func TestHistory_YoungAccountStartsAtCreation(t *testing.T) {
	now := time.Date(2026, 3, 31, 8, 0, 0, 0, time.UTC)
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesEmber, now.AddDate(0, 0, -4))

	days := History(user, 30, now, time.UTC)
	require.Len(t, days, 5)
	assert.Equal(t, "2026-03-27", days[0].Date)
	assert.Equal(t, DayBucket{Date: "2026-03-31"}, days[4])
}

func TestHistory_BucketsByLocalDate(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, ny)
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesEmber, now.AddDate(0, -1, 0))
	// 02:00 UTC on the 10th is still the 9th in EST
	user.Habits = []models.Habit{{CompletionLog: []models.CompletionEntry{
		{Date: time.Date(2026, 1, 10, 2, 0, 0, 0, time.UTC), XPAwarded: 10, StatCategory: models.StatINT},
	}}}

	days := History(user, 2, now, ny)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-01-09", days[0].Date)
	assert.Equal(t, 1, days[0].IntCount)
	assert.Equal(t, 0, days[1].HabitsCompleted)
}
