package progression

import (
	"math/rand/v2"
	"testing"

	"anima/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_FavoursWeakestStats(t *testing.T) {
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesEmber, testNow)
	user.Pet.Stats = models.Stats{Str: 40, Int: 12, Spi: 25}

	recs := Recommend(user, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, models.StatINT, recs.WeakestStat)
	assert.Equal(t, user.Pet.Stats, recs.CurrentStats)
	require.Len(t, recs.Recommendations, 3)

	assert.Equal(t, "Read for 20 minutes", recs.Recommendations[0].Name)
	assert.Equal(t, "Practice a new language", recs.Recommendations[1].Name)
	for _, r := range recs.Recommendations[:2] {
		assert.Equal(t, models.StatINT, r.StatCategory)
		assert.Equal(t, "high", r.Priority)
	}
	assert.Equal(t, models.StatSPI, recs.Recommendations[2].StatCategory)
	assert.Equal(t, "medium", recs.Recommendations[2].Priority)
}

func TestRecommend_SkipsCategoriesAlreadyTrained(t *testing.T) {
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesEmber, testNow)
	user.Pet.Stats = models.Stats{Str: 5, Int: 30, Spi: 8}
	user.Habits = []models.Habit{{Name: "Run", StatCategory: models.StatSTR, Difficulty: 1}}

	recs := Recommend(user, rand.New(rand.NewPCG(3, 4)))
	assert.Equal(t, models.StatSTR, recs.WeakestStat)
	require.Len(t, recs.Recommendations, 1)
	assert.Equal(t, models.StatSPI, recs.Recommendations[0].StatCategory)

	user.Habits = append(user.Habits, models.Habit{Name: "Meditate", StatCategory: models.StatSPI})
	recs = Recommend(user, rand.New(rand.NewPCG(3, 4)))
	assert.Empty(t, recs.Recommendations)
	assert.NotNil(t, recs.Recommendations)
}

func TestRecommend_TiesRankInEnumerationOrder(t *testing.T) {
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesEmber, testNow)
	recs := Recommend(user, rand.New(rand.NewPCG(5, 6)))
	assert.Equal(t, models.StatSTR, recs.WeakestStat)
	require.Len(t, recs.Recommendations, 3)
	assert.Equal(t, models.StatINT, recs.Recommendations[2].StatCategory)
}
