package progression

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"anima/models"
)

type Suggestion struct {
	Name         string              `json:"name"`
	StatCategory models.StatCategory `json:"statCategory"`
	Difficulty   int                 `json:"difficulty"`
	Message      string              `json:"message"`
	Reason       string              `json:"reason"`
	Priority     string              `json:"priority"`
}

type Recommendations struct {
	Recommendations []Suggestion        `json:"recommendations"`
	CurrentStats    models.Stats        `json:"currentStats"`
	WeakestStat     models.StatCategory `json:"weakestStat"`
}

type catalogHabit struct {
	name       string
	difficulty int
}

var suggestionCatalog = map[models.StatCategory][]catalogHabit{
	models.StatSTR: {
		{"Morning push-ups", 1},
		{"30-minute walk", 1},
		{"Strength workout", 2},
		{"Go for a run", 2},
		{"Stretch before bed", 1},
	},
	models.StatINT: {
		{"Read for 20 minutes", 1},
		{"Practice a new language", 2},
		{"Solve a coding kata", 2},
		{"Watch a lecture", 1},
		{"Write a study summary", 3},
	},
	models.StatSPI: {
		{"Meditate for 10 minutes", 1},
		{"Write in a gratitude journal", 1},
		{"Call a friend", 1},
		{"Take a screen-free hour", 2},
		{"Practice deep breathing", 1},
	},
}

// Recommend suggests up to three habits aimed at the pet's weakest stats:
// two fixed picks for the weakest, one random pick for the runner-up. A stat
// the user already trains with a habit gets no suggestions.
func Recommend(user models.User, rng *rand.Rand) Recommendations {
	stats := user.Pet.Stats
	ranked := append([]models.StatCategory(nil), models.StatCategories...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return stats.Get(ranked[i]) < stats.Get(ranked[j])
	})

	out := Recommendations{
		Recommendations: []Suggestion{},
		CurrentStats:    stats,
		WeakestStat:     ranked[0],
	}

	weakest := ranked[0]
	if !user.HasHabitIn(weakest) {
		for _, pick := range suggestionCatalog[weakest][:2] {
			out.Recommendations = append(out.Recommendations, suggest(pick, weakest, stats, "high",
				fmt.Sprintf("%s is your pet's weakest stat", weakest.Label())))
		}
	}

	runnerUp := ranked[1]
	if !user.HasHabitIn(runnerUp) {
		options := suggestionCatalog[runnerUp]
		pick := options[rng.IntN(len(options))]
		out.Recommendations = append(out.Recommendations, suggest(pick, runnerUp, stats, "medium",
			fmt.Sprintf("%s could use some attention", runnerUp.Label())))
	}
	return out
}

func suggest(pick catalogHabit, c models.StatCategory, stats models.Stats, priority, message string) Suggestion {
	return Suggestion{
		Name:         pick.name,
		StatCategory: c,
		Difficulty:   pick.difficulty,
		Message:      message,
		Reason: fmt.Sprintf("Your %s is at %d and you have no %s habit yet. Completing this feeds it directly.",
			c.Label(), stats.Get(c), c),
		Priority: priority,
	}
}
