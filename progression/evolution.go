// Package progression holds the pet economy rules. Every exported
// transaction takes a user snapshot and returns a new one; inputs are
// never mutated and nothing here touches storage.
package progression

import (
	"fmt"

	"anima/models"
)

const (
	stageOneMaxXP = 100
	stageTwoMaxXP = 500
)

// Evolution is the derived form of a pet.
type Evolution struct {
	Stage int    `json:"stage"`
	Path  string `json:"evolutionPath"`
}

// Evolve derives stage and evolution path from total XP and stats.
func Evolve(species models.Species, totalXP int, stats models.Stats) Evolution {
	switch {
	case totalXP > stageTwoMaxXP:
		dominant := Dominant(stats)
		hi, lo := statRange(stats)
		if hi >= 2*lo {
			return Evolution{Stage: 3, Path: fmt.Sprintf("%s_%s_PURE", species, dominant)}
		}
		return Evolution{Stage: 3, Path: fmt.Sprintf("%s_HYBRID", species)}
	case totalXP > stageOneMaxXP:
		return Evolution{Stage: 2, Path: fmt.Sprintf("%s_%s", species, Dominant(stats))}
	default:
		return Evolution{Stage: 1, Path: fmt.Sprintf("%s_BASE", species)}
	}
}

// Dominant returns the stat with the strictly highest value; ties go to
// the first category in STR, INT, SPI order.
func Dominant(stats models.Stats) models.StatCategory {
	best := models.StatCategories[0]
	for _, c := range models.StatCategories[1:] {
		if stats.Get(c) > stats.Get(best) {
			best = c
		}
	}
	return best
}

func statRange(stats models.Stats) (hi, lo int) {
	hi, lo = stats.Str, stats.Str
	for _, c := range models.StatCategories[1:] {
		v := stats.Get(c)
		hi = max(hi, v)
		lo = min(lo, v)
	}
	return hi, lo
}

// ApplyEvolution is the only writer of Pet.Stage and Pet.EvolutionPath.
// It reports whether the stage changed.
func ApplyEvolution(pet *models.Pet) bool {
	evo := Evolve(pet.Species, pet.TotalXP, pet.Stats)
	changed := evo.Stage != pet.Stage
	pet.Stage = evo.Stage
	pet.EvolutionPath = evo.Path
	return changed
}
