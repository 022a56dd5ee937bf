package progression

import (
	"fmt"
	"time"

	"anima/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewPet seeds a starter pet: stage 1, all stats at 10, full HP.
func NewPet(species models.Species) models.Pet {
	pet := models.Pet{
		Nickname: models.DefaultPetName,
		Species:  species,
		Stats:    models.Stats{Str: models.StarterStat, Int: models.StarterStat, Spi: models.StarterStat},
		HP:       models.MaxHP,
	}
	ApplyEvolution(&pet)
	return pet
}

// NewUser builds the aggregate created at registration.
func NewUser(username, email, passwordHash string, species models.Species, now time.Time) models.User {
	return models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		LastLogin: &now,
		Pet:       NewPet(species),
		Habits:    []models.Habit{},
		Inventory: models.NewInventory(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StatsPatch carries the stats a client wants to overwrite; nil fields are kept.
type StatsPatch struct {
	Str *int `json:"str"`
	Int *int `json:"int"`
	Spi *int `json:"spi"`
}

type PetPatch struct {
	Stats   *StatsPatch `json:"stats"`
	TotalXP *int        `json:"totalXp"`
}

// UpdatePet merges the patch into the pet and recomputes its evolution.
func UpdatePet(user models.User, patch PetPatch) (models.User, error) {
	if patch.TotalXP != nil && *patch.TotalXP < 0 {
		return user, fmt.Errorf("%w: totalXp must be non-negative", ErrInvalidPetUpdate)
	}
	next := user.Clone()
	if patch.Stats != nil {
		values := map[models.StatCategory]*int{
			models.StatSTR: patch.Stats.Str,
			models.StatINT: patch.Stats.Int,
			models.StatSPI: patch.Stats.Spi,
		}
		for _, c := range models.StatCategories {
			v := values[c]
			if v == nil {
				continue
			}
			if *v < 0 {
				return user, fmt.Errorf("%w: %s must be non-negative", ErrInvalidPetUpdate, c)
			}
			next.Pet.Stats.Set(c, *v)
		}
	}
	if patch.TotalXP != nil {
		next.Pet.TotalXP = *patch.TotalXP
	}
	ApplyEvolution(&next.Pet)
	return next, nil
}
