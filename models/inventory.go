package models

import "slices"

const DefaultBackground = "default"

type Inventory struct {
	HealthPotions      int      `bson:"healthPotions" json:"healthPotions"`
	SuperHealthPotions int      `bson:"superHealthPotions" json:"superHealthPotions"`
	FreezeStreaks      int      `bson:"freezeStreaks" json:"freezeStreaks"`
	Backgrounds        []string `bson:"backgrounds" json:"backgrounds"`
	ActiveBackground   string   `bson:"activeBackground" json:"activeBackground"`
}

// NewInventory returns the starter inventory: only the default background.
func NewInventory() Inventory {
	return Inventory{
		Backgrounds:      []string{DefaultBackground},
		ActiveBackground: DefaultBackground,
	}
}

// Owns reports background ownership. "default" is always owned.
func (inv Inventory) Owns(backgroundID string) bool {
	return backgroundID == DefaultBackground || slices.Contains(inv.Backgrounds, backgroundID)
}

func (inv Inventory) Clone() Inventory {
	out := inv
	out.Backgrounds = slices.Clone(inv.Backgrounds)
	return out
}
