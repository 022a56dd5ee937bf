package models

type ItemCategory string

const (
	CategoryConsumable ItemCategory = "consumable"
	CategoryBackground ItemCategory = "background"
)

type EffectType string

const (
	EffectHeal       EffectType = "heal"
	EffectFullHeal   EffectType = "fullHeal"
	EffectProtection EffectType = "protection"
)

// ItemEffect describes what using a consumable does. Duration is in hours.
type ItemEffect struct {
	Type     EffectType `json:"type"`
	Value    int        `json:"value,omitempty"`
	Duration int        `json:"duration,omitempty"`
}

// ShopItem is static catalog data; it is never stored per user.
type ShopItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    ItemCategory `json:"category"`
	Price       int          `json:"price"`
	Emoji       string       `json:"emoji"`
	Effect      *ItemEffect  `json:"effect,omitempty"`
	Preview     string       `json:"preview,omitempty"`
	Theme       string       `json:"theme,omitempty"`
}

// ListedItem is a catalog entry decorated for one user.
type ListedItem struct {
	ShopItem
	Owned bool `json:"owned"`
}
