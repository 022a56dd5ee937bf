package progression

import "anima/models"

const (
	ItemHealthPotion      = "healthPotion"
	ItemSuperHealthPotion = "superHealthPotion"
	ItemFreezeStreak      = "freezeStreak"
)

var shopCatalog = []models.ShopItem{
	{
		ID:          ItemHealthPotion,
		Name:        "Health Potion",
		Description: "Restores 25 HP to your pet. Use when decay has weakened your companion.",
		Category:    models.CategoryConsumable,
		Price:       50,
		Emoji:       "🧪",
		Effect:      &models.ItemEffect{Type: models.EffectHeal, Value: 25},
	},
	{
		ID:          ItemSuperHealthPotion,
		Name:        "Super Health Potion",
		Description: "Fully restores your pet's HP to 100%. For emergency recovery!",
		Category:    models.CategoryConsumable,
		Price:       150,
		Emoji:       "💖",
		Effect:      &models.ItemEffect{Type: models.EffectFullHeal, Value: models.MaxHP},
	},
	{
		ID:          ItemFreezeStreak,
		Name:        "Freeze Streak",
		Description: "Protects your streaks for 24 hours. Use before you know you'll miss a day!",
		Category:    models.CategoryConsumable,
		Price:       100,
		Emoji:       "❄️",
		Effect:      &models.ItemEffect{Type: models.EffectProtection, Duration: 24},
	},
	background("dojo", "Dojo Arena", "A traditional training dojo. Perfect for strength-focused pets.", 200, "🥋", "STR"),
	background("library", "Ancient Library", "Towering shelves of knowledge. Ideal for intellect-focused pets.", 200, "📚", "INT"),
	background("forest", "Mystic Forest", "A serene woodland clearing. Perfect for spirit-focused pets.", 200, "🌲", "SPI"),
	background("volcano", "Volcanic Lair", "A fiery volcanic cave. Ember pets feel right at home here.", 300, "🌋", "EMBER"),
	background("ocean", "Ocean Depths", "A beautiful underwater paradise. Aqua pets thrive here.", 300, "🌊", "AQUA"),
	background("mountain", "Mountain Peak", "A majestic rocky summit. Terra pets love the solid ground.", 300, "🏔️", "TERRA"),
}

func background(id, name, description string, price int, emoji, theme string) models.ShopItem {
	return models.ShopItem{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    models.CategoryBackground,
		Price:       price,
		Emoji:       emoji,
		Preview:     "/backgrounds/" + id + ".png",
		Theme:       theme,
	}
}

// Catalog returns a copy of the shop, in display order.
func Catalog() []models.ShopItem {
	return append([]models.ShopItem(nil), shopCatalog...)
}

func LookupItem(id string) (models.ShopItem, bool) {
	for _, item := range shopCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return models.ShopItem{}, false
}
