package progression

import (
	"fmt"
	"time"

	"anima/models"
)

const maxPurchaseQuantity = 99

// Listing decorates the catalog with the user's ownership of backgrounds.
func Listing(user models.User) []models.ListedItem {
	items := make([]models.ListedItem, 0, len(shopCatalog))
	for _, item := range shopCatalog {
		owned := item.Category == models.CategoryBackground && user.Inventory.Owns(item.ID)
		items = append(items, models.ListedItem{ShopItem: item, Owned: owned})
	}
	return items
}

type PurchaseResult struct {
	Item     models.ShopItem `json:"item"`
	Quantity int             `json:"quantity"`
	Cost     int             `json:"cost"`
}

// Purchase buys quantity units of an item. Backgrounds are always bought
// singly. A quantity of 0 means 1.
func Purchase(user models.User, itemID string, quantity int) (models.User, PurchaseResult, error) {
	item, ok := LookupItem(itemID)
	if !ok {
		return user, PurchaseResult{}, ErrItemNotFound
	}
	if quantity == 0 || item.Category == models.CategoryBackground {
		quantity = 1
	}
	if quantity < 1 || quantity > maxPurchaseQuantity {
		return user, PurchaseResult{}, fmt.Errorf("%w: must be 1-%d", ErrInvalidQuantity, maxPurchaseQuantity)
	}

	cost := item.Price * quantity
	if user.Coins < cost {
		return user, PurchaseResult{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, cost, user.Coins)
	}

	next := user.Clone()
	switch item.Category {
	case models.CategoryBackground:
		if next.Inventory.Owns(item.ID) {
			return user, PurchaseResult{}, ErrAlreadyOwned
		}
		next.Inventory.Backgrounds = append(next.Inventory.Backgrounds, item.ID)
	case models.CategoryConsumable:
		counter := consumableCounter(&next.Inventory, item.ID)
		if counter == nil {
			return user, PurchaseResult{}, ErrItemNotFound
		}
		*counter += quantity
	}
	next.Coins -= cost

	return next, PurchaseResult{Item: item, Quantity: quantity, Cost: cost}, nil
}

func consumableCounter(inv *models.Inventory, itemID string) *int {
	switch itemID {
	case ItemHealthPotion:
		return &inv.HealthPotions
	case ItemSuperHealthPotion:
		return &inv.SuperHealthPotions
	case ItemFreezeStreak:
		return &inv.FreezeStreaks
	}
	return nil
}

type UseResult struct {
	Item     models.ShopItem `json:"item"`
	HPBefore int             `json:"hpBefore"`
	HPAfter  int             `json:"hpAfter"`
}

// UseItem consumes one unit of a consumable and applies its effect.
func UseItem(user models.User, itemID string, now time.Time) (models.User, UseResult, error) {
	item, ok := LookupItem(itemID)
	if !ok {
		return user, UseResult{}, ErrItemNotFound
	}
	if item.Category != models.CategoryConsumable || item.Effect == nil {
		return user, UseResult{}, ErrNotUsable
	}

	next := user.Clone()
	counter := consumableCounter(&next.Inventory, item.ID)
	if counter == nil {
		return user, UseResult{}, ErrNotUsable
	}
	if *counter <= 0 {
		return user, UseResult{}, fmt.Errorf("%w: %s", ErrNoItemInInventory, item.Name)
	}

	res := UseResult{Item: item, HPBefore: next.Pet.HP}
	switch item.Effect.Type {
	case models.EffectHeal:
		next.Pet.HP = min(models.MaxHP, next.Pet.HP+item.Effect.Value)
	case models.EffectFullHeal:
		next.Pet.HP = models.MaxHP
	case models.EffectProtection:
		until := now.Add(time.Duration(item.Effect.Duration) * time.Hour)
		next.FreezeProtectionUntil = &until
	}
	*counter--
	res.HPAfter = next.Pet.HP

	return next, res, nil
}

// SetBackground activates an owned background.
func SetBackground(user models.User, backgroundID string) (models.User, error) {
	if !user.Inventory.Owns(backgroundID) {
		return user, ErrNotOwned
	}
	next := user.Clone()
	next.Inventory.ActiveBackground = backgroundID
	return next, nil
}
