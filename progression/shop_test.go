package progression

import (
	"testing"
	"time"

	"anima/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shopper(coins int) models.User {
	user := NewUser("tester", "t@example.com", "hash", models.SpeciesTerra, testNow)
	user.Coins = coins
	return user
}

func TestPurchase_Consumables(t *testing.T) {
	user := shopper(400)

	next, res, err := Purchase(user, ItemHealthPotion, 3)
	require.NoError(t, err)
	assert.Equal(t, 150, res.Cost)
	assert.Equal(t, 250, next.Coins)
	assert.Equal(t, 3, next.Inventory.HealthPotions)
	assert.Equal(t, 0, user.Inventory.HealthPotions)

	next, _, err = Purchase(next, ItemFreezeStreak, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Inventory.FreezeStreaks)
	assert.Equal(t, 150, next.Coins)

	next, _, err = Purchase(next, ItemSuperHealthPotion, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, next.Inventory.SuperHealthPotions)
	assert.Equal(t, 0, next.Coins)
}

func TestPurchase_Failures(t *testing.T) {
	user := shopper(120)

	_, _, err := Purchase(user, "dragonEgg", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)

	same, _, err := Purchase(user, ItemHealthPotion, 3)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, 120, same.Coins)
	assert.Equal(t, 0, same.Inventory.HealthPotions)

	_, _, err = Purchase(user, ItemHealthPotion, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, _, err = Purchase(user, ItemHealthPotion, 100)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestPurchase_Backgrounds(t *testing.T) {
	user := shopper(500)

	next, res, err := Purchase(user, "dojo", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Quantity)
	assert.Equal(t, 300, next.Coins)
	assert.Equal(t, []string{models.DefaultBackground, "dojo"}, next.Inventory.Backgrounds)

	_, _, err = Purchase(next, "dojo", 1)
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	poor := shopper(100)
	_, _, err = Purchase(poor, "volcano", 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestUseItem_Effects(t *testing.T) {
	user := shopper(0)
	user.Inventory.HealthPotions = 2
	user.Inventory.SuperHealthPotions = 1
	user.Inventory.FreezeStreaks = 1
	user.Pet.HP = 60

	next, res, err := UseItem(user, ItemHealthPotion, testNow)
	require.NoError(t, err)
	assert.Equal(t, 85, next.Pet.HP)
	assert.Equal(t, 60, res.HPBefore)
	assert.Equal(t, 1, next.Inventory.HealthPotions)

	next, _, err = UseItem(next, ItemHealthPotion, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.MaxHP, next.Pet.HP, "heal caps at 100")

	next.Pet.HP = 3
	next, _, err = UseItem(next, ItemSuperHealthPotion, testNow)
	require.NoError(t, err)
	assert.Equal(t, models.MaxHP, next.Pet.HP)
	assert.Equal(t, 0, next.Inventory.SuperHealthPotions)

	next, _, err = UseItem(next, ItemFreezeStreak, testNow)
	require.NoError(t, err)
	require.NotNil(t, next.FreezeProtectionUntil)
	assert.Equal(t, testNow.Add(24*time.Hour), *next.FreezeProtectionUntil)
	assert.Equal(t, 0, next.Inventory.FreezeStreaks)
}

func TestUseItem_Failures(t *testing.T) {
	user := shopper(0)

	_, _, err := UseItem(user, "nope", testNow)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, _, err = UseItem(user, "forest", testNow)
	assert.ErrorIs(t, err, ErrNotUsable)

	same, _, err := UseItem(user, ItemFreezeStreak, testNow)
	assert.ErrorIs(t, err, ErrNoItemInInventory)
	assert.Nil(t, same.FreezeProtectionUntil)
}

func TestSetBackground(t *testing.T) {
	user := shopper(0)

	_, err := SetBackground(user, "ocean")
	assert.ErrorIs(t, err, ErrNotOwned)

	user.Inventory.Backgrounds = append(user.Inventory.Backgrounds, "ocean")
	next, err := SetBackground(user, "ocean")
	require.NoError(t, err)
	assert.Equal(t, "ocean", next.Inventory.ActiveBackground)

	back, err := SetBackground(next, models.DefaultBackground)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBackground, back.Inventory.ActiveBackground)
}

func TestListing_MarksOwnedBackgrounds(t *testing.T) {
	user := shopper(0)
	user.Inventory.Backgrounds = append(user.Inventory.Backgrounds, "library")

	owned := map[string]bool{}
	for _, item := range Listing(user) {
		owned[item.ID] = item.Owned
	}
	assert.Len(t, owned, len(Catalog()))
	assert.True(t, owned["library"])
	assert.False(t, owned["dojo"])
	assert.False(t, owned[ItemHealthPotion])
}
