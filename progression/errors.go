package progression

import "errors"

// Every transaction validates before mutating, so any of these errors
// means the returned snapshot is the unchanged input.
var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyCompleted  = errors.New("habit already completed today")
	ErrNotCompletedYet   = errors.New("habit not completed yet")
	ErrInvalidHabit      = errors.New("invalid habit")
	ErrInvalidPetUpdate  = errors.New("invalid pet update")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientFunds = errors.New("not enough coins")
	ErrAlreadyOwned      = errors.New("background already owned")
	ErrNotOwned          = errors.New("background not owned")
	ErrNotUsable         = errors.New("this item cannot be used")
	ErrNoItemInInventory = errors.New("no item in inventory")
)
