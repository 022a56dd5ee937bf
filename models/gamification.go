package models

import (
	"time"
)

// Progression event types pushed to the owning user's WebSocket clients.
const (
	EventHabitCompleted = "habit_completed"
	EventHabitReset     = "habit_reset"
	EventPetEvolved     = "pet_evolved"
	EventDailyReset     = "daily_reset"
	EventDecayApplied   = "decay_applied"
	EventItemPurchased  = "item_purchased"
	EventItemUsed       = "item_used"
)

// ProgressionEvent represents a progression change to broadcast via WebSocket
type ProgressionEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	UserID    string                 `json:"userId"`
	HabitID   string                 `json:"habitId,omitempty"`
	ItemID    string                 `json:"itemId,omitempty"`
	XP        int                    `json:"xp,omitempty"`
	Coins     int                    `json:"coins,omitempty"`
	NewCoins  int                    `json:"newCoins"`
	Stage     int                    `json:"stage,omitempty"`
	Path      string                 `json:"evolutionPath,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}
