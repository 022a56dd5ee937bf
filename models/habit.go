package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatCategory decides which pet stat a habit feeds.
type StatCategory string

const (
	StatSTR StatCategory = "STR"
	StatINT StatCategory = "INT"
	StatSPI StatCategory = "SPI"
)

// StatCategories is the canonical enumeration order, also used to break ties.
var StatCategories = []StatCategory{StatSTR, StatINT, StatSPI}

func (c StatCategory) Valid() bool {
	switch c {
	case StatSTR, StatINT, StatSPI:
		return true
	}
	return false
}

func (c StatCategory) Label() string {
	switch c {
	case StatSTR:
		return "Strength"
	case StatINT:
		return "Intellect"
	case StatSPI:
		return "Spirit"
	}
	return string(c)
}

func ParseStatCategory(input string) (StatCategory, error) {
	c := StatCategory(strings.ToUpper(strings.TrimSpace(input)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid stat category: %q", input)
	}
	return c, nil
}

const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// CompletionEntry is one line of a habit's append-only completion log.
type CompletionEntry struct {
	Date         time.Time    `bson:"date" json:"date"`
	XPAwarded    int          `bson:"xpAwarded" json:"xpAwarded"`
	StatCategory StatCategory `bson:"statCategory" json:"statCategory"`
	Difficulty   int          `bson:"difficulty" json:"difficulty"`
	Note         string       `bson:"note,omitempty" json:"note,omitempty"`
}

type Habit struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	Name             string             `bson:"name" json:"name"`
	StatCategory     StatCategory       `bson:"statCategory" json:"statCategory"`
	Difficulty       int                `bson:"difficulty" json:"difficulty"`
	IsCompletedToday bool               `bson:"isCompletedToday" json:"isCompletedToday"`
	Streak           int                `bson:"streak" json:"streak"`
	CompletionLog    []CompletionEntry  `bson:"completionLog" json:"completionLog"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

func (h Habit) Clone() Habit {
	out := h
	out.CompletionLog = slices.Clone(h.CompletionLog)
	return out
}
