package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the root aggregate: one document holds the pet, habits, coins and inventory.
type User struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username              string             `bson:"username" json:"username"`
	Email                 string             `bson:"email" json:"email"`
	Password              string             `bson:"password" json:"-"`
	Coins                 int                `bson:"coins" json:"coins"`
	LastLogin             *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	FreezeProtectionUntil *time.Time         `bson:"freezeProtectionUntil,omitempty" json:"freezeProtectionUntil"`
	Pet                   Pet                `bson:"pet" json:"pet"`
	Habits                []Habit            `bson:"habits" json:"habits"`
	Inventory             Inventory          `bson:"inventory" json:"inventory"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindHabit returns a pointer into u.Habits, or nil.
func (u *User) FindHabit(id primitive.ObjectID) *Habit {
	for i := range u.Habits {
		if u.Habits[i].ID == id {
			return &u.Habits[i]
		}
	}
	return nil
}

// HasHabitIn reports whether any habit feeds the given stat.
func (u *User) HasHabitIn(category StatCategory) bool {
	for _, h := range u.Habits {
		if h.StatCategory == category {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so transactions can work on a snapshot.
func (u User) Clone() User {
	out := u
	out.LastLogin = cloneTime(u.LastLogin)
	out.FreezeProtectionUntil = cloneTime(u.FreezeProtectionUntil)
	if u.Habits != nil {
		out.Habits = make([]Habit, len(u.Habits))
		for i, h := range u.Habits {
			out.Habits[i] = h.Clone()
		}
	}
	out.Inventory = u.Inventory.Clone()
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
