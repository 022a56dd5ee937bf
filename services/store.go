package services

import (
	"context"
	"errors"

	"anima/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrPersistence wraps any store failure; callers see a generic message.
	ErrPersistence = errors.New("storage unavailable")
)

// UserStore loads and saves whole user aggregates. Save replaces the stored
// document in one write so a transaction is either fully visible or not at all.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, user models.User) error
	Save(ctx context.Context, user models.User) error
}
