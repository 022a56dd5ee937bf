package services

import (
	"context"
	"strings"
	"sync"

	"anima/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps users in process. It backs tests and local runs without Mongo.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User

	// FailWrites makes Insert and Save fail with ErrPersistence.
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u.Clone(), nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemoryStore) Insert(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return ErrPersistence
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailTaken
		}
	}
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *MemoryStore) Save(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return ErrPersistence
	}
	if _, ok := s.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	s.users[user.ID] = user.Clone()
	return nil
}
