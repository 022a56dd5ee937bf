package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anima/internal/metrics"
	"anima/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

type MongoStore struct {
	users *mongo.Collection
}

func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{users: database.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Safe to call on every start.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("%w: create email index: %v", ErrPersistence, err)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	return s.findOne(ctx, "find_by_id", bson.M{"_id": id})
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, "find_by_email", bson.M{"email": strings.ToLower(email)})
}

func (s *MongoStore) findOne(ctx context.Context, op string, filter bson.M) (models.User, error) {
	start := time.Now()
	var user models.User
	err := s.users.FindOne(ctx, filter).Decode(&user)
	metrics.RecordDBQueryDuration(op, usersCollection, ignoreNoDocuments(err), time.Since(start))

	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

func (s *MongoStore) Insert(ctx context.Context, user models.User) error {
	start := time.Now()
	_, err := s.users.InsertOne(ctx, user)
	metrics.RecordDBQueryDuration("insert", usersCollection, err, time.Since(start))

	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Save replaces the whole document by _id, which Mongo applies atomically.
func (s *MongoStore) Save(ctx context.Context, user models.User) error {
	start := time.Now()
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	metrics.RecordDBQueryDuration("replace", usersCollection, err, time.Since(start))

	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func ignoreNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	return err
}
