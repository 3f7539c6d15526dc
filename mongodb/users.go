package mongodb

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/api/models"
	"finance-tracker/api/service"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// UserStore is the MongoDB implementation of service.UserRepository.
type UserStore struct {
	collection *mongo.Collection
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return service.ErrConflict
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Not found, but not an error
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return &user, nil
}
