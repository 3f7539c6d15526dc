package mongodb

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/api/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ChatStore is the MongoDB implementation of service.ChatRepository. Each user
// has a single document whose messages array is capped by $slice.
type ChatStore struct {
	collection *mongo.Collection
}

func appendUpdate(msg models.ChatMessage) bson.M {
	return bson.M{
		"$push": bson.M{
			"messages": bson.M{
				"$each":  []models.ChatMessage{msg},
				"$slice": -models.MaxChatMessages,
			},
		},
		"$set": bson.M{"updatedAt": msg.CreatedAt},
	}
}

// Append creates the record on first use and trims it in the same atomic update.
func (s *ChatStore) Append(ctx context.Context, userID string, msg models.ChatMessage) error {
	opts := options.UpdateOne().SetUpsert(true)
	_, err := s.collection.UpdateOne(ctx, bson.M{"userId": userID}, appendUpdate(msg), opts)
	if err != nil {
		return fmt.Errorf("error appending chat message: %w", err)
	}
	return nil
}

func (s *ChatStore) Fetch(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	var record models.ChatRecord
	err := s.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []models.ChatMessage{}, nil
		}
		return nil, fmt.Errorf("error fetching chat history: %w", err)
	}
	if record.Messages == nil {
		return []models.ChatMessage{}, nil
	}
	return record.Messages, nil
}
