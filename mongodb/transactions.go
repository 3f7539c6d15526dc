package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"finance-tracker/api/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TransactionStore is the MongoDB implementation of service.TransactionRepository.
type TransactionStore struct {
	collection *mongo.Collection
}

// newestFirst sorts by date descending with _id as a deterministic tie-break.
var newestFirst = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}

// transactionFilter always scopes to userID; the optional filters are added on top.
func transactionFilter(userID string, f models.TransactionFilter) bson.M {
	filter := bson.M{"userId": userID}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Category != "" {
		filter["category"] = bson.Regex{Pattern: regexp.QuoteMeta(f.Category), Options: "i"}
	}
	if f.Day != nil {
		filter["date"] = bson.M{"$gte": f.Day.Start, "$lte": f.Day.End}
	}
	return filter
}

func ownedBy(userID, id string) bson.M {
	return bson.M{"_id": id, "userId": userID}
}

// replaceUpdate overwrites every mutable field and leaves _id, userId and createdAt alone.
// A zero date keeps the stored one.
func replaceUpdate(tx *models.Transaction) bson.M {
	set := bson.M{
		"category":    tx.Category,
		"type":        string(tx.Type),
		"amount":      tx.Amount,
		"paymentMode": tx.PaymentMode,
		"updatedAt":   tx.UpdatedAt,
	}
	if !tx.Date.IsZero() {
		set["date"] = tx.Date
	}
	update := bson.M{"$set": set}
	if tx.Description != "" {
		set["description"] = tx.Description
	} else {
		update["$unset"] = bson.M{"description": ""}
	}
	return update
}

func (s *TransactionStore) Insert(ctx context.Context, tx *models.Transaction) error {
	_, err := s.collection.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("error creating transaction: %w", err)
	}
	return nil
}

func (s *TransactionStore) Query(ctx context.Context, userID string, f models.TransactionFilter, page, limit int64) (*models.TransactionPage, error) {
	filter := transactionFilter(userID, f)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting transactions: %w", err)
	}

	transactions := []models.Transaction{}
	skip := models.Skip(page, limit)
	if skip >= total {
		return models.NewTransactionPage(transactions, total, page, limit), nil
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var tx models.Transaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, fmt.Errorf("error decoding transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return models.NewTransactionPage(transactions, total, page, limit), nil
}

func (s *TransactionStore) FindByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.collection.FindOne(ctx, ownedBy(userID, id)).Decode(&tx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching transaction: %w", err)
	}
	return &tx, nil
}

func (s *TransactionStore) Replace(ctx context.Context, userID, id string, tx *models.Transaction) (*models.Transaction, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Transaction
	err := s.collection.FindOneAndUpdate(ctx, ownedBy(userID, id), replaceUpdate(tx), opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}
	return &updated, nil
}

func (s *TransactionStore) Delete(ctx context.Context, userID, id string) (*models.Transaction, error) {
	var deleted models.Transaction
	err := s.collection.FindOneAndDelete(ctx, ownedBy(userID, id)).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error deleting transaction: %w", err)
	}
	return &deleted, nil
}

// SummarizeByCategory streams every transaction of the user through a cursor,
// reading only the fields the totals need.
func (s *TransactionStore) SummarizeByCategory(ctx context.Context, userID string) (*models.CategoryTotals, error) {
	opts := options.Find().SetProjection(bson.M{"category": 1, "type": 1, "amount": 1})

	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	defer cursor.Close(ctx)

	totals := models.NewCategoryTotals()
	for cursor.Next(ctx) {
		var row struct {
			Category string                 `bson:"category"`
			Type     models.TransactionType `bson:"type"`
			Amount   float64                `bson:"amount"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("error decoding transaction: %w", err)
		}
		totals.Add(row.Category, row.Type, row.Amount)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return totals, nil
}
