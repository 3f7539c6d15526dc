package mongodb

import (
	"context"
	"fmt"

	"finance-tracker/api/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

const (
	TransactionCollection = "transactions"
	UserCollection        = "users"
	ChatCollection        = "chats"
)

// Client owns the connection pool and the application database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, database string) (*Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_DB_URL environment variable not set")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		logger.Get().Error("failed to connect to MongoDB", zap.Error(err))
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		logger.Get().Error("failed to ping MongoDB", zap.Error(err))
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	logger.Get().Info("successfully connected to MongoDB", zap.String("database", database))
	return &Client{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the indexes the stores rely on. It is safe to call on every start.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		TransactionCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}, {Key: "_id", Value: -1}}},
		},
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ChatCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, idx := range indexes {
		if _, err := c.db.Collection(collection).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", collection, err)
		}
	}
	return nil
}

func (c *Client) Transactions() *TransactionStore {
	return &TransactionStore{collection: c.db.Collection(TransactionCollection)}
}

func (c *Client) Users() *UserStore {
	return &UserStore{collection: c.db.Collection(UserCollection)}
}

func (c *Client) Chats() *ChatStore {
	return &ChatStore{collection: c.db.Collection(ChatCollection)}
}

func (c *Client) Close(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Disconnect(ctx); err != nil {
		logger.Get().Error("failed to disconnect from MongoDB", zap.Error(err))
		return
	}
	logger.Get().Info("successfully disconnected from MongoDB")
}
