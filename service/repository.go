package service

import (
	"context"

	"finance-tracker/api/models"
)

// TransactionRepository persists transactions. Every method is scoped to the
// owning user; lookups of records owned by someone else behave as if absent
// and return a nil record with a nil error.
type TransactionRepository interface {
	Insert(ctx context.Context, tx *models.Transaction) error
	Query(ctx context.Context, userID string, filter models.TransactionFilter, page, limit int64) (*models.TransactionPage, error)
	FindByID(ctx context.Context, userID, id string) (*models.Transaction, error)
	Replace(ctx context.Context, userID, id string, tx *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) (*models.Transaction, error)
	SummarizeByCategory(ctx context.Context, userID string) (*models.CategoryTotals, error)
}

// UserRepository stores accounts. Insert reports a duplicate email with ErrConflict.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ChatRepository holds one bounded chat record per user.
type ChatRepository interface {
	Append(ctx context.Context, userID string, msg models.ChatMessage) error
	Fetch(ctx context.Context, userID string) ([]models.ChatMessage, error)
}
