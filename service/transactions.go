package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"finance-tracker/api/logger"
	"finance-tracker/api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPage     int64 = 1
	DefaultPageSize int64 = 10
)

// ListParams are the raw query parameters of a transaction listing.
type ListParams struct {
	Type     string
	Category string
	Date     string
	Page     int64
	Limit    int64
}

type TransactionService struct {
	repo  TransactionRepository
	now   func() time.Time
	newID func() string
}

func NewTransactionService(repo TransactionRepository) *TransactionService {
	return &TransactionService{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// BuildFilter validates raw filter values. An empty type or "all" disables the type filter.
func BuildFilter(typ, category, date string) (models.TransactionFilter, error) {
	var filter models.TransactionFilter

	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ != "" && typ != "all" {
		t := models.TransactionType(typ)
		if !t.Valid() {
			return filter, fmt.Errorf("%w: type must be income, expense or all", ErrValidation)
		}
		filter.Type = t
	}

	filter.Category = strings.TrimSpace(category)

	if strings.TrimSpace(date) != "" {
		day, err := models.ParseDay(date)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		filter.Day = &day
	}
	return filter, nil
}

func normalizePaging(page, limit int64) (int64, int64) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	return page, limit
}

func (s *TransactionService) List(ctx context.Context, userID string, p ListParams) (*models.TransactionPage, error) {
	filter, err := BuildFilter(p.Type, p.Category, p.Date)
	if err != nil {
		return nil, err
	}
	page, limit := normalizePaging(p.Page, p.Limit)

	result, err := s.repo.Query(ctx, userID, filter, page, limit)
	if err != nil {
		logger.Get().Error("error querying transactions",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return result, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}
	return tx, nil
}

func (s *TransactionService) Create(ctx context.Context, userID string, in models.TransactionInput) (*models.Transaction, error) {
	now := s.now()
	tx, err := s.fromInput(in, now)
	if err != nil {
		return nil, err
	}
	tx.ID = s.newID()
	tx.UserID = userID
	tx.CreatedAt = now

	if err := s.repo.Insert(ctx, tx); err != nil {
		logger.Get().Error("error inserting transaction",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	logger.Get().Info("transaction created",
		zap.String("user_id", userID),
		zap.String("transaction_id", tx.ID))
	return tx, nil
}

// Update replaces every mutable field of the caller's transaction and returns the stored result.
// An omitted date keeps the stored one.
func (s *TransactionService) Update(ctx context.Context, userID, id string, in models.TransactionInput) (*models.Transaction, error) {
	tx, err := s.fromInput(in, s.now())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Date) == "" {
		tx.Date = time.Time{}
	}

	updated, err := s.repo.Replace(ctx, userID, id, tx)
	if err != nil {
		logger.Get().Error("error updating transaction",
			zap.String("user_id", userID),
			zap.String("transaction_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		logger.Get().Error("error deleting transaction",
			zap.String("user_id", userID),
			zap.String("transaction_id", id),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if deleted == nil {
		return fmt.Errorf("%w: transaction not found", ErrNotFound)
	}

	logger.Get().Info("transaction deleted",
		zap.String("user_id", userID),
		zap.String("transaction_id", id))
	return nil
}

// fromInput validates in and fills defaults. UpdatedAt is set to now; id, owner and CreatedAt are left to the caller.
func (s *TransactionService) fromInput(in models.TransactionInput, now time.Time) (*models.Transaction, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" || in.Type == "" || in.Amount == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}
	amount := *in.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a number", ErrValidation)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}

	date := now
	if strings.TrimSpace(in.Date) != "" {
		parsed, err := models.ParseDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		date = parsed
	}

	paymentMode := strings.TrimSpace(in.PaymentMode)
	if paymentMode == "" {
		paymentMode = models.DefaultPaymentMode
	}

	return &models.Transaction{
		Date:        date,
		Category:    category,
		Type:        in.Type,
		Amount:      amount,
		PaymentMode: paymentMode,
		Description: strings.TrimSpace(in.Description),
		UpdatedAt:   now,
	}, nil
}
