// Package memstore implements the service repositories in process memory.
// It backs STORE=memory for local runs and serves as the store in tests.
package memstore

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"finance-tracker/api/models"
	"finance-tracker/api/service"
)

// Store implements service.TransactionRepository, service.UserRepository and
// service.ChatRepository. Use the Transactions, Users and Chats views to pass it
// where one of those interfaces is expected.
type Store struct {
	mu sync.RWMutex

	transactions map[string]models.Transaction
	users        map[string]models.User
	chats        map[string][]models.ChatMessage
}

func New() *Store {
	return &Store{
		transactions: make(map[string]models.Transaction),
		users:        make(map[string]models.User),
		chats:        make(map[string][]models.ChatMessage),
	}
}

func (s *Store) Transactions() service.TransactionRepository { return transactionStore{s} }
func (s *Store) Users() service.UserRepository               { return userStore{s} }
func (s *Store) Chats() service.ChatRepository               { return chatStore{s} }

type transactionStore struct{ s *Store }

func (t transactionStore) Insert(ctx context.Context, tx *models.Transaction) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.transactions[tx.ID] = *tx
	return nil
}

func matches(tx models.Transaction, userID string, filter models.TransactionFilter, category *regexp.Regexp) bool {
	if tx.UserID != userID {
		return false
	}
	if filter.Type != "" && tx.Type != filter.Type {
		return false
	}
	if category != nil && !category.MatchString(tx.Category) {
		return false
	}
	if filter.Day != nil && !filter.Day.Contains(tx.Date) {
		return false
	}
	return true
}

// sortNewestFirst orders by date descending, then id descending.
func sortNewestFirst(items []models.Transaction) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID > items[j].ID
	})
}

func (t transactionStore) Query(ctx context.Context, userID string, filter models.TransactionFilter, page, limit int64) (*models.TransactionPage, error) {
	var category *regexp.Regexp
	if filter.Category != "" {
		category = regexp.MustCompile("(?i)" + regexp.QuoteMeta(filter.Category))
	}

	t.s.mu.RLock()
	var matched []models.Transaction
	for _, tx := range t.s.transactions {
		if matches(tx, userID, filter, category) {
			matched = append(matched, tx)
		}
	}
	t.s.mu.RUnlock()

	sortNewestFirst(matched)

	total := int64(len(matched))
	start, end := models.PageBounds(total, page, limit)
	items := append([]models.Transaction{}, matched[start:end]...)
	return models.NewTransactionPage(items, total, page, limit), nil
}

func (t transactionStore) FindByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	tx, ok := t.s.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, nil
	}
	return &tx, nil
}

func (t transactionStore) Replace(ctx context.Context, userID, id string, update *models.Transaction) (*models.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	existing, ok := t.s.transactions[id]
	if !ok || existing.UserID != userID {
		return nil, nil
	}
	if !update.Date.IsZero() {
		existing.Date = update.Date
	}
	existing.Category = update.Category
	existing.Type = update.Type
	existing.Amount = update.Amount
	existing.PaymentMode = update.PaymentMode
	existing.Description = update.Description
	existing.UpdatedAt = update.UpdatedAt
	t.s.transactions[id] = existing
	return &existing, nil
}

func (t transactionStore) Delete(ctx context.Context, userID, id string) (*models.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	tx, ok := t.s.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, nil
	}
	delete(t.s.transactions, id)
	return &tx, nil
}

func (t transactionStore) SummarizeByCategory(ctx context.Context, userID string) (*models.CategoryTotals, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	totals := models.NewCategoryTotals()
	for _, tx := range t.s.transactions {
		if tx.UserID == userID {
			totals.Add(tx.Category, tx.Type, tx.Amount)
		}
	}
	return totals, nil
}

type userStore struct{ s *Store }

func (u userStore) Insert(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return service.ErrConflict
		}
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (u userStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type chatStore struct{ s *Store }

func (c chatStore) Append(ctx context.Context, userID string, msg models.ChatMessage) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	messages := append(c.s.chats[userID], msg)
	c.s.chats[userID] = append([]models.ChatMessage(nil), models.TrimChat(messages)...)
	return nil
}

func (c chatStore) Fetch(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	messages, ok := c.s.chats[userID]
	if !ok {
		return []models.ChatMessage{}, nil
	}
	return append([]models.ChatMessage(nil), messages...), nil
}
