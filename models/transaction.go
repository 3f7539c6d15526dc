package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

const DefaultPaymentMode = "Cash"

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type Transaction struct {
	ID          string          `json:"_id" bson:"_id"`
	UserID      string          `json:"userId" bson:"userId"`
	Date        time.Time       `json:"date" bson:"date"`
	Category    string          `json:"category" bson:"category"`
	Type        TransactionType `json:"type" bson:"type"`
	Amount      float64         `json:"amount" bson:"amount"`
	PaymentMode string          `json:"paymentMode" bson:"paymentMode"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// TransactionInput is the client-supplied part of a transaction used by create and update.
type TransactionInput struct {
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Amount      *float64        `json:"amount"`
	PaymentMode string          `json:"paymentMode"`
	Description string          `json:"description"`
}

// DayRange is an inclusive [Start, End] window covering one calendar day.
type DayRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate accepts YYYY-MM-DD (midnight UTC) or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseDay returns 00:00 to 23:59:59.999 of the calendar day the value falls on,
// in the value's own location.
func ParseDay(s string) (DayRange, error) {
	t, err := ParseDate(s)
	if err != nil {
		return DayRange{}, err
	}
	y, m, d := t.Date()
	return DayRange{
		Start: time.Date(y, m, d, 0, 0, 0, 0, t.Location()),
		End:   time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location()),
	}, nil
}

func (r DayRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// TransactionFilter narrows a user's transactions. Zero values mean "no filter".
type TransactionFilter struct {
	Type     TransactionType
	Category string
	Day      *DayRange
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	CurrentPage  int64         `json:"currentPage"`
	TotalPages   int64         `json:"totalPages"`
}

func NewTransactionPage(items []Transaction, total, page, limit int64) *TransactionPage {
	if items == nil {
		items = []Transaction{}
	}
	return &TransactionPage{
		Transactions: items,
		Total:        total,
		CurrentPage:  page,
		TotalPages:   TotalPages(total, limit),
	}
}

// TotalPages is ceil(total/limit); zero when limit is not positive.
func TotalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Skip is the offset for a 1-indexed page. Offsets that do not fit in an int64
// saturate at math.MaxInt64, which is past the end of any result set.
func Skip(page, limit int64) int64 {
	if page < 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return (page - 1) * limit
}

// PageBounds returns the [start, end) slice of total items that a page covers.
// start == end when the page is past the end.
func PageBounds(total, page, limit int64) (int64, int64) {
	start := Skip(page, limit)
	if start >= total {
		return total, total
	}
	if limit >= total-start {
		return start, total
	}
	return start, start + limit
}
