package memstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"finance-tracker/api/models"
	"finance-tracker/api/service"
)

func seed(t *testing.T, repo service.TransactionRepository, txs ...models.Transaction) {
	t.Helper()
	for i := range txs {
		if err := repo.Insert(context.Background(), &txs[i]); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 12, 0, 0, 0, time.UTC)
}

func TestQueryCategoryIsCaseInsensitiveSubstring(t *testing.T) {
	repo := New().Transactions()
	seed(t, repo,
		models.Transaction{ID: "1", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Amount: 50, Date: day(1)},
		models.Transaction{ID: "2", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Amount: 70, Date: day(2)},
		models.Transaction{ID: "3", UserID: "u1", Category: "Rent", Type: models.TransactionExpense, Amount: 900, Date: day(3)},
	)

	page, err := repo.Query(context.Background(), "u1", models.TransactionFilter{Category: "foo"}, 1, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if page.Total != 2 || len(page.Transactions) != 2 {
		t.Fatalf("got %d of %d, want both Food records", len(page.Transactions), page.Total)
	}
}

func TestQueryCategoryIsLiteral(t *testing.T) {
	repo := New().Transactions()
	seed(t, repo,
		models.Transaction{ID: "1", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Date: day(1)},
	)

	page, err := repo.Query(context.Background(), "u1", models.TransactionFilter{Category: ".*"}, 1, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("regex metacharacters matched %d records, want 0", page.Total)
	}
}

func TestQueryFiltersAndOwnership(t *testing.T) {
	repo := New().Transactions()
	seed(t, repo,
		models.Transaction{ID: "1", UserID: "u1", Category: "Salary", Type: models.TransactionIncome, Date: day(1)},
		models.Transaction{ID: "2", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Date: day(1)},
		models.Transaction{ID: "3", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Date: day(2)},
		models.Transaction{ID: "4", UserID: "u2", Category: "Food", Type: models.TransactionExpense, Date: day(1)},
	)
	june1, err := models.ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}

	tests := []struct {
		name    string
		userID  string
		filter  models.TransactionFilter
		wantIDs []string
	}{
		{"all of u1", "u1", models.TransactionFilter{}, []string{"3", "2", "1"}},
		{"income only", "u1", models.TransactionFilter{Type: models.TransactionIncome}, []string{"1"}},
		{"expense on june 1", "u1", models.TransactionFilter{Type: models.TransactionExpense, Day: &june1}, []string{"2"}},
		{"u2 sees only own", "u2", models.TransactionFilter{}, []string{"4"}},
		{"unknown user", "u3", models.TransactionFilter{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.Query(context.Background(), tt.userID, tt.filter, 1, 10)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			var got []string
			for _, tx := range page.Transactions {
				got = append(got, tx.ID)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.wantIDs) {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestQueryPagination(t *testing.T) {
	repo := New().Transactions()
	for i := 1; i <= 23; i++ {
		seed(t, repo, models.Transaction{
			ID:     fmt.Sprintf("%02d", i),
			UserID: "u1",
			Type:   models.TransactionExpense,
			Date:   day(1),
		})
	}

	page, err := repo.Query(context.Background(), "u1", models.TransactionFilter{}, 1, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if page.TotalPages != 3 || page.Total != 23 {
		t.Errorf("TotalPages = %d, Total = %d, want 3 and 23", page.TotalPages, page.Total)
	}
	if page.Transactions[0].ID != "23" {
		t.Errorf("equal dates must tie-break by id descending, first = %s", page.Transactions[0].ID)
	}

	last, err := repo.Query(context.Background(), "u1", models.TransactionFilter{}, 3, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(last.Transactions) != 3 {
		t.Errorf("last page has %d items, want 3", len(last.Transactions))
	}

	beyond, err := repo.Query(context.Background(), "u1", models.TransactionFilter{}, 4, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(beyond.Transactions) != 0 || beyond.Total != 23 {
		t.Errorf("page past the end: %d items, total %d; want 0 and 23", len(beyond.Transactions), beyond.Total)
	}
	if beyond.Transactions == nil {
		t.Error("page past the end must be an empty slice, not nil")
	}
}

func TestOwnershipOnMutations(t *testing.T) {
	repo := New().Transactions()
	seed(t, repo, models.Transaction{ID: "1", UserID: "owner", Category: "Food", Amount: 5, Date: day(1)})
	ctx := context.Background()

	if tx, err := repo.FindByID(ctx, "intruder", "1"); err != nil || tx != nil {
		t.Errorf("FindByID by intruder = %v, %v; want nil, nil", tx, err)
	}
	if tx, err := repo.Replace(ctx, "intruder", "1", &models.Transaction{Category: "Hacked"}); err != nil || tx != nil {
		t.Errorf("Replace by intruder = %v, %v; want nil, nil", tx, err)
	}
	if tx, err := repo.Delete(ctx, "intruder", "1"); err != nil || tx != nil {
		t.Errorf("Delete by intruder = %v, %v; want nil, nil", tx, err)
	}

	got, err := repo.FindByID(ctx, "owner", "1")
	if err != nil || got == nil || got.Category != "Food" {
		t.Fatalf("owner record changed: %+v, %v", got, err)
	}
}

func TestReplaceKeepsIdentity(t *testing.T) {
	repo := New().Transactions()
	created := day(1)
	seed(t, repo, models.Transaction{ID: "1", UserID: "owner", Category: "Food", CreatedAt: created, Date: day(1)})

	updated, err := repo.Replace(context.Background(), "owner", "1", &models.Transaction{
		Category:  "Groceries",
		Type:      models.TransactionExpense,
		Amount:    12,
		UpdatedAt: day(5),
		Date:      day(4),
	})
	if err != nil || updated == nil {
		t.Fatalf("Replace = %v, %v", updated, err)
	}
	if updated.ID != "1" || updated.UserID != "owner" || !updated.CreatedAt.Equal(created) {
		t.Errorf("identity fields changed: %+v", updated)
	}
	if updated.Category != "Groceries" || updated.Amount != 12 {
		t.Errorf("fields not replaced: %+v", updated)
	}
}

func TestSummarizeByCategory(t *testing.T) {
	repo := New().Transactions()
	seed(t, repo,
		models.Transaction{ID: "1", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Amount: 50},
		models.Transaction{ID: "2", UserID: "u1", Category: "Food", Type: models.TransactionExpense, Amount: 70},
		models.Transaction{ID: "3", UserID: "u2", Category: "Food", Type: models.TransactionExpense, Amount: 1000},
	)

	totals, err := repo.SummarizeByCategory(context.Background(), "u1")
	if err != nil {
		t.Fatalf("SummarizeByCategory failed: %v", err)
	}
	summaries := totals.Summaries()
	if len(summaries) != 1 || summaries[0].Total.IntPart() != 120 || summaries[0].Count != 2 {
		t.Errorf("unexpected summaries %+v", summaries)
	}
}

func TestUsersUniqueEmail(t *testing.T) {
	users := New().Users()
	ctx := context.Background()

	if err := users.Insert(ctx, &models.User{ID: "1", Email: "a@example.com"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	err := users.Insert(ctx, &models.User{ID: "2", Email: "A@example.com"})
	if !errors.Is(err, service.ErrConflict) {
		t.Errorf("duplicate email error = %v, want ErrConflict", err)
	}

	found, err := users.FindByEmail(ctx, "a@example.com")
	if err != nil || found == nil || found.ID != "1" {
		t.Errorf("FindByEmail = %+v, %v", found, err)
	}
	missing, err := users.FindByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("FindByID(nope) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestChatHistoryIsBounded(t *testing.T) {
	chats := New().Chats()
	ctx := context.Background()

	empty, err := chats.Fetch(ctx, "u1")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("Fetch on new user = %v, %v; want empty slice", empty, err)
	}

	for i := 1; i <= 31; i++ {
		msg := models.ChatMessage{Question: fmt.Sprintf("q%d", i), Answer: fmt.Sprintf("a%d", i)}
		if err := chats.Append(ctx, "u1", msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := chats.Fetch(ctx, "u1")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != models.MaxChatMessages {
		t.Fatalf("len = %d, want %d", len(got), models.MaxChatMessages)
	}
	if got[0].Question != "q2" {
		t.Errorf("oldest = %s, want q2", got[0].Question)
	}
	if got[len(got)-1].Question != "q31" {
		t.Errorf("newest = %s, want q31", got[len(got)-1].Question)
	}
}
