package service_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"finance-tracker/api/llm"
	"finance-tracker/api/memstore"
	"finance-tracker/api/models"
	"finance-tracker/api/service"
)

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
	opts    []llm.GenerateOptions
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.reply, f.err
}

type aiFixture struct {
	store *memstore.Store
	gen   *fakeGenerator
	ai    *service.AIService
	txs   *service.TransactionService
}

func newAIFixture(window int) *aiFixture {
	store := memstore.New()
	gen := &fakeGenerator{}
	chats := service.NewChatService(store.Chats())
	return &aiFixture{
		store: store,
		gen:   gen,
		ai:    service.NewAIService(store.Transactions(), chats, gen, window),
		txs:   service.NewTransactionService(store.Transactions()),
	}
}

func (f *aiFixture) addFood(t *testing.T, userID string, amounts ...float64) {
	t.Helper()
	for _, a := range amounts {
		in := models.TransactionInput{Category: "Food", Type: models.TransactionExpense, Amount: amount(a)}
		if _, err := f.txs.Create(context.Background(), userID, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
}

func TestNoTransactionsSkipsModel(t *testing.T) {
	f := newAIFixture(100)
	ctx := context.Background()

	insights, err := f.ai.Insights(ctx, "u1")
	if err != nil || insights.Insights != service.NoTransactionsMessage {
		t.Errorf("Insights = %+v, %v", insights, err)
	}
	forecast, err := f.ai.Forecast(ctx, "u1")
	if err != nil || forecast.Summary != service.NoTransactionsMessage || forecast.Predictions == nil {
		t.Errorf("Forecast = %+v, %v", forecast, err)
	}
	recs, err := f.ai.Recommend(ctx, "u1")
	if err != nil || recs.Summary != service.NoTransactionsMessage || recs.Recommendations == nil {
		t.Errorf("Recommend = %+v, %v", recs, err)
	}
	answer, err := f.ai.Ask(ctx, "u1", "How much did I spend?")
	if err != nil || answer.Answer != service.NoTransactionsMessage {
		t.Errorf("Ask = %+v, %v", answer, err)
	}

	if f.gen.calls != 0 {
		t.Errorf("model called %d times, want 0", f.gen.calls)
	}

	history, err := f.ai.History(ctx, "u1")
	if err != nil || len(history) != 0 {
		t.Errorf("History = %v, %v; want empty", history, err)
	}
}

func TestForecastNormalizesFencedJSON(t *testing.T) {
	f := newAIFixture(100)
	f.addFood(t, "u1", 50, 70)
	f.gen.reply = "```json\n{\"predictions\":{\"Food\":{\"predicted\":500,\"budget\":550}},\"summary\":\"ok\"}\n```"

	got, err := f.ai.Forecast(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	want := &models.Forecast{
		Predictions: map[string]models.CategoryForecast{"Food": {Predicted: 500, Budget: 550}},
		Summary:     "ok",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Forecast = %+v, want %+v", got, want)
	}
	if f.gen.opts[0] != llm.ForecastOptions {
		t.Errorf("options = %+v, want %+v", f.gen.opts[0], llm.ForecastOptions)
	}
	if !strings.Contains(f.gen.prompts[0], `"predictions"`) {
		t.Error("forecast prompt lacks the output schema")
	}
}

func TestRecommendFallsBackToSummary(t *testing.T) {
	f := newAIFixture(100)
	f.addFood(t, "u1", 10)
	f.gen.reply = "Eat out less."

	got, err := f.ai.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if got.Summary != "Eat out less." || got.Recommendations == nil || len(got.Recommendations) != 0 {
		t.Errorf("Recommend = %+v", got)
	}
}

func TestModelFailureIsUpstreamError(t *testing.T) {
	f := newAIFixture(100)
	f.addFood(t, "u1", 10)
	f.gen.err = errors.New("deadline exceeded")

	if _, err := f.ai.Insights(context.Background(), "u1"); !errors.Is(err, service.ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
	if f.gen.calls != 1 {
		t.Errorf("model called %d times, want exactly one attempt", f.gen.calls)
	}
}

func TestContextWindowIsBoundedButSummarizesEverything(t *testing.T) {
	f := newAIFixture(3)
	f.addFood(t, "u1", 1, 2, 3, 4, 5)
	f.addFood(t, "u2", 1000)
	f.gen.reply = "fine"

	if _, err := f.ai.Insights(context.Background(), "u1"); err != nil {
		t.Fatalf("Insights failed: %v", err)
	}
	prompt := f.gen.prompts[0]
	if !strings.Contains(prompt, "Most recent 3 of 5 transactions") {
		t.Errorf("window not applied: %s", prompt)
	}
	if !strings.Contains(prompt, `"total":"15"`) {
		t.Errorf("category totals must cover the whole history: %s", prompt)
	}
	if strings.Contains(prompt, "1000") {
		t.Errorf("another user's data leaked into the prompt: %s", prompt)
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	f := newAIFixture(100)
	f.addFood(t, "u1", 10)

	for _, q := range []string{"", "   "} {
		if _, err := f.ai.Ask(context.Background(), "u1", q); !errors.Is(err, service.ErrValidation) {
			t.Errorf("Ask(%q): err = %v, want ErrValidation", q, err)
		}
	}
	if f.gen.calls != 0 {
		t.Errorf("model called %d times, want 0", f.gen.calls)
	}
}

func TestAskRecordsBoundedHistory(t *testing.T) {
	f := newAIFixture(100)
	f.addFood(t, "u1", 10)
	ctx := context.Background()

	for i := 1; i <= 31; i++ {
		f.gen.reply = fmt.Sprintf("answer %d", i)
		got, err := f.ai.Ask(ctx, "u1", fmt.Sprintf("question %d", i))
		if err != nil {
			t.Fatalf("Ask failed: %v", err)
		}
		if got.Answer != f.gen.reply {
			t.Errorf("Answer = %q, want %q", got.Answer, f.gen.reply)
		}
	}

	history, err := f.ai.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != models.MaxChatMessages {
		t.Fatalf("len = %d, want %d", len(history), models.MaxChatMessages)
	}
	if history[0].Question != "question 2" || history[29].Question != "question 31" {
		t.Errorf("history window = %q .. %q", history[0].Question, history[29].Question)
	}
	if !strings.Contains(f.gen.prompts[0], `User Question: "question 1"`) {
		t.Errorf("question not embedded: %s", f.gen.prompts[0])
	}
	if f.gen.opts[0] != llm.QueryOptions {
		t.Errorf("options = %+v, want %+v", f.gen.opts[0], llm.QueryOptions)
	}
}
