package service

import (
	"context"
	"fmt"
	"strings"

	"finance-tracker/api/llm"
	"finance-tracker/api/logger"
	"finance-tracker/api/models"

	"go.uber.org/zap"
)

// NoTransactionsMessage is returned instead of calling the model when a user has no history.
const NoTransactionsMessage = "No transactions found."

// AIService assembles a user's transactions into prompts and normalizes the model output.
type AIService struct {
	transactions TransactionRepository
	chats        *ChatService
	generator    llm.Generator
	window       int64
}

// NewAIService embeds at most window of the most recent transactions in each prompt.
func NewAIService(transactions TransactionRepository, chats *ChatService, generator llm.Generator, window int) *AIService {
	if window <= 0 {
		window = 1000
	}
	return &AIService{
		transactions: transactions,
		chats:        chats,
		generator:    generator,
		window:       int64(window),
	}
}

// promptContext returns nil when the user has no transactions.
func (s *AIService) promptContext(ctx context.Context, userID string) (*llm.PromptContext, error) {
	recent, err := s.transactions.Query(ctx, userID, models.TransactionFilter{}, 1, s.window)
	if err != nil {
		return nil, fmt.Errorf("%w: loading transactions: %v", ErrStore, err)
	}
	if recent.Total == 0 || len(recent.Transactions) == 0 {
		return nil, nil
	}

	totals, err := s.transactions.SummarizeByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: summarizing transactions: %v", ErrStore, err)
	}

	return &llm.PromptContext{
		Recent:    recent.Transactions,
		Total:     recent.Total,
		Summaries: totals.Summaries(),
	}, nil
}

func (s *AIService) generate(ctx context.Context, userID, operation, prompt string, opts llm.GenerateOptions) (string, error) {
	text, err := s.generator.Generate(ctx, prompt, opts)
	if err != nil {
		logger.Get().Error("model call failed",
			zap.String("user_id", userID),
			zap.String("operation", operation),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return text, nil
}

func (s *AIService) Insights(ctx context.Context, userID string) (*models.Insights, error) {
	pc, err := s.promptContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return &models.Insights{Insights: NoTransactionsMessage}, nil
	}

	text, err := s.generate(ctx, userID, "insights", llm.InsightsPrompt(*pc), llm.InsightsOptions)
	if err != nil {
		return nil, err
	}
	return &models.Insights{Insights: text}, nil
}

func (s *AIService) Forecast(ctx context.Context, userID string) (*models.Forecast, error) {
	pc, err := s.promptContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return &models.Forecast{
			Predictions: map[string]models.CategoryForecast{},
			Summary:     NoTransactionsMessage,
		}, nil
	}

	text, err := s.generate(ctx, userID, "forecast", llm.ForecastPrompt(*pc), llm.ForecastOptions)
	if err != nil {
		return nil, err
	}
	forecast := llm.NormalizeForecast(text)
	return &forecast, nil
}

func (s *AIService) Recommend(ctx context.Context, userID string) (*models.Recommendations, error) {
	pc, err := s.promptContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return &models.Recommendations{
			Recommendations: []models.Recommendation{},
			Summary:         NoTransactionsMessage,
		}, nil
	}

	text, err := s.generate(ctx, userID, "recommendations", llm.RecommendationsPrompt(*pc), llm.RecommendationsOptions)
	if err != nil {
		return nil, err
	}
	recs := llm.NormalizeRecommendations(text)
	return &recs, nil
}

// Ask answers a free-form question from the user's transactions and records the exchange.
func (s *AIService) Ask(ctx context.Context, userID, question string) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}

	pc, err := s.promptContext(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return &models.Answer{Question: question, Answer: NoTransactionsMessage}, nil
	}

	answer, err := s.generate(ctx, userID, "query", llm.QueryPrompt(*pc, question), llm.QueryOptions)
	if err != nil {
		return nil, err
	}

	if err := s.chats.Append(ctx, userID, question, answer); err != nil {
		return nil, err
	}
	return &models.Answer{Question: question, Answer: answer}, nil
}

// History returns the user's stored exchanges, oldest first.
func (s *AIService) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	return s.chats.Fetch(ctx, userID)
}
