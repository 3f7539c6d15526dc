package service

import (
	"context"
	"fmt"
	"time"

	"finance-tracker/api/models"
)

// ChatService keeps the bounded question/answer history of each user.
type ChatService struct {
	repo ChatRepository
	now  func() time.Time
}

func NewChatService(repo ChatRepository) *ChatService {
	return &ChatService{repo: repo, now: time.Now}
}

// Append records one exchange; the repository drops the oldest entries beyond models.MaxChatMessages.
func (s *ChatService) Append(ctx context.Context, userID, question, answer string) error {
	msg := models.ChatMessage{
		Question:  question,
		Answer:    answer,
		CreatedAt: s.now(),
	}
	if err := s.repo.Append(ctx, userID, msg); err != nil {
		return fmt.Errorf("%w: appending chat message: %v", ErrStore, err)
	}
	return nil
}

// Fetch returns the history oldest first, or an empty slice when the user has none.
func (s *ChatService) Fetch(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	messages, err := s.repo.Fetch(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching chat history: %v", ErrStore, err)
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}
