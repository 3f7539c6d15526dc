package models

import "time"

// MaxChatMessages bounds a user's chat history; older exchanges are evicted first.
const MaxChatMessages = 30

type ChatMessage struct {
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type ChatRecord struct {
	UserID    string        `json:"userId" bson:"userId"`
	Messages  []ChatMessage `json:"messages" bson:"messages"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// TrimChat keeps the newest MaxChatMessages entries, oldest first.
func TrimChat(messages []ChatMessage) []ChatMessage {
	if len(messages) <= MaxChatMessages {
		return messages
	}
	return messages[len(messages)-MaxChatMessages:]
}
