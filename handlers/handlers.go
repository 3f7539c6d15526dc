package handlers

import (
	"finance-tracker/api/service"
)

// Handler serves the REST surface on top of the services.
type Handler struct {
	auth         *service.AuthService
	transactions *service.TransactionService
	ai           *service.AIService
}

func New(auth *service.AuthService, transactions *service.TransactionService, ai *service.AIService) *Handler {
	return &Handler{auth: auth, transactions: transactions, ai: ai}
}
