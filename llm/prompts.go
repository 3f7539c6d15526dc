package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"finance-tracker/api/models"
)

// CannotAnswer is the reply the model is told to give when the data does not cover a question.
const CannotAnswer = "I cannot answer that."

// PromptContext is the bounded view of a user's history embedded in a prompt:
// the most recent transactions plus per-category totals over the whole history.
type PromptContext struct {
	Recent    []models.Transaction
	Total     int64
	Summaries []models.CategorySummary
}

type promptTransaction struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"paymentMode"`
	Description string  `json:"description,omitempty"`
}

const forecastSchema = `{
  "predictions": {
    "Food": { "predicted": number, "budget": number },
    "Rent": { "predicted": number, "budget": number },
    "Transport": { "predicted": number, "budget": number },
    ...
  },
  "summary": "short overall financial recommendation"
}`

const recommendationsSchema = `{
  "recommendations": [
    {"category": "Food", "advice": "Cook at home 3 times a week to save $120/month"},
    {"category": "Entertainment", "advice": "Cancel one streaming subscription to save $50/month"}
  ],
  "summary": "Overall money-saving advice"
}`

func InsightsPrompt(pc PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a finance assistant.\n")
	b.WriteString("Analyze the following transactions and:\n")
	b.WriteString("1. Suggest categories if missing.\n")
	b.WriteString("2. Detect unusual spending (e.g., large increases).\n")
	b.WriteString("3. Provide insights per category like \"You spent X% more on Food this month\".\n\n")
	writeData(&b, pc)
	return b.String()
}

func ForecastPrompt(pc PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a financial forecasting assistant.\n")
	b.WriteString("Based on the past transactions provided, do the following:\n")
	b.WriteString("1. Forecast next month's total expenses per category using historical trends.\n")
	b.WriteString("2. Suggest a budget limit for each category (about 10% higher than prediction).\n")
	b.WriteString("3. Return the result in strict JSON format with this structure:\n")
	b.WriteString(forecastSchema)
	b.WriteString("\nReturn only the JSON object.\n\n")
	writeData(&b, pc)
	return b.String()
}

func RecommendationsPrompt(pc PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a smart financial assistant.\n")
	b.WriteString("Analyze the following transactions and:\n")
	b.WriteString("1. Suggest actionable ways to save money.\n")
	b.WriteString("2. Recommend cheaper alternatives or subscriptions to cancel.\n")
	b.WriteString("3. Highlight categories where spending is unusually high.\n")
	b.WriteString("4. Return the result in JSON with this structure:\n")
	b.WriteString(recommendationsSchema)
	b.WriteString("\nReturn only the JSON object.\n\n")
	writeData(&b, pc)
	return b.String()
}

func QueryPrompt(pc PromptContext, question string) string {
	var b strings.Builder
	b.WriteString("You are a financial assistant.\n")
	b.WriteString("Answer the user's question based on the following transactions.\n")
	fmt.Fprintf(&b, "If the question is not answerable from the transactions, say %q\n\n", CannotAnswer)
	fmt.Fprintf(&b, "User Question: %q\n\n", question)
	writeData(&b, pc)
	return b.String()
}

func writeData(b *strings.Builder, pc PromptContext) {
	if len(pc.Summaries) > 0 {
		summaries, _ := json.Marshal(pc.Summaries)
		fmt.Fprintf(b, "Category totals over all %d transactions: %s\n", pc.Total, summaries)
	}

	recent := make([]promptTransaction, 0, len(pc.Recent))
	for _, t := range pc.Recent {
		recent = append(recent, promptTransaction{
			Date:        t.Date.UTC().Format(time.DateOnly),
			Category:    t.Category,
			Type:        string(t.Type),
			Amount:      t.Amount,
			PaymentMode: t.PaymentMode,
			Description: t.Description,
		})
	}
	data, _ := json.Marshal(recent)
	if int64(len(recent)) < pc.Total {
		fmt.Fprintf(b, "Most recent %d of %d transactions: %s\n", len(recent), pc.Total, data)
		return
	}
	fmt.Fprintf(b, "Transactions: %s\n", data)
}
