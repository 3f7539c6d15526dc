package handlers

import (
	"net/http"

	"finance-tracker/api/middleware"

	"github.com/gin-gonic/gin"
)

type QueryRequest struct {
	Question string `json:"question"`
}

func (h *Handler) Insights(c *gin.Context) {
	insights, err := h.ai.Insights(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Insights generated", insights)
}

func (h *Handler) Predict(c *gin.Context) {
	forecast, err := h.ai.Forecast(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Forecast generated", forecast)
}

func (h *Handler) Recommendations(c *gin.Context) {
	recs, err := h.ai.Recommend(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Recommendations generated", recs)
}

func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if !bindJSON(c, &req) {
		return
	}

	answer, err := h.ai.Ask(c.Request.Context(), middleware.UserID(c), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Question answered", answer)
}

func (h *Handler) QueryHistory(c *gin.Context) {
	messages, err := h.ai.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Chat history fetched", gin.H{"messages": messages})
}
