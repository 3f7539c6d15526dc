package handlers

import (
	"net/http"
	"strconv"

	"finance-tracker/api/middleware"
	"finance-tracker/api/models"
	"finance-tracker/api/service"

	"github.com/gin-gonic/gin"
)

// queryInt reads a positive integer parameter; anything unparsable falls back to zero
// and the service applies its default.
func queryInt(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (h *Handler) ListTransactions(c *gin.Context) {
	params := service.ListParams{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Date:     c.Query("date"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	page, err := h.transactions.List(c.Request.Context(), middleware.UserID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Transactions fetched successfully", page)
}

func (h *Handler) GetTransaction(c *gin.Context) {
	tx, err := h.transactions.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Transaction fetched successfully", tx)
}

func (h *Handler) AddTransaction(c *gin.Context) {
	var req models.TransactionInput
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Transaction added successfully", tx)
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	var req models.TransactionInput
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Transaction updated successfully", tx)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	if err := h.transactions.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Transaction deleted successfully", nil)
}
