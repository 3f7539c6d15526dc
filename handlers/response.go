package handlers

import (
	"errors"
	"net/http"
	"strings"

	"finance-tracker/api/logger"
	"finance-tracker/api/models"
	"finance-tracker/api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, models.Response{Status: models.StatusSuccess, Message: message, Data: data})
}

func respondFailed(c *gin.Context, status int, message string) {
	c.JSON(status, models.Response{Status: models.StatusFailed, Message: message})
}

// clientMessage strips the sentinel prefix so "validation error: amount is required"
// reaches the client as "amount is required".
func clientMessage(err error, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}

// respondError maps service errors onto status codes. Store and model failures
// are logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondFailed(c, http.StatusBadRequest, clientMessage(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		respondFailed(c, http.StatusBadRequest, clientMessage(err, service.ErrConflict))
	case errors.Is(err, service.ErrAuth):
		respondFailed(c, http.StatusUnauthorized, clientMessage(err, service.ErrAuth))
	case errors.Is(err, service.ErrNotFound):
		respondFailed(c, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, service.ErrUpstream):
		logger.Get().Error("model request failed", zap.String("path", c.FullPath()), zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "AI service unavailable")
	default:
		logger.Get().Error("request error", zap.String("path", c.FullPath()), zap.Error(err))
		respondFailed(c, http.StatusInternalServerError, "Internal server error")
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Get().Debug("error binding JSON", zap.Error(err))
		respondFailed(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
