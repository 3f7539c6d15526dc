package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts every route. requireAuth guards everything except signup, login and health.
func (h *Handler) Register(router gin.IRouter, requireAuth gin.HandlerFunc) {
	router.GET("/health", func(c *gin.Context) {
		respondSuccess(c, http.StatusOK, "ok", nil)
	})

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/createuser", h.CreateUser)
		authRoutes.POST("/loginuser", h.LoginUser)
		authRoutes.GET("/verifytoken", requireAuth, h.VerifyToken)
	}

	transactions := api.Group("/transactions", requireAuth)
	{
		transactions.GET("", h.ListTransactions)
		transactions.GET("/:id", h.GetTransaction)
		transactions.POST("", h.AddTransaction)
		transactions.PUT("/:id", h.UpdateTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}

	ai := api.Group("/ai", requireAuth)
	{
		ai.POST("/insights", h.Insights)
		ai.POST("/predict", h.Predict)
		ai.POST("/recommendations", h.Recommendations)
		ai.POST("/query", h.Query)
		ai.GET("/query", h.QueryHistory)
	}
}
