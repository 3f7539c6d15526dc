package handlers

import (
	"net/http"

	"finance-tracker/api/middleware"
	"finance-tracker/api/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateUser(c *gin.Context) {
	var req service.SignupInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "User created successfully", result)
}

func (h *Handler) LoginUser(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Login successful", result)
}

// VerifyToken runs behind the auth middleware, so reaching it means the token is good.
func (h *Handler) VerifyToken(c *gin.Context) {
	claims, _ := c.Get(middleware.ClaimsKey)
	respondSuccess(c, http.StatusOK, "Token is valid", gin.H{
		"valid": true,
		"user":  claims,
	})
}
