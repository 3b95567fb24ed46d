package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/auth/model"
	"library-api/internal/domains/auth/service"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
)

type AuthHandler struct {
	service service.ServiceInterface
}

func NewAuthHandler(svc service.ServiceInterface) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleAuthError(c, model.ErrMissingField)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		model.HandleAuthError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// Protected GET /protected
func (h *AuthHandler) Protected(c *gin.Context) {
	identity := c.GetString(middleware.IdentityKey)
	response.JSON(c, http.StatusOK, model.WelcomeResponse{Message: "Welcome, " + identity + "!"})
}
