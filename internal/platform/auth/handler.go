package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	r.POST("/auth/login", h.Login)
}

type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := h.svc.Login(req.Passphrase)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta. Tente novamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "Acesso autorizado com sucesso.",
	})
}
