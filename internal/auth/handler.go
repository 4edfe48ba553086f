package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Handler exchanges the admin key for a bearer token. Only the bcrypt hash
// of the key is held in memory after construction.
type Handler struct {
	Tokens  TokenService
	keyHash []byte
}

func NewHandler(tokens TokenService, adminKey string) *Handler {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminKey), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin key: %v", err)
	}
	return &Handler{Tokens: tokens, keyHash: hash}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/token", h.token)
}

type tokenRequest struct {
	Key string `json:"key" binding:"required"`
}

func (h *Handler) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.keyHash, []byte(req.Key)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid key"})
		return
	}

	token, exp, err := h.Tokens.Sign(RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token signing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp,
	})
}
