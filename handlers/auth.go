package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/photohub/photohub/internal/models"
	"github.com/photohub/photohub/internal/users"
	"github.com/photohub/photohub/pkg/logger"
)

// AuthHandler serves registration and login on top of the credential store.
type AuthHandler struct {
	usersSvc *users.Service
}

func NewAuthHandler(u *users.Service) *AuthHandler {
	return &AuthHandler{usersSvc: u}
}

// Register routes under the given group (mounted at /api in main).
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/register", h.RegisterUser)
}

// Login matches email and password exactly and returns the placeholder
// token. No route verifies the token afterwards.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, err := h.usersSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	switch err {
	case nil:
		c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: req.Email})
	case users.ErrStoreUnavailable:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "user database is missing"})
	case users.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
	default:
		logger.Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
	}
}

// RegisterUser appends a new credential record. Both fields are required;
// duplicate emails are rejected.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	err := h.usersSvc.Register(c.Request.Context(), req.Email, req.Password)
	switch err {
	case nil:
		c.JSON(http.StatusCreated, gin.H{"message": "user registered successfully"})
	case users.ErrAlreadyExists:
		c.JSON(http.StatusBadRequest, gin.H{"message": "user already exists"})
	default:
		logger.Errorf("registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
	}
}
