package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/middleware"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/types"
)

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message         string            `json:"message"`
	UserID          string            `json:"userId"`
	NutritionalData nutrition.Targets `json:"nutritionalData"`
	TargetSource    string            `json:"targetSource"`
}

// SigninResponse carries the session token.
type SigninResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
		auth.POST("/logout", middleware.AuthMiddleware(h.authService), h.Logout)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("All required fields must be provided"))
		return
	}

	user, source, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Age:              req.Age,
		HeightCm:         req.Height,
		WeightKg:         req.Weight,
		Gender:           req.Gender,
		MedicalCondition: req.MedicalCondition,
		Timezone:         req.Timezone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{
		Message:         "User created successfully",
		UserID:          user.ID.String(),
		NutritionalData: user.Targets(),
		TargetSource:    string(source),
	})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req types.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	token, claims, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, SigninResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		_ = c.Error(apperrors.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
