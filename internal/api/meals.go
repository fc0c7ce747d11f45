package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bangladiet/backend/internal/middleware"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/types"
)

type MealHandler struct {
	meals      service.IMealService
	reconciler service.IReconciler
	profiles   service.IProfileService
	validator  middleware.TokenValidator
}

func NewMealHandler(meals service.IMealService, reconciler service.IReconciler, profiles service.IProfileService, validator middleware.TokenValidator) *MealHandler {
	return &MealHandler{
		meals:      meals,
		reconciler: reconciler,
		profiles:   profiles,
		validator:  validator,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	logs := router.Group("/food/log")
	logs.Use(middleware.AuthMiddleware(h.validator))
	{
		logs.POST("", h.LogMeal)
		logs.GET("", h.Today)
		logs.POST("/reconcile", h.Reconcile)
	}
}

func (h *MealHandler) LogMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	entry, totals, err := h.meals.LogMeal(c.Request.Context(), user, service.LogMealInput{
		FoodName: req.FoodName,
		Macros: nutrition.Macros{
			Calories: *req.Calories,
			Protein:  *req.Protein,
			Carbs:    *req.Carbs,
			Fat:      *req.Fat,
		},
		Recommendation: req.Recommendation,
		Pros:           req.Pros,
		Cons:           req.Cons,
		Summary:        req.Summary,
		AIAnalysis:     req.AIAnalysis,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Food logged successfully",
		"foodLog":        entry,
		"dailyNutrition": totals,
	})
}

func (h *MealHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	day, err := h.meals.Today(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"date":           day.Date,
		"dailyNutrition": day.Totals,
		"foodLogs":       day.Meals,
	})
}

// Reconcile rebuilds a day's totals from the food log. The date defaults to
// the user's today.
func (h *MealHandler) Reconcile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(bindError(err))
		return
	}

	date := req.Date
	if date == "" {
		user, err := h.profiles.GetProfile(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		date = h.reconciler.Today(user)
	}

	totals, err := h.reconciler.Reconcile(c.Request.Context(), userID, date)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "dailyNutrition": totals})
}
