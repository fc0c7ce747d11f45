package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/middleware"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/types"
)

const maxImageBytes = 10 << 20

// ClassifyResponse lists ranked predictions for an uploaded photo.
type ClassifyResponse struct {
	Success     bool                     `json:"success"`
	Predictions []service.ClassifiedFood `json:"predictions"`
	ImageURL    string                   `json:"imageUrl,omitempty"`
}

// ConsumptionTotals is a day's totals as shown next to an analysis.
type ConsumptionTotals struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	MealsCount    int     `json:"mealsCount"`
}

// TargetSummary is the user's daily targets.
type TargetSummary struct {
	DailyCalories float64 `json:"dailyCalories"`
	DailyProtein  float64 `json:"dailyProtein"`
	DailyCarbs    float64 `json:"dailyCarbs"`
	DailyFat      float64 `json:"dailyFat"`
}

// AnalyzeResponse is the verdict for a food plus the numbers behind it.
type AnalyzeResponse struct {
	Success            bool                 `json:"success"`
	FoodName           string               `json:"foodName"`
	NutritionalData    nutrition.Macros     `json:"nutritionalData"`
	KnownFood          bool                 `json:"knownFood"`
	Analysis           *service.Analysis    `json:"analysis"`
	UserProfile        TargetSummary        `json:"userProfile"`
	CurrentConsumption ConsumptionTotals    `json:"currentConsumption"`
	AfterConsumption   ConsumptionTotals    `json:"afterConsumption"`
	Projection         nutrition.Projection `json:"projection"`
}

type FoodHandler struct {
	foodService   service.IFoodService
	validator     middleware.TokenValidator
	analyzeLimit  *middleware.RateLimiter
	classifyLimit *middleware.RateLimiter
}

// NewFoodHandler creates a FoodHandler. Nil limiters disable rate limiting.
func NewFoodHandler(foodService service.IFoodService, validator middleware.TokenValidator, analyzeLimit, classifyLimit *middleware.RateLimiter) *FoodHandler {
	return &FoodHandler{
		foodService:   foodService,
		validator:     validator,
		analyzeLimit:  analyzeLimit,
		classifyLimit: classifyLimit,
	}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	food := router.Group("/food")
	food.Use(middleware.AuthMiddleware(h.validator))
	{
		food.POST("/classify", withLimiter(h.classifyLimit, h.Classify)...)
		food.POST("/analyze", withLimiter(h.analyzeLimit, h.Analyze)...)
	}
}

func withLimiter(rl *middleware.RateLimiter, handler gin.HandlerFunc) []gin.HandlerFunc {
	if rl == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{rl.RateLimitMiddleware(), handler}
}

func (h *FoodHandler) Classify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	topK, err := service.ClampTopK(c.PostForm("top_k"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(apperrors.Validation("Image is required"))
		return
	}
	if header.Size > maxImageBytes {
		_ = c.Error(apperrors.Validation("Image must be at most 10 MB"))
		return
	}
	file, err := header.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.foodService.Classify(c.Request.Context(), userID, image, header.Filename, topK)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{
		Success:     true,
		Predictions: result.Predictions,
		ImageURL:    result.ImageURL,
	})
}

func (h *FoodHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AnalyzeFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Validation("Food name is required"))
		return
	}

	result, err := h.foodService.Analyze(c.Request.Context(), userID, req.FoodName)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newAnalyzeResponse(result))
}

func newAnalyzeResponse(r *service.FoodAnalysis) AnalyzeResponse {
	targets := r.User.Targets()
	after := r.Projection.After
	return AnalyzeResponse{
		Success:         true,
		FoodName:        r.FoodName,
		NutritionalData: r.Food,
		KnownFood:       r.Known,
		Analysis:        r.Analysis,
		UserProfile: TargetSummary{
			DailyCalories: targets.DailyCalories,
			DailyProtein:  targets.DailyProtein,
			DailyCarbs:    targets.DailyCarbs,
			DailyFat:      targets.DailyFat,
		},
		CurrentConsumption: totalsOf(r.Consumed),
		AfterConsumption: ConsumptionTotals{
			TotalCalories: after.Calories,
			TotalProtein:  after.Protein,
			TotalCarbs:    after.Carbs,
			TotalFat:      after.Fat,
			MealsCount:    r.Consumed.MealsCount + 1,
		},
		Projection: r.Projection,
	}
}

func totalsOf(d *models.DailyNutritionTotal) ConsumptionTotals {
	return ConsumptionTotals{
		TotalCalories: d.TotalCalories,
		TotalProtein:  d.TotalProtein,
		TotalCarbs:    d.TotalCarbs,
		TotalFat:      d.TotalFat,
		MealsCount:    d.MealsCount,
	}
}
