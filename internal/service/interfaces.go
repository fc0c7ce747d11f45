package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, TargetSource, error)
	Login(ctx context.Context, email, password string) (string, *types.TokenClaims, *models.User, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, bool, error)
}

// IFoodService defines the interface for classification and advice
type IFoodService interface {
	Classify(ctx context.Context, userID uuid.UUID, image []byte, filename string, topK int) (*Classification, error)
	Analyze(ctx context.Context, userID uuid.UUID, foodName string) (*FoodAnalysis, error)
}

// IMealService defines the interface for the daily food log
type IMealService interface {
	LogMeal(ctx context.Context, user *models.User, in LogMealInput) (*models.FoodLogEntry, *models.DailyNutritionTotal, error)
	Today(ctx context.Context, user *models.User) (*DaySummary, error)
}

// IReconciler rebuilds a day's totals from the food log
type IReconciler interface {
	Today(user *models.User) string
	Reconcile(ctx context.Context, userID uuid.UUID, date string) (*models.DailyNutritionTotal, error)
}

var (
	_ IAuthService    = (*AuthService)(nil)
	_ IProfileService = (*ProfileService)(nil)
	_ IFoodService    = (*FoodService)(nil)
	_ IMealService    = (*MealService)(nil)
	_ IReconciler     = (*DailyAggregator)(nil)
	_ Completer       = (*LLMService)(nil)
	_ Classifier      = (*HTTPClassifier)(nil)
	_ Classifier      = (*RekognitionClassifier)(nil)
	_ ImageStore      = (*S3ImageStore)(nil)
)
