package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/types"
)

// MockTokenValidator is a mock token validator for testing
type MockTokenValidator struct {
	mock.Mock
}

// ValidateToken validates a token and returns claims
func (v *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := v.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockAuthService is a mock implementation of the auth service
type MockAuthService struct {
	MockTokenValidator
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, service.TargetSource, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(service.TargetSource), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *types.TokenClaims, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(2) == nil {
		return "", nil, nil, args.Error(3)
	}
	return args.String(0), args.Get(1).(*types.TokenClaims), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	return m.Called(claims).Error(0)
}

// MockProfileService is a mock implementation of the profile service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, bool, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

// MockFoodService is a mock implementation of the food service
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) Classify(ctx context.Context, userID uuid.UUID, image []byte, filename string, topK int) (*service.Classification, error) {
	args := m.Called(userID, image, filename, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Classification), args.Error(1)
}

func (m *MockFoodService) Analyze(ctx context.Context, userID uuid.UUID, foodName string) (*service.FoodAnalysis, error) {
	args := m.Called(userID, foodName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FoodAnalysis), args.Error(1)
}

// MockMealService is a mock implementation of the meal service
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) LogMeal(ctx context.Context, user *models.User, in service.LogMealInput) (*models.FoodLogEntry, *models.DailyNutritionTotal, error) {
	args := m.Called(user, in)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.FoodLogEntry), args.Get(1).(*models.DailyNutritionTotal), args.Error(2)
}

func (m *MockMealService) Today(ctx context.Context, user *models.User) (*service.DaySummary, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DaySummary), args.Error(1)
}

// MockReconciler is a mock implementation of the daily totals reconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Today(user *models.User) string {
	args := m.Called(user)
	return args.String(0)
}

func (m *MockReconciler) Reconcile(ctx context.Context, userID uuid.UUID, date string) (*models.DailyNutritionTotal, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyNutritionTotal), args.Error(1)
}

// StubCompleter replays canned completions in order, repeating the last.
type StubCompleter struct {
	Responses []string
	Err       error
	Prompts   []string
}

func (s *StubCompleter) Complete(ctx context.Context, prompt string, opts service.CompletionOptions) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", nil
	}
	i := len(s.Prompts) - 1
	if i >= len(s.Responses) {
		i = len(s.Responses) - 1
	}
	return s.Responses[i], nil
}

// StubClassifier returns fixed predictions.
type StubClassifier struct {
	Predictions []service.Prediction
	Err         error
}

func (s *StubClassifier) Classify(ctx context.Context, image []byte, filename string, topK int) ([]service.Prediction, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Predictions) > topK {
		return s.Predictions[:topK], nil
	}
	return s.Predictions, nil
}

var (
	_ service.IAuthService    = (*MockAuthService)(nil)
	_ service.IProfileService = (*MockProfileService)(nil)
	_ service.IFoodService    = (*MockFoodService)(nil)
	_ service.IMealService    = (*MockMealService)(nil)
	_ service.IReconciler     = (*MockReconciler)(nil)
	_ service.Completer       = (*StubCompleter)(nil)
	_ service.Classifier      = (*StubClassifier)(nil)
)
