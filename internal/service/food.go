package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/repository"
)

// ClassifiedFood is a classifier prediction with its table macros attached.
type ClassifiedFood struct {
	Prediction
	Nutrition nutrition.Macros `json:"nutritionalData"`
	Known     bool             `json:"known"`
}

// Classification is the outcome of classifying one photo.
type Classification struct {
	Predictions []ClassifiedFood
	ImageURL    string
}

// FoodAnalysis is an advisory verdict plus the numbers behind it.
type FoodAnalysis struct {
	FoodName   string
	Food       nutrition.Macros
	Known      bool
	Analysis   *Analysis
	User       *models.User
	Consumed   *models.DailyNutritionTotal
	Projection nutrition.Projection
}

// FoodService ties classification, lookup and advice together.
type FoodService struct {
	users      repository.UserRepository
	aggregator *DailyAggregator
	advisor    *SuitabilityAdvisor
	classifier Classifier
	images     ImageStore
}

// NewFoodService creates a FoodService. images may be nil when no bucket is
// configured.
func NewFoodService(users repository.UserRepository, aggregator *DailyAggregator, advisor *SuitabilityAdvisor, classifier Classifier, images ImageStore) *FoodService {
	return &FoodService{
		users:      users,
		aggregator: aggregator,
		advisor:    advisor,
		classifier: classifier,
		images:     images,
	}
}

// Classify ranks food labels for the image and enriches each with lookup
// macros. The image is uploaded when an image store is configured; an upload
// failure is logged and does not fail classification.
func (s *FoodService) Classify(ctx context.Context, userID uuid.UUID, image []byte, filename string, topK int) (*Classification, error) {
	if len(image) == 0 {
		return nil, apperrors.Validation("Image is required")
	}
	if topK < 1 || topK > MaxTopK {
		return nil, apperrors.Validation(fmt.Sprintf("top_k must be an integer between 1 and %d", MaxTopK))
	}
	if s.classifier == nil {
		return nil, fmt.Errorf("%w: no classifier configured", apperrors.ErrClassificationFailed)
	}

	predictions, err := s.classifier.Classify(ctx, image, filename, topK)
	if err != nil {
		log.Printf("[FoodService] Classification failed for %s: %v", userID, err)
		return nil, err
	}

	result := &Classification{Predictions: make([]ClassifiedFood, 0, len(predictions))}
	for _, p := range predictions {
		macros, known := nutrition.Lookup(p.Label)
		result.Predictions = append(result.Predictions, ClassifiedFood{Prediction: p, Nutrition: macros, Known: known})
	}

	if s.images != nil {
		url, err := s.images.Upload(ctx, userID, image, filename)
		if err != nil {
			log.Printf("[FoodService] Image upload failed for %s: %v", userID, err)
		} else {
			result.ImageURL = url
		}
	}

	return result, nil
}

// Analyze advises whether foodName suits the rest of the user's day. The
// user must have daily targets.
func (s *FoodService) Analyze(ctx context.Context, userID uuid.UUID, foodName string) (*FoodAnalysis, error) {
	foodName = strings.TrimSpace(foodName)
	if foodName == "" {
		return nil, apperrors.Validation("Food name is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.HasTargets() {
		return nil, apperrors.ErrProfileIncomplete
	}

	consumed, err := s.aggregator.GetToday(ctx, user)
	if err != nil {
		return nil, err
	}

	food, known := nutrition.Lookup(foodName)
	targets := user.Targets()

	analysis, projection, err := s.advisor.Advise(ctx, AdviceInput{
		Profile:    user.Profile(),
		BMI:        targets.BMI,
		Targets:    targets.Macros(),
		Consumed:   consumed.Macros(),
		MealsCount: consumed.MealsCount,
		FoodName:   foodName,
		Food:       food,
	})
	if err != nil {
		return nil, err
	}

	return &FoodAnalysis{
		FoodName:   foodName,
		Food:       food,
		Known:      known,
		Analysis:   analysis,
		User:       user,
		Consumed:   consumed,
		Projection: projection,
	}, nil
}
