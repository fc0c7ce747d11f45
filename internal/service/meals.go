package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/repository"
)

// LogMealInput is a meal the user confirmed eating.
type LogMealInput struct {
	FoodName       string
	Macros         nutrition.Macros
	Recommendation string
	Pros           []string
	Cons           []string
	Summary        string
	AIAnalysis     string
	ImageURL       string
}

// DaySummary is a day's running totals and the meals behind them.
type DaySummary struct {
	Date   string
	Totals *models.DailyNutritionTotal
	Meals  []models.FoodLogEntry
}

// MealService records meals and reads back the day.
type MealService struct {
	store      *repository.Store
	aggregator *DailyAggregator
	calendar   *Calendar
}

// NewMealService creates a new MealService.
func NewMealService(store *repository.Store, aggregator *DailyAggregator, calendar *Calendar) *MealService {
	return &MealService{store: store, aggregator: aggregator, calendar: calendar}
}

// LogMeal inserts the food log entry and adds its macros to today's totals
// in one transaction, then returns the entry and the updated totals.
func (s *MealService) LogMeal(ctx context.Context, user *models.User, in LogMealInput) (*models.FoodLogEntry, *models.DailyNutritionTotal, error) {
	if err := validateMeal(&in); err != nil {
		return nil, nil, err
	}

	now := s.calendar.Now(user.Timezone)
	entry := &models.FoodLogEntry{
		UserID:         user.ID,
		FoodName:       in.FoodName,
		Calories:       in.Macros.Calories,
		Protein:        in.Macros.Protein,
		Carbs:          in.Macros.Carbs,
		Fat:            in.Macros.Fat,
		Recommendation: in.Recommendation,
		Pros:           models.StringList(in.Pros),
		Cons:           models.StringList(in.Cons),
		Summary:        in.Summary,
		AIAnalysis:     in.AIAnalysis,
		ImageURL:       in.ImageURL,
		Date:           now.Format(DateLayout),
		ConsumedAt:     now,
	}

	var totals *models.DailyNutritionTotal
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx *repository.Store) error {
		if err := tx.FoodLogs.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to insert food log: %w", err)
		}
		if err := RecordMealOn(ctx, tx, user.ID, entry.Date, entry.Macros()); err != nil {
			return err
		}
		var err error
		totals, err = tx.DailyNutrition.FindByUserAndDate(ctx, user.ID, entry.Date)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[MealService] Logged %q for %s on %s", entry.FoodName, user.ID, entry.Date)
	return entry, totals, nil
}

// Today returns the user's totals (zero if nothing logged) and meals for
// today, meals ordered by consumption time.
func (s *MealService) Today(ctx context.Context, user *models.User) (*DaySummary, error) {
	date := s.aggregator.Today(user)

	totals, err := s.aggregator.GetDay(ctx, user.ID, date)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.FoodLogs.ListByUserAndDate(ctx, user.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list food log: %w", err)
	}

	return &DaySummary{Date: date, Totals: totals, Meals: meals}, nil
}

func validateMeal(in *LogMealInput) error {
	in.FoodName = strings.TrimSpace(in.FoodName)
	if in.FoodName == "" {
		return apperrors.Validation("Missing required fields")
	}
	for _, v := range []float64{in.Macros.Calories, in.Macros.Protein, in.Macros.Carbs, in.Macros.Fat} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return apperrors.Validation("Nutrition values must be non-negative numbers")
		}
	}

	in.Recommendation = strings.ToLower(strings.TrimSpace(in.Recommendation))
	if in.Recommendation == "" {
		in.Recommendation = models.RecommendationModerate
	}
	if !models.ValidRecommendation(in.Recommendation) {
		return apperrors.Validation("Unknown recommendation")
	}

	if in.Pros == nil {
		in.Pros = []string{}
	}
	if in.Cons == nil {
		in.Cons = []string{}
	}
	return nil
}
