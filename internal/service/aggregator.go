package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/repository"
)

// DailyAggregator maintains one running total per user per calendar day.
type DailyAggregator struct {
	store    *repository.Store
	calendar *Calendar
}

// NewDailyAggregator creates an aggregator over store.
func NewDailyAggregator(store *repository.Store, calendar *Calendar) *DailyAggregator {
	return &DailyAggregator{store: store, calendar: calendar}
}

// Today returns the user's current calendar date.
func (a *DailyAggregator) Today(user *models.User) string {
	return a.calendar.Today(user.Timezone)
}

// GetToday returns today's totals, or a zero row when nothing is logged yet.
func (a *DailyAggregator) GetToday(ctx context.Context, user *models.User) (*models.DailyNutritionTotal, error) {
	return a.GetDay(ctx, user.ID, a.Today(user))
}

// GetDay returns the totals for date, or a zero row when none exists.
func (a *DailyAggregator) GetDay(ctx context.Context, userID uuid.UUID, date string) (*models.DailyNutritionTotal, error) {
	total, err := a.store.DailyNutrition.FindByUserAndDate(ctx, userID, date)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &models.DailyNutritionTotal{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load daily totals: %w", err)
	}
	return total, nil
}

// RecordMeal adds m to the user's totals for today and returns the date used.
func (a *DailyAggregator) RecordMeal(ctx context.Context, user *models.User, m nutrition.Macros) (string, error) {
	date := a.Today(user)
	return date, RecordMealOn(ctx, a.store, user.ID, date, m)
}

// RecordMealOn adds m to the totals for date through store, which may be
// bound to a transaction.
func RecordMealOn(ctx context.Context, store *repository.Store, userID uuid.UUID, date string, m nutrition.Macros) error {
	if err := store.DailyNutrition.AddMeal(ctx, userID, date, m); err != nil {
		return fmt.Errorf("failed to update daily totals: %w", err)
	}
	return nil
}

// Reconcile rebuilds the totals for date from the food log and returns them.
func (a *DailyAggregator) Reconcile(ctx context.Context, userID uuid.UUID, date string) (*models.DailyNutritionTotal, error) {
	if !ValidDate(date) {
		return nil, apperrors.Validation("date must be YYYY-MM-DD")
	}

	var result *models.DailyNutritionTotal
	err := a.store.WithTransaction(ctx, func(ctx context.Context, tx *repository.Store) error {
		sum, meals, err := tx.FoodLogs.SumByUserAndDate(ctx, userID, date)
		if err != nil {
			return fmt.Errorf("failed to sum food log: %w", err)
		}
		if err := tx.DailyNutrition.Overwrite(ctx, userID, date, sum, meals); err != nil {
			return fmt.Errorf("failed to overwrite daily totals: %w", err)
		}
		result, err = tx.DailyNutrition.FindByUserAndDate(ctx, userID, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
