package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// DailyNutritionRepository defines daily aggregate persistence operations.
type DailyNutritionRepository interface {
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyNutritionTotal, error)
	AddMeal(ctx context.Context, userID uuid.UUID, date string, m nutrition.Macros) error
	Overwrite(ctx context.Context, userID uuid.UUID, date string, m nutrition.Macros, meals int) error
}

type dailyNutritionRepository struct {
	db *gorm.DB
}

// NewDailyNutritionRepository creates a new daily nutrition repository.
func NewDailyNutritionRepository(db *gorm.DB) DailyNutritionRepository {
	return &dailyNutritionRepository{db: db}
}

var dailyConflictColumns = []clause.Column{{Name: "user_id"}, {Name: "date"}}

// FindByUserAndDate returns apperrors.ErrNotFound when the day has no row.
func (r *dailyNutritionRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.DailyNutritionTotal, error) {
	var total models.DailyNutritionTotal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&total).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &total, nil
}

// AddMeal seeds the day's row with m and a count of one, or adds m to the
// existing row, in a single INSERT ... ON CONFLICT statement.
func (r *dailyNutritionRepository) AddMeal(ctx context.Context, userID uuid.UUID, date string, m nutrition.Macros) error {
	row := &models.DailyNutritionTotal{
		UserID:        userID,
		Date:          date,
		TotalCalories: m.Calories,
		TotalProtein:  m.Protein,
		TotalCarbs:    m.Carbs,
		TotalFat:      m.Fat,
		MealsCount:    1,
	}
	// Columns are table-qualified; postgres treats a bare name as ambiguous
	// with the EXCLUDED row.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: dailyConflictColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_calories": gorm.Expr("daily_nutrition_totals.total_calories + ?", m.Calories),
			"total_protein":  gorm.Expr("daily_nutrition_totals.total_protein + ?", m.Protein),
			"total_carbs":    gorm.Expr("daily_nutrition_totals.total_carbs + ?", m.Carbs),
			"total_fat":      gorm.Expr("daily_nutrition_totals.total_fat + ?", m.Fat),
			"meals_count":    gorm.Expr("daily_nutrition_totals.meals_count + 1"),
			"updated_at":     time.Now(),
		}),
	}).Create(row).Error
}

// Overwrite replaces the day's totals, creating the row if needed.
func (r *dailyNutritionRepository) Overwrite(ctx context.Context, userID uuid.UUID, date string, m nutrition.Macros, meals int) error {
	row := &models.DailyNutritionTotal{
		UserID:        userID,
		Date:          date,
		TotalCalories: m.Calories,
		TotalProtein:  m.Protein,
		TotalCarbs:    m.Carbs,
		TotalFat:      m.Fat,
		MealsCount:    meals,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: dailyConflictColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"total_calories", "total_protein", "total_carbs", "total_fat", "meals_count", "updated_at",
		}),
	}).Create(row).Error
}
