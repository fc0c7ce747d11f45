package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// FoodLogRepository defines food log persistence operations.
type FoodLogRepository interface {
	Create(ctx context.Context, entry *models.FoodLogEntry) error
	ListByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]models.FoodLogEntry, error)
	SumByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (nutrition.Macros, int, error)
}

type foodLogRepository struct {
	db *gorm.DB
}

// NewFoodLogRepository creates a new food log repository.
func NewFoodLogRepository(db *gorm.DB) FoodLogRepository {
	return &foodLogRepository{db: db}
}

// Create inserts a food log entry.
func (r *foodLogRepository) Create(ctx context.Context, entry *models.FoodLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByUserAndDate returns the day's entries ordered by consumption time.
func (r *foodLogRepository) ListByUserAndDate(ctx context.Context, userID uuid.UUID, date string) ([]models.FoodLogEntry, error) {
	entries := []models.FoodLogEntry{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("consumed_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SumByUserAndDate totals the day's entries in SQL and returns the entry count.
func (r *foodLogRepository) SumByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (nutrition.Macros, int, error) {
	var row struct {
		Calories float64
		Protein  float64
		Carbs    float64
		Fat      float64
		Meals    int
	}
	err := r.db.WithContext(ctx).
		Model(&models.FoodLogEntry{}).
		Select("COALESCE(SUM(calories), 0) AS calories, "+
			"COALESCE(SUM(protein), 0) AS protein, "+
			"COALESCE(SUM(carbs), 0) AS carbs, "+
			"COALESCE(SUM(fat), 0) AS fat, "+
			"COUNT(*) AS meals").
		Where("user_id = ? AND date = ?", userID, date).
		Scan(&row).Error
	if err != nil {
		return nutrition.Macros{}, 0, err
	}
	return nutrition.Macros{
		Calories: row.Calories,
		Protein:  row.Protein,
		Carbs:    row.Carbs,
		Fat:      row.Fat,
	}, row.Meals, nil
}
