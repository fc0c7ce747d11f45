package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// DailyNutritionTotal is the running sum of one user's meals for one date.
// It must always equal the sum of the matching FoodLogEntry rows.
type DailyNutritionTotal struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_user_date,priority:1" json:"userId"`
	Date          string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_user_date,priority:2" json:"date"`
	TotalCalories float64   `gorm:"not null;default:0" json:"totalCalories"`
	TotalProtein  float64   `gorm:"not null;default:0" json:"totalProtein"`
	TotalCarbs    float64   `gorm:"not null;default:0" json:"totalCarbs"`
	TotalFat      float64   `gorm:"not null;default:0" json:"totalFat"`
	MealsCount    int       `gorm:"not null;default:0" json:"mealsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (DailyNutritionTotal) TableName() string {
	return "daily_nutrition_totals"
}

func (d *DailyNutritionTotal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Macros returns the four running totals.
func (d *DailyNutritionTotal) Macros() nutrition.Macros {
	return nutrition.Macros{
		Calories: d.TotalCalories,
		Protein:  d.TotalProtein,
		Carbs:    d.TotalCarbs,
		Fat:      d.TotalFat,
	}
}
