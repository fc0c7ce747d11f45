package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// Recommendation categories produced by the suitability advisor.
const (
	RecommendationRecommended    = "recommended"
	RecommendationModerate       = "moderate"
	RecommendationNotRecommended = "not_recommended"
)

// ValidRecommendation reports whether r is one of the three categories.
func ValidRecommendation(r string) bool {
	switch r {
	case RecommendationRecommended, RecommendationModerate, RecommendationNotRecommended:
		return true
	}
	return false
}

// FoodLogEntry is one confirmed meal. Rows are never updated.
type FoodLogEntry struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:varchar(36);not null;index:idx_food_log_user_date,priority:1" json:"userId"`
	FoodName       string     `gorm:"size:255;not null" json:"foodName"`
	Calories       float64    `gorm:"not null" json:"calories"`
	Protein        float64    `gorm:"not null" json:"protein"`
	Carbs          float64    `gorm:"not null" json:"carbs"`
	Fat            float64    `gorm:"not null" json:"fat"`
	Recommendation string     `gorm:"size:20;not null" json:"recommendation"`
	Pros           StringList `gorm:"type:text" json:"pros"`
	Cons           StringList `gorm:"type:text" json:"cons"`
	Summary        string     `gorm:"type:text" json:"summary"`
	AIAnalysis     string     `gorm:"type:text" json:"aiAnalysis,omitempty"`
	ImageURL       string     `gorm:"size:1024" json:"imageUrl,omitempty"`
	Date           string     `gorm:"type:varchar(10);not null;index:idx_food_log_user_date,priority:2" json:"date"`
	ConsumedAt     time.Time  `gorm:"not null" json:"consumedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func (FoodLogEntry) TableName() string {
	return "food_log_entries"
}

func (e *FoodLogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Macros returns the logged nutrient snapshot.
func (e *FoodLogEntry) Macros() nutrition.Macros {
	return nutrition.Macros{
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
	}
}
