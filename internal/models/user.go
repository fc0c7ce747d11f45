package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// User holds credentials, the biometric profile and the derived daily targets.
// Targets stay nil until the estimator has run.
type User struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Email            string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Age              int       `json:"age"`
	HeightCm         float64   `json:"height"`
	WeightKg         float64   `json:"weight"`
	Gender           string    `gorm:"size:32" json:"gender"`
	MedicalCondition *string   `gorm:"type:text" json:"medicalCondition"`
	Timezone         string    `gorm:"size:64" json:"timezone,omitempty"`
	DailyCalories    *float64  `json:"dailyCalories"`
	DailyProtein     *float64  `json:"dailyProtein"`
	DailyCarbs       *float64  `json:"dailyCarbs"`
	DailyFat         *float64  `json:"dailyFat"`
	BMI              *float64  `gorm:"column:bmi" json:"bmi"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasBiometrics reports whether the profile carries enough data to estimate targets.
func (u *User) HasBiometrics() bool {
	return u.Age > 0 && u.HeightCm > 0 && u.WeightKg > 0 && strings.TrimSpace(u.Gender) != ""
}

// HasTargets reports whether all four daily targets are set and positive.
func (u *User) HasTargets() bool {
	for _, v := range []*float64{u.DailyCalories, u.DailyProtein, u.DailyCarbs, u.DailyFat} {
		if v == nil || *v <= 0 {
			return false
		}
	}
	return true
}

// Profile returns the biometric input for target estimation.
func (u *User) Profile() nutrition.Profile {
	p := nutrition.Profile{
		Age:      u.Age,
		HeightCm: u.HeightCm,
		WeightKg: u.WeightKg,
		Gender:   u.Gender,
	}
	if u.MedicalCondition != nil {
		p.MedicalCondition = *u.MedicalCondition
	}
	return p
}

// Targets returns the stored targets, zero where unset.
func (u *User) Targets() nutrition.Targets {
	return nutrition.Targets{
		DailyCalories: deref(u.DailyCalories),
		DailyProtein:  deref(u.DailyProtein),
		DailyCarbs:    deref(u.DailyCarbs),
		DailyFat:      deref(u.DailyFat),
		BMI:           deref(u.BMI),
	}
}

// SetTargets copies t onto the user.
func (u *User) SetTargets(t nutrition.Targets) {
	u.DailyCalories = &t.DailyCalories
	u.DailyProtein = &t.DailyProtein
	u.DailyCarbs = &t.DailyCarbs
	u.DailyFat = &t.DailyFat
	u.BMI = &t.BMI
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
