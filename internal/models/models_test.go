package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&User{}, &FoodLogEntry{}, &DailyNutritionTotal{}))
	return db
}

func TestUserTargets(t *testing.T) {
	u := &User{Age: 30, HeightCm: 170, WeightKg: 70, Gender: "male"}
	assert.True(t, u.HasBiometrics())
	assert.False(t, u.HasTargets())
	assert.Equal(t, nutrition.Targets{}, u.Targets())

	want := nutrition.Targets{DailyCalories: 2426, DailyProtein: 84, DailyCarbs: 303, DailyFat: 67, BMI: 24.2}
	u.SetTargets(want)
	assert.True(t, u.HasTargets())
	assert.Equal(t, want, u.Targets())
}

func TestUserProfileCarriesMedicalCondition(t *testing.T) {
	cond := "type 2 diabetes"
	u := &User{Age: 40, HeightCm: 165, WeightKg: 80, Gender: "female", MedicalCondition: &cond}
	assert.Equal(t, "type 2 diabetes", u.Profile().MedicalCondition)
}

func TestUserPersistsTargets(t *testing.T) {
	db := setupTestDB(t)

	u := &User{Name: "Rahim", Email: "rahim@example.com", PasswordHash: "x"}
	u.SetTargets(nutrition.Targets{DailyCalories: 1896, DailyProtein: 66, DailyCarbs: 237, DailyFat: 53, BMI: 21.5})
	require.NoError(t, db.Create(u).Error)
	assert.NotEmpty(t, u.ID)

	var got User
	require.NoError(t, db.First(&got, "id = ?", u.ID).Error)
	assert.Equal(t, u.Targets(), got.Targets())
	assert.Nil(t, got.MedicalCondition)
}

func TestFoodLogEntryStringLists(t *testing.T) {
	db := setupTestDB(t)

	u := &User{Name: "Karim", Email: "karim@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)

	entry := &FoodLogEntry{
		UserID:         u.ID,
		FoodName:       "Biriyani",
		Calories:       480,
		Recommendation: RecommendationModerate,
		Pros:           StringList{"good protein"},
		Date:           "2024-05-01",
	}
	require.NoError(t, db.Create(entry).Error)

	var got FoodLogEntry
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	assert.Equal(t, StringList{"good protein"}, got.Pros)
	assert.Equal(t, StringList{}, got.Cons)
	assert.Equal(t, nutrition.Macros{Calories: 480}, got.Macros())
}

func TestDailyNutritionTotalUniquePerDate(t *testing.T) {
	db := setupTestDB(t)

	u := &User{Name: "Nila", Email: "nila@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)

	require.NoError(t, db.Create(&DailyNutritionTotal{UserID: u.ID, Date: "2024-05-01"}).Error)
	assert.Error(t, db.Create(&DailyNutritionTotal{UserID: u.ID, Date: "2024-05-01"}).Error)
	assert.NoError(t, db.Create(&DailyNutritionTotal{UserID: u.ID, Date: "2024-05-02"}).Error)
}

func TestValidRecommendation(t *testing.T) {
	assert.True(t, ValidRecommendation("recommended"))
	assert.True(t, ValidRecommendation("not_recommended"))
	assert.False(t, ValidRecommendation("Recommended"))
	assert.False(t, ValidRecommendation(""))
}
